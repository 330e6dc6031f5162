package engine

type Colour int

const (
	ColourNone Colour = iota
	ColourBlue
	ColourGreen
	ColourRed
	ColourYellow
)

var Colours = []Colour{ColourBlue, ColourGreen, ColourRed, ColourYellow}

func (c Colour) String() string {
	switch c {
	case ColourBlue:
		return "blue"
	case ColourGreen:
		return "green"
	case ColourRed:
		return "red"
	case ColourYellow:
		return "yellow"
	default:
		return ""
	}
}

type CardType int

const (
	TypeZero CardType = iota
	TypeOne
	TypeTwo
	TypeThree
	TypeFour
	TypeFive
	TypeSix
	TypeSeven
	TypeEight
	TypeNine
	TypeSkip
	TypeReverse
	TypeDrawTwo
	TypeWild
	TypeWildDrawFour
)

var Numerals = []CardType{
	TypeZero, TypeOne, TypeTwo, TypeThree, TypeFour,
	TypeFive, TypeSix, TypeSeven, TypeEight, TypeNine,
}

var Actions = []CardType{TypeSkip, TypeReverse, TypeDrawTwo}

var Wilds = []CardType{TypeWild, TypeWildDrawFour}

func (t CardType) String() string {
	switch t {
	case TypeSkip:
		return "skip"
	case TypeReverse:
		return "reverse"
	case TypeDrawTwo:
		return "draw-2"
	case TypeWild:
		return "wild"
	case TypeWildDrawFour:
		return "draw-4"
	default:
		if t >= TypeZero && t <= TypeNine {
			return string(rune('0' + int(t)))
		}
		return "?"
	}
}

// Card is an immutable face/colour pair. Colour is ColourNone for a wild
// card until it is played, at which point the chosen colour is bound.
type Card struct {
	Type   CardType
	Colour Colour
}

func (c Card) IsWild() bool {
	return c.Type == TypeWild || c.Type == TypeWildDrawFour
}

func (c Card) IsColour() bool {
	return !c.IsWild()
}

// Points is the card's scoring value when left in a losing hand:
// face value for numerals, 20 for action cards, 50 for wilds.
func (c Card) Points() int {
	switch c.Type {
	case TypeSkip, TypeReverse, TypeDrawTwo:
		return 20
	case TypeWild, TypeWildDrawFour:
		return 50
	default:
		return int(c.Type)
	}
}

func (c Card) String() string {
	if c.Colour == ColourNone {
		return c.Type.String()
	}
	return c.Colour.String() + " " + c.Type.String()
}

// Playable reports whether c may legally be played onto top. A wild is
// always playable; anything else must match the top's colour or type.
func Playable(c Card, top Card) bool {
	if c.IsWild() {
		return true
	}
	return c.Colour == top.Colour || c.Type == top.Type
}
