package engine

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) flip() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// TurnEffect describes how a played card moves the turn. Victim is the
// index of a player forced to draw Penalty cards, or -1. Next and Victim
// are indices into the player list that produced them.
type TurnEffect struct {
	Next      int
	Direction Direction
	Victim    int
	Penalty   int
}

// ResolveTurn computes the turn transition for a played card. It is a
// pure function of the acting player's current index: skip and the draw
// penalties jump one extra step, reverse recomputes the single step
// under the flipped direction (with two players that still advances —
// reverse does not double as a skip here).
func ResolveTurn(count, acting int, dir Direction, t CardType) TurnEffect {
	effect := TurnEffect{Direction: dir, Victim: -1}
	step := func(i int) int { return stepFrom(count, i, dir) }

	switch t {
	case TypeSkip:
		effect.Next = step(step(acting))
	case TypeDrawTwo:
		effect.Victim = step(acting)
		effect.Penalty = 2
		effect.Next = step(effect.Victim)
	case TypeWildDrawFour:
		effect.Victim = step(acting)
		effect.Penalty = 4
		effect.Next = step(effect.Victim)
	case TypeReverse:
		dir = dir.flip()
		effect.Direction = dir
		effect.Next = step(acting)
	default:
		effect.Next = step(acting)
	}
	return effect
}

// stepFrom is one move from index i along dir, wrapping at the ends of
// the player list.
func stepFrom(count, i int, dir Direction) int {
	if dir == Ascending {
		return (i + 1) % count
	}
	return (i - 1 + count) % count
}
