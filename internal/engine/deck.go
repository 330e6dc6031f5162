package engine

import (
	"errors"
	"math/rand"
)

// ErrDeckExhausted indicates a draw was requested with no cards left
// anywhere but the visible discard head. The multiset of cards in a room
// is fixed for a round, so this can only mean state corruption; callers
// must abort the round rather than continue.
var ErrDeckExhausted = errors.New("engine: deck exhausted")

// BuildDeck constructs the canonical 100-card multiset: per colour, two
// of each numeral and one of each action card, plus four of each wild.
func BuildDeck() []Card {
	deck := make([]Card, 0, 100)
	for _, colour := range Colours {
		for _, n := range Numerals {
			deck = append(deck, Card{Type: n, Colour: colour}, Card{Type: n, Colour: colour})
		}
		for _, a := range Actions {
			deck = append(deck, Card{Type: a, Colour: colour})
		}
	}
	for _, w := range Wilds {
		for i := 0; i < 4; i++ {
			deck = append(deck, Card{Type: w})
		}
	}
	return deck
}

func Shuffle(deck []Card, rng *rand.Rand) []Card {
	shuffled := make([]Card, len(deck))
	copy(shuffled, deck)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// popTop removes and returns the head of the draw pile. If that leaves
// the draw pile empty, every discard except its head is shuffled back in
// as the new draw pile; the visible top of discard never changes.
func (g *Game) popTop() (Card, error) {
	if len(g.DrawPile) == 0 {
		return Card{}, ErrDeckExhausted
	}
	card := g.DrawPile[0]
	g.DrawPile = g.DrawPile[1:]

	if len(g.DrawPile) == 0 && len(g.DiscardPile) > 1 {
		g.DrawPile = Shuffle(g.DiscardPile[1:], g.rng)
		g.DiscardPile = g.DiscardPile[:1]
	}
	return card, nil
}

// dealTo moves count cards from the draw pile into the player's hand.
func (g *Game) dealTo(p *Player, count int) error {
	for i := 0; i < count; i++ {
		card, err := g.popTop()
		if err != nil {
			return err
		}
		p.Hand = append(p.Hand, card)
	}
	return nil
}

// seedDiscard flips the first discard. Wilds drawn here cycle to the
// back of the draw pile so they stay in circulation.
func (g *Game) seedDiscard() error {
	for {
		card, err := g.popTop()
		if err != nil {
			return err
		}
		if !card.IsWild() {
			g.DiscardPile = []Card{card}
			return nil
		}
		g.DrawPile = append(g.DrawPile, card)
	}
}
