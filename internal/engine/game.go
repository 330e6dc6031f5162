package engine

import (
	"errors"
	"math/rand"
	"strings"
)

type Phase int

const (
	PhaseLobby Phase = iota
	PhaseActive
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseActive:
		return "active"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

type Rules struct {
	MinPlayers int
	MaxPlayers int
	HandSize   int
}

func ClassicPreset() Rules {
	return Rules{
		MinPlayers: 2,
		MaxPlayers: 10,
		HandSize:   7,
	}
}

type Player struct {
	ID    string
	Name  string
	Hand  []Card
	Score int
}

// Game holds the full state of one room for one round. It is not safe
// for concurrent use; the server wraps each Game in its own lock.
type Game struct {
	ID          string
	Rules       Rules
	Phase       Phase
	Players     []*Player
	HostID      string
	CurrentID   string
	Direction   Direction
	DrawPile    []Card
	DiscardPile []Card
	WinnerID    string

	rng *rand.Rand
}

func NewGame(id string, r Rules, seed int64) *Game {
	return &Game{
		ID:    id,
		Rules: r,
		Phase: PhaseLobby,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// LastPlayed returns the discard head, the card defining what is
// currently legal to play.
func (g *Game) LastPlayed() (Card, bool) {
	if len(g.DiscardPile) == 0 {
		return Card{}, false
	}
	return g.DiscardPile[0], true
}

func (g *Game) Player(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (g *Game) playerIndex(id string) int {
	for i, p := range g.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// HasName reports whether any member already uses the name,
// case-insensitively.
func (g *Game) HasName(name string) bool {
	for _, p := range g.Players {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

// AddPlayer appends the player in join order. The first joiner becomes
// host.
func (g *Game) AddPlayer(p *Player) {
	if g.HostID == "" {
		g.HostID = p.ID
	}
	g.Players = append(g.Players, p)
}

// RemovePlayer drops the player from the room. A departure during an
// active round abnormally ends the round: no winner, hands discarded. A
// departing host hands off to a uniformly random remaining player.
// Returns true once the room has no players left and should be
// destroyed.
func (g *Game) RemovePlayer(id string) (empty bool) {
	i := g.playerIndex(id)
	if i < 0 {
		return len(g.Players) == 0
	}

	if g.Phase == PhaseActive {
		g.endRound()
	}

	g.Players = append(g.Players[:i], g.Players[i+1:]...)

	if len(g.Players) == 0 {
		return true
	}
	if g.HostID == id {
		g.HostID = g.Players[g.rng.Intn(len(g.Players))].ID
	}
	return false
}

// endRound clears all per-round state without crediting a winner.
func (g *Game) endRound() {
	g.Phase = PhaseLobby
	g.CurrentID = ""
	g.WinnerID = ""
	g.Direction = Ascending
	g.DrawPile = nil
	g.DiscardPile = nil
	for _, p := range g.Players {
		p.Hand = nil
	}
}

// Start begins a round: fresh shuffled deck, a full hand to every
// player, a non-wild first discard, and a random starting player.
// Cumulative scores survive; everything else resets.
func (g *Game) Start() error {
	g.DrawPile = Shuffle(BuildDeck(), g.rng)
	g.DiscardPile = nil
	g.Direction = Ascending
	g.WinnerID = ""

	for _, p := range g.Players {
		p.Hand = nil
		if err := g.dealTo(p, g.Rules.HandSize); err != nil {
			g.endRound()
			return err
		}
	}
	if err := g.seedDiscard(); err != nil {
		g.endRound()
		return err
	}

	g.CurrentID = g.Players[g.rng.Intn(len(g.Players))].ID
	g.Phase = PhaseActive
	return nil
}

// PlayCard applies an already-validated play: the card leaves the hand,
// becomes the discard head (wilds arrive with their colour bound), the
// turn resolves, and an emptied hand ends the round with the player as
// winner.
func (g *Game) PlayCard(p *Player, hand int, card Card) error {
	if hand < 0 || hand >= len(p.Hand) {
		return errors.New("engine: hand index out of range")
	}
	p.Hand = append(p.Hand[:hand], p.Hand[hand+1:]...)
	g.DiscardPile = append([]Card{card}, g.DiscardPile...)

	effect := ResolveTurn(len(g.Players), g.playerIndex(p.ID), g.Direction, card.Type)
	g.Direction = effect.Direction
	if effect.Victim >= 0 {
		if err := g.dealTo(g.Players[effect.Victim], effect.Penalty); err != nil {
			g.endRound()
			return err
		}
	}

	if len(p.Hand) == 0 {
		g.Phase = PhaseFinished
		g.CurrentID = ""
		g.WinnerID = p.ID
		p.Score += g.remainingPoints()
		return nil
	}

	g.CurrentID = g.Players[effect.Next].ID
	return nil
}

// TakeCard draws a single card voluntarily; the turn then advances one
// plain step regardless of what was drawn.
func (g *Game) TakeCard(p *Player) error {
	if err := g.dealTo(p, 1); err != nil {
		g.endRound()
		return err
	}
	next := stepFrom(len(g.Players), g.playerIndex(p.ID), g.Direction)
	g.CurrentID = g.Players[next].ID
	return nil
}

// remainingPoints sums the point values of every card still held.
func (g *Game) remainingPoints() int {
	total := 0
	for _, p := range g.Players {
		for _, c := range p.Hand {
			total += c.Points()
		}
	}
	return total
}

// CardCount is the number of cards across both piles and all hands. It
// stays equal to the built deck size for the lifetime of a round.
func (g *Game) CardCount() int {
	total := len(g.DrawPile) + len(g.DiscardPile)
	for _, p := range g.Players {
		total += len(p.Hand)
	}
	return total
}
