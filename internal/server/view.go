package server

import "github.com/deanylev/red-green-blue-yellow-numbers/internal/engine"

type PlayerView struct {
	Name    string    `json:"name"`
	Cards   []CardDTO `json:"cards"`
	Current bool      `json:"current"`
	Host    bool      `json:"host"`
	Winner  bool      `json:"winner"`
	Points  int       `json:"points"`
}

// GameView is the broadcast snapshot. Every member receives the same
// view, full hands included; there is no per-recipient redaction.
type GameView struct {
	ID             string       `json:"id"`
	LastCardPlayed *CardDTO     `json:"lastCardPlayed"`
	Playing        bool         `json:"playing"`
	Players        []PlayerView `json:"players"`
}

func BuildGameView(g *engine.Game) *GameView {
	view := &GameView{
		ID:      g.ID,
		Playing: g.Phase == engine.PhaseActive,
		Players: make([]PlayerView, 0, len(g.Players)),
	}
	if top, ok := g.LastPlayed(); ok {
		view.LastCardPlayed = cardToDTO(top)
	}
	for _, p := range g.Players {
		cards := make([]CardDTO, 0, len(p.Hand))
		for _, c := range p.Hand {
			cards = append(cards, *cardToDTO(c))
		}
		view.Players = append(view.Players, PlayerView{
			Name:    p.Name,
			Cards:   cards,
			Current: p.ID == g.CurrentID,
			Host:    p.ID == g.HostID,
			Winner:  p.ID == g.WinnerID,
			Points:  p.Score,
		})
	}
	return view
}
