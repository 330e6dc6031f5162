package engine

import "testing"

func activeGame(t *testing.T, names ...string) *Game {
	t.Helper()
	g := NewGame("123456", ClassicPreset(), 7)
	for _, name := range names {
		g.AddPlayer(&Player{ID: "conn-" + name, Name: name})
	}
	if err := g.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	return g
}

func TestStartDealsAndSeeds(t *testing.T) {
	g := activeGame(t, "a", "b", "c")

	if g.Phase != PhaseActive {
		t.Fatalf("expected active phase, got %s", g.Phase)
	}
	for _, p := range g.Players {
		if len(p.Hand) != g.Rules.HandSize {
			t.Fatalf("player %s has %d cards, expected %d", p.Name, len(p.Hand), g.Rules.HandSize)
		}
	}
	top, ok := g.LastPlayed()
	if !ok || top.IsWild() {
		t.Fatalf("discard must start seeded with a non-wild card, got %v", top)
	}
	if g.Player(g.CurrentID) == nil {
		t.Fatalf("no current player after start")
	}
	if g.CardCount() != 100 {
		t.Fatalf("card conservation broken: %d", g.CardCount())
	}
}

func TestStartAfterFinishedKeepsScores(t *testing.T) {
	g := activeGame(t, "a", "b")
	g.Phase = PhaseFinished
	g.WinnerID = g.Players[0].ID
	g.Players[0].Score = 75

	if err := g.Start(); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if g.Players[0].Score != 75 {
		t.Fatalf("score must survive a restart, got %d", g.Players[0].Score)
	}
	if g.WinnerID != "" || g.Phase != PhaseActive {
		t.Fatalf("round state not reset on restart")
	}
}

func TestPlayCardAdvancesTurn(t *testing.T) {
	g := activeGame(t, "a", "b", "c")
	acting := g.Player(g.CurrentID)
	top, _ := g.LastPlayed()
	card := Card{Type: top.Type, Colour: top.Colour}
	acting.Hand = append(acting.Hand, card)

	if err := g.PlayCard(acting, len(acting.Hand)-1, card); err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if g.CurrentID == acting.ID {
		t.Fatalf("turn must move off the acting player")
	}
	if head, _ := g.LastPlayed(); head != card {
		t.Fatalf("played card must become the discard head")
	}
}

func TestPlaySkipScenario(t *testing.T) {
	g := activeGame(t, "a", "b", "c")
	// Force a known arrangement: a to act, skip in hand.
	a := g.Players[0]
	g.CurrentID = a.ID
	g.Direction = Ascending
	top, _ := g.LastPlayed()
	skip := Card{Type: TypeSkip, Colour: top.Colour}
	a.Hand = append(a.Hand, skip)

	if err := g.PlayCard(a, len(a.Hand)-1, skip); err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if g.CurrentID != g.Players[2].ID {
		t.Fatalf("expected c to be current after a plays skip, got %s", g.Player(g.CurrentID).Name)
	}
	if g.Direction != Ascending {
		t.Fatalf("skip must not change direction")
	}
}

func TestPlayDrawTwoDealsPenalty(t *testing.T) {
	g := activeGame(t, "a", "b", "c")
	a, b := g.Players[0], g.Players[1]
	g.CurrentID = a.ID
	g.Direction = Ascending
	top, _ := g.LastPlayed()
	card := Card{Type: TypeDrawTwo, Colour: top.Colour}
	a.Hand = append(a.Hand, card)
	before := len(b.Hand)

	if err := g.PlayCard(a, len(a.Hand)-1, card); err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if len(b.Hand) != before+2 {
		t.Fatalf("expected b to draw 2, hand went %d -> %d", before, len(b.Hand))
	}
	if g.CurrentID != g.Players[2].ID {
		t.Fatalf("expected the penalised player to be skipped")
	}
	if g.CardCount() != 100 {
		t.Fatalf("card conservation broken: %d", g.CardCount())
	}
}

func TestPlayWildBindsColour(t *testing.T) {
	g := activeGame(t, "a", "b")
	a := g.Player(g.CurrentID)
	bound := Card{Type: TypeWild, Colour: ColourGreen}
	a.Hand = append(a.Hand, Card{Type: TypeWild})

	if err := g.PlayCard(a, len(a.Hand)-1, bound); err != nil {
		t.Fatalf("play failed: %v", err)
	}
	head, _ := g.LastPlayed()
	if head.Colour != ColourGreen {
		t.Fatalf("wild must land with its chosen colour bound, got %s", head)
	}
}

func TestPlayLastCardWinsAndScores(t *testing.T) {
	g := activeGame(t, "a", "b", "c")
	a, b, c := g.Players[0], g.Players[1], g.Players[2]
	g.CurrentID = a.ID
	top, _ := g.LastPlayed()
	last := Card{Type: top.Type, Colour: top.Colour}
	a.Hand = []Card{last}
	b.Hand = []Card{{Type: TypeWild}, {Type: TypeFive, Colour: ColourRed}}
	c.Hand = []Card{{Type: TypeSkip, Colour: ColourBlue}, {Type: TypeNine, Colour: ColourGreen}}

	if err := g.PlayCard(a, 0, last); err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if g.Phase != PhaseFinished {
		t.Fatalf("expected finished phase, got %s", g.Phase)
	}
	if g.WinnerID != a.ID {
		t.Fatalf("expected a to win")
	}
	if g.CurrentID != "" {
		t.Fatalf("no player should be current after the round ends")
	}
	// 50 + 5 from b, 20 + 9 from c.
	if a.Score != 84 {
		t.Fatalf("expected winner to score 84, got %d", a.Score)
	}
}

func TestTakeCardAdvancesOneStep(t *testing.T) {
	g := activeGame(t, "a", "b", "c")
	a, b := g.Players[0], g.Players[1]
	g.CurrentID = a.ID
	g.Direction = Ascending
	before := len(a.Hand)

	if err := g.TakeCard(a); err != nil {
		t.Fatalf("take failed: %v", err)
	}
	if len(a.Hand) != before+1 {
		t.Fatalf("expected exactly one drawn card")
	}
	if g.CurrentID != b.ID {
		t.Fatalf("voluntary draw must advance a single step")
	}
}

func TestRemovePlayerDuringRoundEndsRound(t *testing.T) {
	g := activeGame(t, "a", "b", "c")

	if empty := g.RemovePlayer(g.Players[1].ID); empty {
		t.Fatalf("room should not be empty")
	}
	if g.Phase != PhaseLobby {
		t.Fatalf("a mid-round departure must end the round, phase is %s", g.Phase)
	}
	if g.WinnerID != "" || g.CurrentID != "" {
		t.Fatalf("abnormal end must credit no winner")
	}
	for _, p := range g.Players {
		if p.Hand != nil {
			t.Fatalf("hands must be discarded on abnormal end")
		}
	}
}

func TestRemovePlayerReassignsHost(t *testing.T) {
	g := NewGame("123456", ClassicPreset(), 7)
	g.AddPlayer(&Player{ID: "h", Name: "host"})
	g.AddPlayer(&Player{ID: "x", Name: "x"})
	g.AddPlayer(&Player{ID: "y", Name: "y"})

	g.RemovePlayer("h")
	if g.HostID != "x" && g.HostID != "y" {
		t.Fatalf("host must pass to a remaining player, got %q", g.HostID)
	}
}

func TestRemoveLastPlayerReportsEmpty(t *testing.T) {
	g := NewGame("123456", ClassicPreset(), 7)
	g.AddPlayer(&Player{ID: "h", Name: "host"})

	if empty := g.RemovePlayer("h"); !empty {
		t.Fatalf("expected empty room signal")
	}
}

func TestRemoveUnknownPlayerIsNoop(t *testing.T) {
	g := NewGame("123456", ClassicPreset(), 7)
	g.AddPlayer(&Player{ID: "h", Name: "host"})

	if empty := g.RemovePlayer("ghost"); empty {
		t.Fatalf("unknown id must not report empty")
	}
	if len(g.Players) != 1 {
		t.Fatalf("unknown id must not remove anyone")
	}
}
