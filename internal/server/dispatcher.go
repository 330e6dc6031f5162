package server

import (
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/deanylev/red-green-blue-yellow-numbers/internal/engine"
)

// Dispatcher routes client commands through the validation pipeline and
// into rooms. Each entry in the table validates in a fixed order and
// touches game state only once every check has passed, so a rejected
// command leaves no trace.
type Dispatcher struct {
	registry *Registry
	handlers map[string]func(*client, int64, json.RawMessage)
}

func NewDispatcher(registry *Registry) *Dispatcher {
	d := &Dispatcher{registry: registry}
	d.handlers = map[string]func(*client, int64, json.RawMessage){
		"game_create":    d.handleCreate,
		"game_join":      d.handleJoin,
		"game_start":     d.handleStart,
		"game_play_card": d.handlePlayCard,
		"game_take_card": d.handleTakeCard,
		"game_leave":     d.handleLeave,
	}
	return d
}

// Dispatch runs a single inbound command. Unrecognized commands are
// dropped without an ack.
func (d *Dispatcher) Dispatch(c *client, msg ClientMessage) {
	handler, ok := d.handlers[msg.Cmd]
	if !ok {
		logrus.WithFields(logrus.Fields{"conn": c.id, "cmd": msg.Cmd}).Debug("ignoring unknown command")
		return
	}
	handler(c, msg.Seq, msg.Data)
}

func (d *Dispatcher) handleCreate(c *client, seq int64, _ json.RawMessage) {
	room := d.registry.CreateRoom()
	logrus.WithFields(logrus.Fields{"conn": c.id, "room": room.ID()}).Info("room created")
	c.enqueue(ackOK(seq, map[string]string{"id": room.ID()}))
}

func (d *Dispatcher) handleJoin(c *client, seq int64, data json.RawMessage) {
	var payload JoinPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ID == "" {
		c.enqueue(ackFail(seq, ReasonParams))
		return
	}
	if d.registry.RoomFor(c.id) != nil {
		c.enqueue(ackFail(seq, ReasonAlreadyInGame))
		return
	}
	room := d.registry.Room(payload.ID)
	if room == nil {
		c.enqueue(ackFail(seq, ReasonGameNotFound))
		return
	}

	room.mu.Lock()
	if room.closed {
		room.mu.Unlock()
		c.enqueue(ackFail(seq, ReasonGameNotFound))
		return
	}
	if room.game.Phase == engine.PhaseActive {
		room.mu.Unlock()
		c.enqueue(ackFail(seq, ReasonGameStarted))
		return
	}
	if len(room.game.Players) >= room.game.Rules.MaxPlayers {
		room.mu.Unlock()
		c.enqueue(ackFail(seq, ReasonGameFull))
		return
	}
	name := strings.TrimSpace(payload.Name)
	if name == "" || len(name) > MaxNameLength {
		room.mu.Unlock()
		c.enqueue(ackFail(seq, ReasonNameInvalid))
		return
	}
	if room.game.HasName(name) {
		room.mu.Unlock()
		c.enqueue(ackFail(seq, ReasonNameTaken))
		return
	}

	room.game.AddPlayer(&engine.Player{ID: c.id, Name: name})
	room.members[c.id] = c
	msg, recipients := room.snapshotMessage()
	room.mu.Unlock()

	d.registry.bind(c.id, room)
	logrus.WithFields(logrus.Fields{"conn": c.id, "room": room.ID(), "name": name}).Info("player joined")
	c.enqueue(ackOK(seq, nil))
	broadcast(msg, recipients)
}

func (d *Dispatcher) handleStart(c *client, seq int64, _ json.RawMessage) {
	room := d.registry.RoomFor(c.id)
	if room == nil {
		c.enqueue(ackFail(seq, ReasonNotInGame))
		return
	}

	room.mu.Lock()
	if room.game.HostID != c.id {
		room.mu.Unlock()
		c.enqueue(ackFail(seq, ReasonPlayerNotHost))
		return
	}
	if len(room.game.Players) < room.game.Rules.MinPlayers {
		room.mu.Unlock()
		c.enqueue(ackFail(seq, ReasonGameEmpty))
		return
	}
	if room.game.Phase == engine.PhaseActive {
		room.mu.Unlock()
		c.enqueue(ackFail(seq, ReasonGameStarted))
		return
	}

	err := room.game.Start()
	msg, recipients := room.snapshotMessage()
	room.mu.Unlock()

	if err != nil {
		logrus.WithFields(logrus.Fields{"room": room.ID()}).WithError(err).Error("round aborted")
	} else {
		logrus.WithFields(logrus.Fields{"room": room.ID()}).Info("round started")
	}
	c.enqueue(ackOK(seq, nil))
	broadcast(msg, recipients)
}

func (d *Dispatcher) handlePlayCard(c *client, seq int64, data json.RawMessage) {
	var payload CardDTO
	if err := json.Unmarshal(data, &payload); err != nil || payload.Colour == nil {
		c.enqueue(ackFail(seq, ReasonParams))
		return
	}
	played, err := payload.toEngine()
	if err != nil {
		c.enqueue(ackFail(seq, ReasonParams))
		return
	}
	room := d.registry.RoomFor(c.id)
	if room == nil {
		c.enqueue(ackFail(seq, ReasonNotInGame))
		return
	}

	room.mu.Lock()
	if room.game.Phase != engine.PhaseActive {
		room.mu.Unlock()
		c.enqueue(ackFail(seq, ReasonGameNotStarted))
		return
	}
	if room.game.CurrentID != c.id {
		room.mu.Unlock()
		c.enqueue(ackFail(seq, ReasonNotPlayerTurn))
		return
	}
	player := room.game.Player(c.id)
	hand := findCard(player.Hand, played)
	if hand < 0 {
		room.mu.Unlock()
		c.enqueue(ackFail(seq, ReasonPlayerMissingCard))
		return
	}
	top, _ := room.game.LastPlayed()
	if !engine.Playable(player.Hand[hand], top) {
		room.mu.Unlock()
		c.enqueue(ackFail(seq, ReasonCardNotPlayable))
		return
	}

	// A wild leaves the hand colourless and lands on the pile with the
	// chosen colour bound.
	playErr := room.game.PlayCard(player, hand, played)
	msg, recipients := room.snapshotMessage()
	room.mu.Unlock()

	if playErr != nil {
		logrus.WithFields(logrus.Fields{"room": room.ID()}).WithError(playErr).Error("round aborted")
	}
	c.enqueue(ackOK(seq, nil))
	broadcast(msg, recipients)
}

func (d *Dispatcher) handleTakeCard(c *client, seq int64, _ json.RawMessage) {
	room := d.registry.RoomFor(c.id)
	if room == nil {
		c.enqueue(ackFail(seq, ReasonNotInGame))
		return
	}

	room.mu.Lock()
	if room.game.Phase != engine.PhaseActive {
		room.mu.Unlock()
		c.enqueue(ackFail(seq, ReasonGameNotStarted))
		return
	}
	if room.game.CurrentID != c.id {
		room.mu.Unlock()
		c.enqueue(ackFail(seq, ReasonNotPlayerTurn))
		return
	}

	err := room.game.TakeCard(room.game.Player(c.id))
	msg, recipients := room.snapshotMessage()
	room.mu.Unlock()

	if err != nil {
		logrus.WithFields(logrus.Fields{"room": room.ID()}).WithError(err).Error("round aborted")
	}
	c.enqueue(ackOK(seq, nil))
	broadcast(msg, recipients)
}

func (d *Dispatcher) handleLeave(c *client, seq int64, _ json.RawMessage) {
	room := d.registry.RoomFor(c.id)
	if room == nil {
		c.enqueue(ackFail(seq, ReasonNotInGame))
		return
	}
	c.enqueue(ackOK(seq, nil))
	d.removeFromRoom(c, room)
}

// Disconnect is the implicit leave. It is idempotent: a connection that
// never joined, or already left, cleans up to nothing.
func (d *Dispatcher) Disconnect(c *client) {
	room := d.registry.RoomFor(c.id)
	if room == nil {
		d.registry.unbind(c.id)
		return
	}
	d.removeFromRoom(c, room)
}

func (d *Dispatcher) removeFromRoom(c *client, room *Room) {
	room.mu.Lock()
	delete(room.members, c.id)
	empty := room.game.RemovePlayer(c.id)
	var msg ServerMessage
	var recipients []*client
	if empty {
		room.closed = true
		msg, recipients = room.destroyMessage()
		recipients = append(recipients, c)
	} else {
		msg, recipients = room.snapshotMessage()
	}
	room.mu.Unlock()

	if empty {
		d.registry.removeRoom(room.ID())
		logrus.WithField("room", room.ID()).Info("room destroyed")
	}
	d.registry.unbind(c.id)
	logrus.WithFields(logrus.Fields{"conn": c.id, "room": room.ID()}).Info("player left")
	broadcast(msg, recipients)
}

func findCard(hand []engine.Card, played engine.Card) int {
	for i, c := range hand {
		if c.IsWild() {
			if c.Type == played.Type {
				return i
			}
			continue
		}
		if c.Type == played.Type && c.Colour == played.Colour {
			return i
		}
	}
	return -1
}
