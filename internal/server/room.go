package server

import (
	"sync"

	"github.com/deanylev/red-green-blue-yellow-numbers/internal/engine"
)

// Room pairs one engine.Game with the connections subscribed to it. All
// validation and mutation for a room happens under mu, so commands
// against the same room apply one at a time in arrival order. Snapshots
// are built and the recipient list copied under the lock, but the
// actual socket writes go through each client's send buffer after mu is
// released.
type Room struct {
	mu      sync.Mutex
	game    *engine.Game
	members map[string]*client
	closed  bool
}

func newRoom(game *engine.Game) *Room {
	return &Room{
		game:    game,
		members: make(map[string]*client),
	}
}

func (r *Room) ID() string {
	return r.game.ID
}

// snapshotMessage captures the current view and recipients. Callers
// send the message to every returned client once the room lock is gone.
func (r *Room) snapshotMessage() (ServerMessage, []*client) {
	return ServerMessage{Type: "game_data", Data: BuildGameView(r.game)}, r.recipients()
}

// destroyMessage is broadcast when the room dies: a null snapshot, the
// signal for clients to return to the landing screen.
func (r *Room) destroyMessage() (ServerMessage, []*client) {
	return ServerMessage{Type: "game_data", Data: nil}, r.recipients()
}

func (r *Room) recipients() []*client {
	members := make([]*client, 0, len(r.members))
	for _, c := range r.members {
		members = append(members, c)
	}
	return members
}

func broadcast(msg ServerMessage, recipients []*client) {
	for _, c := range recipients {
		c.enqueue(msg)
	}
}
