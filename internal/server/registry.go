package server

import (
	"math/rand"
	"sync"
	"time"

	"github.com/deanylev/red-green-blue-yellow-numbers/internal/engine"
)

const roomIDLength = 6

// Registry indexes rooms by id and connections by the room they sit in.
// It routes only; it never mutates game state. Both maps share one
// RWMutex so creation, destruction and lookup of rooms serialize
// against each other, independently of any single room's own lock.
type Registry struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	byConn map[string]*Room
	rules  engine.Rules
	rng    *rand.Rand
}

func NewRegistry(rules engine.Rules) *Registry {
	return &Registry{
		rooms:  make(map[string]*Room),
		byConn: make(map[string]*Room),
		rules:  rules,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateRoom installs a new empty room under a freshly generated id,
// regenerating on collision.
func (reg *Registry) CreateRoom() *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	var id string
	for id == "" || reg.rooms[id] != nil {
		id = reg.generateID()
	}
	room := newRoom(engine.NewGame(id, reg.rules, reg.rng.Int63()))
	reg.rooms[id] = room
	return room
}

// generateID produces a short numeric id with no leading zero.
func (reg *Registry) generateID() string {
	digits := make([]byte, roomIDLength)
	digits[0] = byte('1' + reg.rng.Intn(9))
	for i := 1; i < roomIDLength; i++ {
		digits[i] = byte('0' + reg.rng.Intn(10))
	}
	return string(digits)
}

func (reg *Registry) Room(id string) *Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.rooms[id]
}

// RoomFor resolves the room a connection is currently joined to.
func (reg *Registry) RoomFor(connID string) *Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.byConn[connID]
}

func (reg *Registry) bind(connID string, room *Room) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.byConn[connID] = room
}

func (reg *Registry) unbind(connID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.byConn, connID)
}

// removeRoom drops the room from the index once it has emptied.
func (reg *Registry) removeRoom(id string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, id)
}
