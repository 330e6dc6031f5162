package server

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const sendBuffer = 32

// client is one websocket connection. The write pump is the only
// goroutine that touches the socket for writes; everyone else enqueues
// frames on send. A full buffer drops the frame rather than block a
// room.
type client struct {
	id   string
	conn *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func newClient(id string, conn *websocket.Conn) *client {
	return &client{
		id:   id,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

func (c *client) enqueue(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		logrus.WithError(err).Error("marshal outbound message")
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		logrus.WithField("conn", c.id).Warn("send buffer full, dropping frame")
	}
}

// shutdown stops the write pump; late broadcasts become no-ops.
func (c *client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *client) writePump() {
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}
