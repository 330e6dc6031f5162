package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades a connection and pumps its commands through the
// dispatcher until it drops. Malformed frames are logged and dropped,
// never acked.
func Handler(d *Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Warn("ws upgrade")
			return
		}

		c := newClient(uuid.NewString(), conn)
		log := logrus.WithFields(logrus.Fields{"conn": c.id, "remote": conn.RemoteAddr().String()})
		log.Info("connected")

		go c.writePump()
		defer func() {
			d.Disconnect(c)
			c.shutdown()
			_ = conn.Close()
			log.Info("disconnected")
		}()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg ClientMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				log.WithError(err).Debug("dropping malformed frame")
				continue
			}
			d.Dispatch(c, msg)
		}
	}
}
