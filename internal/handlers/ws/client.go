package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// client wraps a websocket connection with serialized writes. Gorilla
// connections forbid concurrent writers, and a session broadcast can
// race the keep-alive ping.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn}
}

// WriteJSON sends one JSON frame to the client
func (c *client) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn.WriteJSON(v)
}

// ping sends a websocket ping control frame
func (c *client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn.WriteMessage(websocket.PingMessage, []byte{})
}
