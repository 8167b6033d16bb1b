package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs registers the connection, queues the initial frame and blocks
// reading until the peer disconnects. It returns at once when the hub has
// already stopped.
func ServeWs(hub *Hub, conn *websocket.Conn, sessionID string, initial []byte, onMessage MessageFunc) {
	client := NewClient(hub, conn, sessionID)
	if !hub.Register(client) {
		conn.Close()
		return
	}
	if initial != nil {
		client.Reply(initial)
	}
	go client.writePump()
	client.readPump(onMessage)
}
