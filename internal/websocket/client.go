package websocket

import (
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// MessageFunc handles one inbound text frame. A non-nil reply goes back to
// the sending client only.
type MessageFunc func(client *Client, payload []byte) (reply []byte)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	Conn *websocket.Conn

	SessionID string

	// Buffered channel of outbound frames. Only the hub closes it.
	Send chan []byte

	// closed is set by the hub, under its write lock, when Send is closed
	closed bool
}

func NewClient(hub *Hub, conn *websocket.Conn, sessionID string) *Client {
	return &Client{Hub: hub, Conn: conn, SessionID: sessionID, Send: make(chan []byte, 16)}
}

// Reply queues a frame for this client alone. It never blocks; a full
// buffer or a client the hub already dropped loses the frame.
func (c *Client) Reply(frame []byte) {
	c.Hub.mu.RLock()
	defer c.Hub.mu.RUnlock()
	c.trySend(frame)
}

// trySend must run with the hub lock held so it cannot race the close of Send.
func (c *Client) trySend(frame []byte) bool {
	if c.closed {
		return false
	}
	select {
	case c.Send <- frame:
		return true
	default:
		return false
	}
}

// readPump reads frames until the peer goes away and hands each text frame
// to onMessage.
func (c *Client) readPump(onMessage MessageFunc) {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, payload, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Client", "Unexpected close", map[string]interface{}{"error": err.Error(), "session_id": c.SessionID})
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		if reply := onMessage(c, payload); reply != nil {
			c.Reply(reply)
		}
	}
}

// writePump pumps frames from Send to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// One frame per message: every frame is a complete view.
			if err := c.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
