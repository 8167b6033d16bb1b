package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"niche-picker-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "picker_session_frames"

type Hub struct {
	// Registered clients map: session ID -> open tabs on that session
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	// done is closed when Run returns
	done chan struct{}

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out, nil on a single instance
	rdb *redis.Client
	// instanceID marks frames this process published so it skips its own echo
	instanceID string

	logger logger.ILogger
}

type clusterFrame struct {
	Origin    string          `json:"origin"`
	SessionID string          `json:"session_id"`
	Frame     json.RawMessage `json:"frame"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// Run serves register and unregister requests until ctx is done, then
// closes every client so their write pumps hang up.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// Register hands client to Run. It reports false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister never blocks past the hub's shutdown.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.SessionID]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
			client.closed = true
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.SessionID]) == 0 {
		delete(h.clients, client.SessionID)
		h.logger.Info("Hub", "Session has no open clients", map[string]interface{}{"session_id": client.SessionID})
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sessionID, clients := range h.clients {
		for _, client := range clients {
			client.closed = true
			close(client.Send)
		}
		delete(h.clients, sessionID)
	}
}

// Clients reports how many connections are open on sessionID in this process.
func (h *Hub) Clients(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// Send delivers frame to every local client of sessionID and, with Redis
// configured, to the clients other instances hold.
func (h *Hub) Send(ctx context.Context, sessionID string, frame []byte) {
	h.deliver(sessionID, frame)

	if h.rdb == nil {
		return
	}
	payload, err := json.Marshal(clusterFrame{Origin: h.instanceID, SessionID: sessionID, Frame: frame})
	if err != nil {
		return
	}
	if err := h.rdb.Publish(ctx, clusterChannel, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Failed to publish frame to cluster", map[string]interface{}{"error": err.Error(), "session_id": sessionID})
	}
}

// deliver sends under the read lock so no Send channel closes mid-send.
// Clients with a full buffer are dropped afterwards.
func (h *Hub) deliver(sessionID string, frame []byte) {
	var slow []*Client
	h.mu.RLock()
	for _, client := range h.clients[sessionID] {
		if !client.trySend(frame) {
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	if len(slow) == 0 {
		return
	}
	h.mu.Lock()
	for _, client := range slow {
		h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"session_id": sessionID})
		h.removeLocked(client)
	}
	h.mu.Unlock()
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload clusterFrame
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn("Hub", "Cluster frame parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			if payload.Origin == h.instanceID {
				continue
			}
			h.deliver(payload.SessionID, payload.Frame)
		}
	}
}
