// Package websocket pushes request-lifecycle and inventory events to
// connected dashboard clients, scoped by company.
package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event types carried on the feed.
const (
	EventRequestCreated  = "REQUEST_CREATED"
	EventRequestApproved = "REQUEST_APPROVED"
	EventRequestRejected = "REQUEST_REJECTED"
	EventRequestReturned = "REQUEST_RETURNED"
	EventAssetChanged    = "ASSET_CHANGED"
	EventTeamChanged     = "TEAM_CHANGED"
)

// Update is one feed entry.
type Update struct {
	Type      string      `json:"type"`
	EntityID  string      `json:"entityId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Actor     string      `json:"actor,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected clients per company name.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*client]struct{}
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		logger:  logger,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the SPA origin; auth rides on the
	// company query parameter like the rest of the read surface.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Serve upgrades the connection and registers it under the company given
// in the query string.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	company := r.URL.Query().Get("company")
	if company == "" {
		http.Error(w, "company required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 16)}

	h.mu.Lock()
	if h.clients[company] == nil {
		h.clients[company] = make(map[*client]struct{})
	}
	h.clients[company][c] = struct{}{}
	h.mu.Unlock()

	h.logger.Info("websocket client connected", zap.String("company", company))

	go h.writeLoop(c)
	h.readLoop(company, c)
}

// Broadcast fans an update out to every client of the given company.
// Slow clients are dropped rather than blocking the broadcast.
func (h *Hub) Broadcast(company string, update Update) {
	if h == nil {
		return
	}
	if update.Timestamp.IsZero() {
		update.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(update)
	if err != nil {
		h.logger.Error("failed to marshal activity update", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients[company] {
		select {
		case c.send <- data:
		default:
			close(c.send)
			delete(h.clients[company], c)
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

func (h *Hub) readLoop(company string, c *client) {
	defer func() {
		h.mu.Lock()
		if _, ok := h.clients[company][c]; ok {
			delete(h.clients[company], c)
			close(c.send)
		}
		h.mu.Unlock()
		c.conn.Close()
	}()

	for {
		// Clients never send application data; the read pump only
		// surfaces disconnects.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
