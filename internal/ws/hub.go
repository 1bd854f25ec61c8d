// Package ws pushes interview lifecycle events to connected reviewer
// dashboards so they refresh without polling the candidates endpoint.
package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// EventType enumerates dashboard event kinds.
type EventType string

const (
	EventSessionStarted   EventType = "session.started"
	EventSessionCompleted EventType = "session.completed"
)

// Event is one dashboard notification.
type Event struct {
	Type        EventType `json:"type"`
	CandidateID string    `json:"candidate_id"`
	Score       int       `json:"score,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Hub fans events out to every connected dashboard client. Connections
// that fail a write are dropped; clients are expected to reconnect.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	log     zerolog.Logger
}

// NewHub creates an empty hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		log:     log.With().Str("component", "dashboard_hub").Logger(),
	}
}

// Register adds a dashboard connection to the broadcast set.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Debug().Int("clients", n).Msg("dashboard client connected")
}

// Unregister removes and closes a dashboard connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// SessionStarted notifies dashboards that a candidate began an interview.
func (h *Hub) SessionStarted(candidateID string) {
	h.broadcast(Event{
		Type:        EventSessionStarted,
		CandidateID: candidateID,
		Timestamp:   time.Now().UTC(),
	})
}

// SessionCompleted notifies dashboards that a candidate was graded.
func (h *Hub) SessionCompleted(candidateID string, score int) {
	h.broadcast(Event{
		Type:        EventSessionCompleted,
		CandidateID: candidateID,
		Score:       score,
		Timestamp:   time.Now().UTC(),
	})
}

func (h *Hub) broadcast(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(event); err != nil {
			h.log.Debug().Err(err).Msg("dropping stale dashboard client")
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
