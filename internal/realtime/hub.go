package realtime

import (
	"encoding/json"
	"sync"

	"github.com/photoclub/club-management-api/internal/logging"
)

// Event is a realtime notification pushed to a user's open connections.
type Event struct {
	Type    string      `json:"type"`
	TaskID  uint64      `json:"task_id,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Event types emitted by the task workflow.
const (
	EventTaskAssigned   = "task_assigned"
	EventTaskUnassigned = "task_unassigned"
	EventTaskStatus     = "task_status_updated"
	EventWorkSubmitted  = "work_submitted"
)

// Client represents a single connection. The network side lives in the
// websocket handler; the hub only needs to write and close.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active user connections and fans events out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint64]map[Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uint64]map[Client]struct{}),
	}
}

// Register adds a client under a user ID.
func (h *Hub) Register(userID uint64, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[Client]struct{})
	}
	h.clients[userID][client] = struct{}{}
}

// Unregister removes a client; the user entry is dropped once empty.
func (h *Hub) Unregister(userID uint64, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.clients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, userID)
		}
	}
}

// HasListeners reports whether the user has at least one open connection.
func (h *Hub) HasListeners(userID uint64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

// Notify sends an event to every open connection of each listed user.
// Safe on a nil hub so services can run without realtime wiring.
func (h *Hub) Notify(userIDs []uint64, event Event) {
	if h == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logging.Logger.WithError(err).Warn("failed to encode realtime event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, userID := range userIDs {
		for client := range h.clients[userID] {
			// A failed write is cleaned up by the connection's own reader loop.
			client.Send(payload)
		}
	}
}
