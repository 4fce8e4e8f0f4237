package hub

import (
	"sync"

	"github.com/patelshaan/imposter/internal/models"
)

// Snapshot is one committed room state pushed to subscribers. Room is nil
// when the commit deleted the room. Version lets consumers de-duplicate
// deliveries arriving over more than one path.
type Snapshot struct {
	Code    string
	Version int64
	Room    *models.Room
}

// Client is a single subscriber to a room's change feed. It's essentially a
// channel the watch handler or store subscription listens to.
type Client chan Snapshot

// Hub fans committed room snapshots out to all subscribers of that room. The
// memory and postgres store drivers publish into it on every local commit.
type Hub struct {
	rooms map[string]map[Client]bool
	mu    sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[Client]bool),
	}
}

// Subscribe adds a new client to a specific room.
func (h *Hub) Subscribe(code string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[code]; !ok {
		h.rooms[code] = make(map[Client]bool)
	}
	h.rooms[code][client] = true
}

// Unsubscribe removes a client from a room and closes its channel to signal
// the listener to stop.
func (h *Hub) Unsubscribe(code string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.rooms[code]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client)
			if len(clients) == 0 {
				delete(h.rooms, code)
			}
		}
	}
}

// Broadcast sends a snapshot to all clients subscribed to the room.
func (h *Hub) Broadcast(snap Snapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[snap.Code] {
		// Non-blocking send so a slow client never blocks a commit path.
		select {
		case client <- snap:
		default:
		}
	}
}
