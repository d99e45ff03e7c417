package ws

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Hub tracks broadcast rooms keyed by listing ID.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[uint]map[*Client]bool)}
}

func (h *Hub) Join(listingID uint, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[listingID] == nil {
		h.rooms[listingID] = make(map[*Client]bool)
	}
	h.rooms[listingID][c] = true
}

func (h *Hub) Leave(listingID uint, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m := h.rooms[listingID]; m != nil {
		delete(m, c)
		if len(m) == 0 {
			delete(h.rooms, listingID)
		}
	}
}

// Broadcast fans the payload out to every room member, including the
// origin connection. A subscriber whose send buffer is full is dropped
// rather than blocking the room.
func (h *Hub) Broadcast(listingID uint, payload any) {
	b, _ := json.Marshal(payload)
	h.mu.RLock()
	conns := make([]*Client, 0, len(h.rooms[listingID]))
	for c := range h.rooms[listingID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		select {
		case c.send <- b:
		default:
			go c.Close()
		}
	}
}

func (h *Hub) RoomSize(listingID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[listingID])
}
