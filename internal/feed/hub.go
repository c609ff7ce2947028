// Package feed provides a WebSocket broadcast of completed reviews so the
// dashboard can update live without polling.
package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/domain"
)

const broadcastTimeout = 5 * time.Second

// Hub tracks connected dashboard subscribers and fans completed reviews out
// to them. Delivery is best effort: a subscriber that errors is dropped.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]*websocket.Conn
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]*websocket.Conn),
	}
}

// Subscribe registers a connection under the given ID, replacing any
// previous connection with the same ID.
func (h *Hub) Subscribe(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.subscribers[id]; ok && existing != conn {
		_ = existing.Close(websocket.StatusNormalClosure, "subscriber replaced")
	}
	h.subscribers[id] = conn
	slog.Info("Feed subscriber connected", "subscriber_id", id, "total", len(h.subscribers))
}

// Unsubscribe removes a connection if it is still the registered one.
func (h *Hub) Unsubscribe(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.subscribers[id]; ok && current == conn {
		delete(h.subscribers, id)
		slog.Info("Feed subscriber disconnected", "subscriber_id", id, "total", len(h.subscribers))
	}
}

// Broadcast sends the review to every subscriber as JSON. Subscribers whose
// write fails are closed and removed.
func (h *Hub) Broadcast(ctx context.Context, review *domain.Review) {
	payload, err := json.Marshal(review)
	if err != nil {
		slog.Error("Failed to encode review for feed", "error", err, "review_id", review.ID)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, conn := range h.subscribers {
		writeCtx, cancel := context.WithTimeout(ctx, broadcastTimeout)
		err := conn.Write(writeCtx, websocket.MessageText, payload)
		cancel()
		if err != nil {
			slog.Debug("Dropping feed subscriber after write failure", "subscriber_id", id, "error", err)
			_ = conn.Close(websocket.StatusAbnormalClosure, "write failed")
			delete(h.subscribers, id)
		}
	}
}

// Len returns the number of connected subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
