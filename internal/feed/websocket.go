package feed

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// WebSocketHandler upgrades dashboard connections and parks them in the hub
// until the client goes away.
type WebSocketHandler struct {
	hub           *Hub
	allowedOrigin string
	isDev         bool
}

// NewWebSocketHandler creates a feed WebSocket handler.
func NewWebSocketHandler(hub *Hub, allowedOrigin string, isDev bool) *WebSocketHandler {
	return &WebSocketHandler{
		hub:           hub,
		allowedOrigin: allowedOrigin,
		isDev:         isDev,
	}
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept feed WebSocket", "error", err, "ip", r.RemoteAddr)
		return
	}

	id := uuid.NewString()
	h.hub.Subscribe(id, conn)
	defer h.hub.Unsubscribe(id, conn)
	defer func() {
		if closeErr := conn.Close(websocket.StatusNormalClosure, "feed closed"); closeErr != nil {
			slog.Debug("Failed to close feed websocket", "error", closeErr, "subscriber_id", id)
		}
	}()

	// The feed is one-way: block reading until the client disconnects,
	// discarding anything it sends.
	ctx := r.Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return
		}
	}
}

func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	if h.isDev || h.allowedOrigin == "" {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return strings.HasPrefix(origin, h.allowedOrigin)
}
