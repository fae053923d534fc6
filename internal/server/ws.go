package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// LiveHandler broadcasts real-time analysis events via WebSocket.
// The processing pipeline pushes events into it; every connected
// client receives each event as one JSON message.
type LiveHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewLiveHandler creates a new LiveHandler with no connected clients.
func NewLiveHandler() *LiveHandler {
	return &LiveHandler{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// ClientCount returns the number of connected WebSocket clients.
func (h *LiveHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends an event to all connected clients. The payload is
// wrapped with an event type and a timestamp. The exclusive lock
// serializes writers: every view pipeline broadcasts from its own
// goroutine, and gorilla/websocket allows only one concurrent writer
// per connection. Clients whose write fails are dropped.
func (h *LiveHandler) Broadcast(eventType string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.clients) == 0 {
		return
	}

	msg, err := json.Marshal(map[string]any{
		"type":      eventType,
		"payload":   payload,
		"timestamp": time.Now().UnixMilli(),
	})
	if err != nil {
		return
	}

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}
