package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ReloadMessage is sent to live-reload clients when content changes
const ReloadMessage = "reload"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// dev server only
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub maintains the set of live-reload clients and broadcasts to them
type Hub struct {
	clients map[*websocket.Conn]bool
	mu      sync.Mutex
	logger  *zap.Logger
}

// NewHub creates an empty Hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		logger:  logger,
	}
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	h.logger.Debug("Live-reload client connected")
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
		h.logger.Debug("Live-reload client disconnected")
	}
}

// Broadcast sends message to every client, dropping those that fail
func (h *Hub) Broadcast(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if err := client.WriteMessage(websocket.TextMessage, []byte(message)); err != nil {
			h.logger.Warn("Live-reload write failed", zap.Error(err))
			client.Close()
			delete(h.clients, client)
		}
	}
}

// ServeHTTP upgrades the request and holds the connection until the client leaves
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	h.register(conn)
	defer h.unregister(conn)

	// clients never send; reading detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
