package sse

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/tumbleweed-games/mostwanted/internal/model"
)

// Hub manages the live connections of a single town and fans events out to
// them. Register/unregister/broadcast are serialized through the event
// loop; a client whose buffer is full at send time is skipped.
type Hub struct {
	townCode model.TownCode
	clients  map[*Client]bool
	mu       sync.RWMutex
	logger   *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub creates a new Hub for a town
func NewHub(townCode model.TownCode, logger *slog.Logger) *Hub {
	return &Hub{
		townCode:   townCode,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("town", string(townCode))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Info("sse hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("sse client registered",
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				duration := time.Since(client.connectedAt)
				h.logger.Info("sse client unregistered",
					slog.Duration("connection_duration", duration),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					dropped++
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("sse broadcast partial failure",
					slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("sse hub stopped")
			return
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast sends a message to all clients
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("sse broadcast dropped - hub buffer full")
	}
}

// BroadcastEvent sends an SSE event with a name and data
func (h *Hub) BroadcastEvent(eventName, data string) {
	h.Broadcast(formatSSEMessage(eventName, data))
}

// Close shuts down the hub
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage formats an SSE message with event name and data.
// Multi-line data gets a "data: " prefix on each line.
func formatSSEMessage(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: " + eventName + "\n")
	for _, line := range strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n") {
		b.WriteString("data: " + line + "\n")
	}
	b.WriteString("\n")
	return []byte(b.String())
}

// HubManager owns one hub per town. Broadcasts are scoped to the town the
// connection subscribed to; there is no global fan-out.
type HubManager struct {
	hubs   map[model.TownCode]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.TownCode]*Hub),
		logger: logger.With(slog.String("component", "sse")),
	}
}

// GetOrCreateHub returns the hub for a town, creating one if it doesn't exist
func (m *HubManager) GetOrCreateHub(townCode model.TownCode) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[townCode]; ok {
		return hub
	}

	hub := NewHub(townCode, m.logger)
	m.hubs[townCode] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a town, or nil if it doesn't exist
func (m *HubManager) GetHub(townCode model.TownCode) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[townCode]
}

// RemoveHub removes and closes a hub
func (m *HubManager) RemoveHub(townCode model.TownCode) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[townCode]; ok {
		hub.Close()
		delete(m.hubs, townCode)
		m.logger.Info("sse hub removed", slog.String("town", string(townCode)))
	}
}
