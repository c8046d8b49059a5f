package notifications

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"chronicle/internal/models"
	"chronicle/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	// Max connections per user
	maxConnsPerUser = 8
	// Max total connections
	maxTotalConns = 10000
)

// Hub is a websocket hub that maps a user email to its open connections.
type Hub struct {
	mu         sync.RWMutex
	conns      map[string]map[*Client]struct{}
	totalConns int
	shutdown   chan struct{}
	done       chan struct{}
}

// NewHub creates a new Hub instance for managing notification streams.
func NewHub() *Hub {
	return &Hub{
		conns:    make(map[string]map[*Client]struct{}),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Register adds a connection for the given email. Returns the Client or
// an error when a connection limit is exceeded.
func (h *Hub) Register(email string, conn *websocket.Conn) (*Client, error) {
	email = models.NormalizeEmail(email)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalConns >= maxTotalConns {
		return nil, errors.New("server connection limit reached")
	}

	m, ok := h.conns[email]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[email] = m
	}

	if len(m) >= maxConnsPerUser {
		return nil, errors.New("user connection limit reached")
	}

	client := NewClient(h, conn, email)
	m[client] = struct{}{}
	h.totalConns++
	observability.ActiveWebSockets.Inc()

	return client, nil
}

// UnregisterClient removes a client from the hub.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if m, ok := h.conns[client.Email]; ok {
		if _, exists := m[client]; exists {
			delete(m, client)
			h.totalConns--
			observability.ActiveWebSockets.Dec()
		}
		if len(m) == 0 {
			delete(h.conns, client.Email)
		}
	}
}

// Broadcast sends message to all connections for the given email.
func (h *Hub) Broadcast(email string, message string) {
	email = models.NormalizeEmail(email)

	h.mu.RLock()
	defer h.mu.RUnlock()
	if clients, ok := h.conns[email]; ok {
		data := []byte(message)
		for c := range clients {
			c.TrySend(data)
		}
	}
}

// BroadcastAll sends message to every connected websocket client.
func (h *Hub) BroadcastAll(message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data := []byte(message)
	for _, clients := range h.conns {
		for c := range clients {
			c.TrySend(data)
		}
	}
}

// IsOnline reports whether a user currently has at least one open connection.
func (h *Hub) IsOnline(email string) bool {
	email = models.NormalizeEmail(email)

	h.mu.RLock()
	defer h.mu.RUnlock()
	clients, ok := h.conns[email]
	return ok && len(clients) > 0
}

// StartWiring connects the Notifier to this hub: it subscribes to the
// Redis patterns and forwards payloads to matching connections.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartPatternSubscriber(ctx, func(channel, payload string) {
		if channel == broadcastChannel {
			h.BroadcastAll(payload)
			return
		}
		email, ok := strings.CutPrefix(channel, userChannelPrefix)
		if !ok || email == "" {
			log.Printf("invalid notification channel: %s", channel)
			return
		}
		h.Broadcast(email, payload)
	})
}

// Shutdown gracefully closes all websocket connections.
func (h *Hub) Shutdown(_ context.Context) error {
	close(h.shutdown)

	h.mu.Lock()
	for email, clients := range h.conns {
		for client := range clients {
			if client.Conn == nil {
				continue
			}
			if err := client.Conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
				log.Printf("failed to write close message for %s: %v", email, err)
			}
			if err := client.Conn.Close(); err != nil {
				log.Printf("failed to close websocket for %s: %v", email, err)
			}
		}
	}
	h.conns = make(map[string]map[*Client]struct{})
	h.mu.Unlock()

	close(h.done)

	return nil
}
