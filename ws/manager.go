package ws

import (
	"sync"

	"connecta_backend/internal/logger"
)

// Event is the wire shape for everything pushed over the socket.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Manager tracks connected clients and fans events out to them. It also
// implements services.RealtimeEmitter.
type Manager struct {
	clients    map[string][]*Client // keyed by user id, one user may hold several tabs
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes connect/disconnect events. Call it once from a goroutine.
func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client.UserID] = append(m.clients[client.UserID], client)
			m.mu.Unlock()
			logger.Debug("ws client connected", "user_id", client.UserID)

		case client := <-m.unregister:
			m.mu.Lock()
			conns := m.clients[client.UserID]
			for i, c := range conns {
				if c == client {
					conns = append(conns[:i], conns[i+1:]...)
					close(client.send)
					break
				}
			}
			if len(conns) == 0 {
				delete(m.clients, client.UserID)
			} else {
				m.clients[client.UserID] = conns
			}
			m.mu.Unlock()
			logger.Debug("ws client disconnected", "user_id", client.UserID)
		}
	}
}

// EmitToUser pushes one event to every open connection of the user.
// Connections with a full send buffer get dropped.
func (m *Manager) EmitToUser(userID, event string, payload interface{}) {
	m.mu.RLock()
	conns := append([]*Client(nil), m.clients[userID]...)
	m.mu.RUnlock()

	msg := Event{Event: event, Data: payload}
	for _, client := range conns {
		select {
		case client.send <- msg:
		default:
			go func(c *Client) { m.unregister <- c }(client)
		}
	}
}

// IsConnected reports whether the user has at least one open socket.
func (m *Manager) IsConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients[userID]) > 0
}

// ClientCount returns the number of open connections.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, conns := range m.clients {
		n += len(conns)
	}
	return n
}
