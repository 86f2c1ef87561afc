package connections

import (
	"sync"
	"time"

	"github.com/arcosplaya/concierge/internal/metrics"
	"github.com/gorilla/websocket"
)

// TimeoutConfig holds the various timeout settings for WebSocket connections
type TimeoutConfig struct {
	PongWait   time.Duration
	PingPeriod time.Duration
	WriteWait  time.Duration
}

// DefaultTimeouts provides sensible default timeout values
var DefaultTimeouts = TimeoutConfig{
	PongWait:   30 * time.Second,
	PingPeriod: 27 * time.Second, // (PongWait * 9) / 10
	WriteWait:  10 * time.Second,
}

// Manager tracks open panel sockets per visitor session, so a session that
// ends can drop its sockets and shutdown can drop all of them.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]map[*websocket.Conn]struct{}
	timeouts TimeoutConfig
}

func NewManager(timeouts TimeoutConfig) *Manager {
	return &Manager{
		sessions: make(map[string]map[*websocket.Conn]struct{}),
		timeouts: timeouts,
	}
}

// AddConnection registers conn under sessionID
func (m *Manager) AddConnection(sessionID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conns, ok := m.sessions[sessionID]
	if !ok {
		conns = make(map[*websocket.Conn]struct{})
		m.sessions[sessionID] = conns
	}
	if _, exists := conns[conn]; !exists {
		conns[conn] = struct{}{}
		metrics.WebsocketConnections.Inc()
	}
}

// RemoveConnection forgets conn. It does not close it.
func (m *Manager) RemoveConnection(sessionID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conns, ok := m.sessions[sessionID]
	if !ok {
		return
	}
	if _, exists := conns[conn]; exists {
		delete(conns, conn)
		metrics.WebsocketConnections.Dec()
	}
	if len(conns) == 0 {
		delete(m.sessions, sessionID)
	}
}

func (m *Manager) HasConnection(sessionID string, conn *websocket.Conn) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.sessions[sessionID][conn]
	return exists
}

func (m *Manager) GetConnectionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, conns := range m.sessions {
		count += len(conns)
	}
	return count
}

func (m *Manager) SessionConnectionCount(sessionID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions[sessionID])
}

// CloseSession closes and forgets every socket of a session, returning how many.
func (m *Manager) CloseSession(sessionID string) int {
	m.mu.Lock()
	conns := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	for conn := range conns {
		closeConn(conn, m.timeouts.WriteWait)
		metrics.WebsocketConnections.Dec()
	}
	return len(conns)
}

// CloseAll closes every tracked socket.
func (m *Manager) CloseAll() int {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]map[*websocket.Conn]struct{})
	m.mu.Unlock()

	n := 0
	for _, conns := range sessions {
		for conn := range conns {
			closeConn(conn, m.timeouts.WriteWait)
			metrics.WebsocketConnections.Dec()
			n++
		}
	}
	return n
}

func closeConn(conn *websocket.Conn, wait time.Duration) {
	// a zero Conn has no underlying network connection
	if conn.UnderlyingConn() == nil {
		return
	}
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "session ended")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wait))
	_ = conn.Close()
}

// GetTimeouts returns the current timeout configuration
func (m *Manager) GetTimeouts() TimeoutConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeouts
}

