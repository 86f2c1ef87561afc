package panel

import (
	"sync"
	"time"

	"github.com/arcosplaya/concierge/internal/metrics"
	"github.com/arcosplaya/concierge/internal/services/concierge"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Manager holds one panel per visitor session. Panels untouched for ttl are
// dropped together with their subscriptions.
type Manager struct {
	mu     sync.Mutex
	asker  concierge.Asker
	panels *expirable.LRU[string, *Panel]
}

func NewManager(asker concierge.Asker, maxPanels int, ttl time.Duration) *Manager {
	onEvict := func(_ string, p *Panel) {
		p.shutdown()
		metrics.PanelsActive.Dec()
	}

	return &Manager{
		asker:  asker,
		panels: expirable.NewLRU[string, *Panel](maxPanels, onEvict, ttl),
	}
}

// Get returns the session's panel, creating it on first use, and refreshes
// its expiry.
func (m *Manager) Get(sessionID string) *Panel {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.panels.Get(sessionID); ok {
		m.panels.Add(sessionID, p)
		return p
	}

	// an expired entry may still be present; evict it properly first
	m.panels.Remove(sessionID)

	p := New(m.asker)
	m.panels.Add(sessionID, p)
	metrics.PanelsActive.Inc()
	return p
}

// Remove drops the session's panel and closes its subscriptions.
func (m *Manager) Remove(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.panels.Remove(sessionID)
}

func (m *Manager) Len() int {
	return m.panels.Len()
}
