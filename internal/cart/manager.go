package cart

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Manager maps visitor IDs to their cart containers. Containers are created
// lazily on first use and swept once they have been idle longer than the
// configured timeout, matching the session scope of a cart.
type Manager struct {
	mu          sync.Mutex
	carts       map[string]*Container
	idleTimeout time.Duration
	logger      *slog.Logger
}

// NewManager creates a cart manager. idleTimeout bounds how long an
// untouched cart stays resident.
func NewManager(idleTimeout time.Duration, logger *slog.Logger) *Manager {
	return &Manager{
		carts:       make(map[string]*Container),
		idleTimeout: idleTimeout,
		logger:      logger,
	}
}

// Get returns the visitor's cart, creating an empty one if needed.
func (m *Manager) Get(visitorID string) *Container {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.carts[visitorID]
	if !ok {
		c = NewContainer()
		m.carts[visitorID] = c
	}
	return c
}

// Reset drops the visitor's cart entirely.
func (m *Manager) Reset(visitorID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, visitorID)
}

// Len reports the number of resident carts.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.carts)
}

// sweep evicts carts idle longer than the timeout and returns the count.
func (m *Manager) sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var evicted int
	for id, c := range m.carts {
		if now.Sub(c.LastActive()) > m.idleTimeout {
			delete(m.carts, id)
			evicted++
		}
	}
	return evicted
}

// Run sweeps idle carts periodically until the context is cancelled.
func (m *Manager) Run(ctx context.Context) {
	interval := m.idleTimeout / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := m.sweep(now); n > 0 {
				m.logger.Debug("swept idle carts", "evicted", n)
			}
		}
	}
}
