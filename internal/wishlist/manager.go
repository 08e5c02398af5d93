package wishlist

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Jaro-dev-studio/TriggerTs/internal/storage"
)

// Manager maps visitor IDs to hydrated wishlist containers. Hydration
// happens once, on first access; later requests reuse the resident
// container.
type Manager struct {
	mu       sync.Mutex
	lists    map[string]*Container
	store    storage.Store
	resolver ProductResolver
	logger   *slog.Logger
}

// NewManager creates a wishlist manager.
func NewManager(store storage.Store, resolver ProductResolver, logger *slog.Logger) *Manager {
	return &Manager{
		lists:    make(map[string]*Container),
		store:    store,
		resolver: resolver,
		logger:   logger,
	}
}

// Get returns the visitor's wishlist container, hydrating it on first use.
func (m *Manager) Get(ctx context.Context, visitorID string) (*Container, error) {
	m.mu.Lock()
	c, ok := m.lists[visitorID]
	if !ok {
		c = NewContainer(visitorID, m.store, m.resolver, m.logger)
		m.lists[visitorID] = c
	}
	m.mu.Unlock()

	if !ok {
		if err := c.Hydrate(ctx); err != nil {
			m.mu.Lock()
			delete(m.lists, visitorID)
			m.mu.Unlock()
			return nil, err
		}
	}
	return c, nil
}
