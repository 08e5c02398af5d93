package search

import (
	"log/slog"
	"sync"
	"time"
)

// Manager maps visitor IDs to search containers.
type Manager struct {
	mu         sync.Mutex
	containers map[string]*Container
	searcher   Searcher
	delay      time.Duration
	first      int
	logger     *slog.Logger
}

// NewManager creates a search manager with a shared debounce delay.
func NewManager(searcher Searcher, delay time.Duration, first int, logger *slog.Logger) *Manager {
	return &Manager{
		containers: make(map[string]*Container),
		searcher:   searcher,
		delay:      delay,
		first:      first,
		logger:     logger,
	}
}

// Get returns the visitor's search container, creating one if needed.
func (m *Manager) Get(visitorID string) *Container {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.containers[visitorID]
	if !ok {
		c = NewContainer(m.searcher, m.delay, m.first, m.logger)
		m.containers[visitorID] = c
	}
	return c
}
