package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Jaro-dev-studio/TriggerTs/internal/storage"
)

// Manager maps visitor IDs to restored session stores. Restore runs once,
// on first access, so expired tokens are reconciled before any auth
// surface is consulted.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Store
	storage  storage.Store
	gateway  Gateway
	logger   *slog.Logger
}

// NewManager creates a session manager.
func NewManager(store storage.Store, gateway Gateway, logger *slog.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Store),
		storage:  store,
		gateway:  gateway,
		logger:   logger,
	}
}

// Get returns the visitor's session store, restoring it on first use.
func (m *Manager) Get(ctx context.Context, visitorID string) (*Store, error) {
	m.mu.Lock()
	s, ok := m.sessions[visitorID]
	if !ok {
		s = NewStore(visitorID, m.storage, m.gateway, m.logger)
		m.sessions[visitorID] = s
	}
	m.mu.Unlock()

	if !ok {
		if err := s.Restore(ctx); err != nil {
			m.mu.Lock()
			delete(m.sessions, visitorID)
			m.mu.Unlock()
			return nil, err
		}
	}
	return s, nil
}
