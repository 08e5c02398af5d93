package cart

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewManager(30*time.Minute, logger)
}

func TestManager_GetCreatesLazily(t *testing.T) {
	m := newTestManager(t)

	assert.Equal(t, 0, m.Len())
	c := m.Get("visitor-1")
	assert.NotNil(t, c)
	assert.Equal(t, 1, m.Len())
}

func TestManager_GetReturnsSameContainer(t *testing.T) {
	m := newTestManager(t)

	c1 := m.Get("visitor-1")
	c1.AddItem(teeM())
	c2 := m.Get("visitor-1")

	assert.Same(t, c1, c2)
	assert.Equal(t, 1, c2.ItemCount())
}

func TestManager_VisitorsAreIsolated(t *testing.T) {
	m := newTestManager(t)

	m.Get("visitor-1").AddItem(teeM())

	assert.Equal(t, 0, m.Get("visitor-2").ItemCount())
}

func TestManager_Reset(t *testing.T) {
	m := newTestManager(t)
	m.Get("visitor-1").AddItem(teeM())

	m.Reset("visitor-1")

	assert.Equal(t, 0, m.Get("visitor-1").ItemCount())
}

func TestManager_SweepEvictsIdleCarts(t *testing.T) {
	m := newTestManager(t)
	m.Get("visitor-1")
	m.Get("visitor-2")

	evicted := m.sweep(time.Now().Add(31 * time.Minute))

	assert.Equal(t, 2, evicted)
	assert.Equal(t, 0, m.Len())
}

func TestManager_SweepKeepsActiveCarts(t *testing.T) {
	m := newTestManager(t)
	m.Get("visitor-1")

	evicted := m.sweep(time.Now().Add(time.Minute))

	assert.Equal(t, 0, evicted)
	assert.Equal(t, 1, m.Len())
}
