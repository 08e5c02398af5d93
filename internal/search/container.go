package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Jaro-dev-studio/TriggerTs/internal/domain"
)

// Searcher runs a product text search against the platform.
type Searcher interface {
	SearchProducts(ctx context.Context, query string, first int) ([]domain.Product, error)
}

// Snapshot is a point-in-time view of the search state.
type Snapshot struct {
	Query     string           `json:"query"`
	Products  []domain.Product `json:"products"`
	Searching bool             `json:"searching"`
}

// Container debounces one visitor's search-as-you-type stream. Each new
// query reschedules a fixed-delay timer; only the query standing when the
// timer fires reaches the platform, so a burst of keystrokes costs one
// call. A sequence number taken at dispatch time discards responses that
// are no longer the latest.
type Container struct {
	mu       sync.Mutex
	searcher Searcher
	delay    time.Duration
	first    int
	timeout  time.Duration
	logger   *slog.Logger

	query     string
	products  []domain.Product
	searching bool
	timer     *time.Timer
	seq       uint64
}

// NewContainer creates a search container. delay is the quiescence window
// before a query is dispatched; first caps the result count.
func NewContainer(searcher Searcher, delay time.Duration, first int, logger *slog.Logger) *Container {
	if first <= 0 {
		first = 20
	}
	return &Container{
		searcher: searcher,
		delay:    delay,
		first:    first,
		timeout:  10 * time.Second,
		logger:   logger,
	}
}

// SetQuery records a keystroke. A pending timer is cancelled and
// rescheduled; an in-flight request is left to finish and discarded by the
// sequence guard if it comes back stale. A blank query short-circuits to
// empty results without touching the network.
func (c *Container) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = query
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	if strings.TrimSpace(query) == "" {
		c.products = nil
		c.searching = false
		return
	}

	c.searching = true
	seq := c.seq
	c.timer = time.AfterFunc(c.delay, func() {
		c.dispatch(seq, query)
	})
}

func (c *Container) dispatch(seq uint64, query string) {
	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	products, err := c.searcher.SearchProducts(ctx, query, c.first)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		// A newer query superseded this response.
		return
	}
	c.searching = false
	if err != nil {
		// Degrade to empty results; the visitor can keep typing.
		c.logger.Warn("search dispatch failed", "query", query, "error", err)
		c.products = nil
		return
	}
	c.products = products
}

// Snapshot returns the current query, results, and in-flight flag.
func (c *Container) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Query:     c.query,
		Products:  append([]domain.Product(nil), c.products...),
		Searching: c.searching,
	}
}

// Clear resets the container to its idle state.
func (c *Container) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.query = ""
	c.products = nil
	c.searching = false
}
