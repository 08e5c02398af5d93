package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/Jaro-dev-studio/TriggerTs/internal/domain"
	"github.com/Jaro-dev-studio/TriggerTs/internal/storage"
	apperrors "github.com/Jaro-dev-studio/TriggerTs/pkg/errors"
)

// Phase tracks the wishlist lifecycle. A container starts hydrating, is
// ready once durable state has been read, and resolved once product data
// has been fetched for the current set. Later set changes re-resolve
// without going back through hydration.
type Phase int

const (
	PhaseHydrating Phase = iota
	PhaseReady
	PhaseResolved
)

// ProductResolver fetches product view models for wishlist entries.
type ProductResolver interface {
	GetProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

// Container holds one visitor's wishlist: an ordered set of product IDs
// persisted durably, plus the resolved product views for display. The ID
// set is the source of truth; products are derived.
type Container struct {
	mu        sync.Mutex
	visitorID string
	store     storage.Store
	resolver  ProductResolver
	logger    *slog.Logger

	phase    Phase
	loading  bool
	ids      []string
	products []domain.Product

	// seq orders resolutions so a slow fetch can never overwrite the
	// result of a newer one.
	seq uint64
}

// NewContainer creates an unhydrated wishlist container for a visitor.
func NewContainer(visitorID string, store storage.Store, resolver ProductResolver, logger *slog.Logger) *Container {
	return &Container{
		visitorID: visitorID,
		store:     store,
		resolver:  resolver,
		logger:    logger,
	}
}

// Hydrate loads the persisted ID set and resolves products for it. Absent
// or malformed stored data yields an empty set, never an error: a corrupt
// wishlist must not break the visitor's session. A failed resolution is
// logged and retried on the next set change; only storage failures
// surface as errors.
func (c *Container) Hydrate(ctx context.Context) error {
	c.mu.Lock()
	c.phase = PhaseHydrating
	c.mu.Unlock()

	var ids []string
	data, err := c.store.Get(ctx, c.visitorID, storage.KeyWishlist)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(data, &ids); jsonErr != nil {
			c.logger.Warn("discarding malformed wishlist data",
				"visitor_id", c.visitorID, "error", jsonErr)
			ids = nil
		}
	case errors.Is(err, apperrors.ErrNotFound):
		// First visit, nothing stored yet.
	default:
		return err
	}

	c.mu.Lock()
	c.ids = dedupe(ids)
	c.phase = PhaseReady
	c.mu.Unlock()

	if err := c.resolve(ctx); err != nil {
		// The set is hydrated; product views stay empty until a later
		// resolution succeeds.
		c.logger.Warn("wishlist resolve failed during hydration",
			"visitor_id", c.visitorID, "error", err)
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Toggle adds the product ID if absent and removes it if present, persists
// the full set immediately, then re-resolves products. Returns whether the
// ID is in the wishlist after the toggle.
func (c *Container) Toggle(ctx context.Context, productID string) (bool, error) {
	c.mu.Lock()
	prev := append([]string(nil), c.ids...)
	found := false
	for i, id := range c.ids {
		if id == productID {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		c.ids = append(c.ids, productID)
	}
	present := !found
	ids := append([]string(nil), c.ids...)

	if err := c.persist(ctx, ids); err != nil {
		// Roll back so memory never diverges from durable state.
		c.ids = prev
		c.mu.Unlock()
		return found, err
	}
	c.mu.Unlock()
	if err := c.resolve(ctx); err != nil {
		// The set is already durable; resolution is display-only.
		c.logger.Warn("wishlist resolve failed after toggle",
			"visitor_id", c.visitorID, "error", err)
	}
	return present, nil
}

// Clear empties the wishlist and persists the empty set.
func (c *Container) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.ids = nil
	c.products = nil
	c.seq++
	c.mu.Unlock()

	return c.persist(ctx, []string{})
}

func (c *Container) persist(ctx context.Context, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, c.visitorID, storage.KeyWishlist, data)
}

// resolve fetches product views for the current set. An empty set
// short-circuits without a network call. A sequence number taken at issue
// time discards resolutions that are no longer the latest.
func (c *Container) resolve(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	ids := append([]string(nil), c.ids...)
	if len(ids) == 0 {
		c.products = nil
		c.phase = PhaseResolved
		c.loading = false
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	c.mu.Unlock()

	products, err := c.resolver.GetProductsByIDs(ctx, ids)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		// A newer resolution superseded this one.
		return nil
	}
	c.loading = false
	if err != nil {
		return err
	}
	c.products = products
	c.phase = PhaseResolved
	return nil
}

// IsInWishlist reports whether the product ID is currently in the set.
func (c *Container) IsInWishlist(productID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range c.ids {
		if id == productID {
			return true
		}
	}
	return false
}

// Items returns a copy of the product ID set in insertion order.
func (c *Container) Items() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.ids...)
}

// Products returns the most recently resolved product views.
func (c *Container) Products() []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Product(nil), c.products...)
}

// IsLoading reports whether a resolution is in flight.
func (c *Container) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// CurrentPhase reports the container lifecycle phase.
func (c *Container) CurrentPhase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}
