package cart

import (
	"sync"
	"time"

	"github.com/Jaro-dev-studio/TriggerTs/internal/domain"
)

// Container holds one visitor's cart in memory. Carts are session-scoped:
// they live only as long as the visitor is active and are never persisted.
// All mutations are atomic under the container mutex.
type Container struct {
	mu         sync.Mutex
	lines      []domain.CartLine
	lastActive time.Time
}

// NewContainer creates an empty cart container.
func NewContainer() *Container {
	return &Container{lastActive: time.Now()}
}

func (c *Container) touch() {
	c.lastActive = time.Now()
}

// findLine returns the index of the line matching (productID, size), or -1.
func (c *Container) findLine(productID, size string) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID && c.lines[i].Size == size {
			return i
		}
	}
	return -1
}

// AddItem adds one unit of the item. An existing (productID, size) line
// gains one unit; otherwise a new line with quantity 1 is appended, so
// insertion order is preserved. Returns the resulting snapshot so the
// caller can drive any presentation side effects.
func (c *Container) AddItem(item domain.CartItem) domain.CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	if i := c.findLine(item.ProductID, item.Size); i >= 0 {
		c.lines[i].Quantity++
	} else {
		c.lines = append(c.lines, domain.CartLine{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Size:      item.Size,
			Quantity:  1,
			Image:     item.Image,
		})
	}
	return c.snapshotLocked()
}

// RemoveItem deletes the matching line. Removing an absent line is a no-op.
func (c *Container) RemoveItem(productID, size string) domain.CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	if i := c.findLine(productID, size); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
	return c.snapshotLocked()
}

// UpdateQuantity sets the line quantity verbatim. A quantity of zero or
// less removes the line; there is no upper bound.
func (c *Container) UpdateQuantity(productID, size string, quantity int) domain.CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	i := c.findLine(productID, size)
	if i < 0 {
		return c.snapshotLocked()
	}
	if quantity <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	} else {
		c.lines[i].Quantity = quantity
	}
	return c.snapshotLocked()
}

// Clear empties the cart unconditionally.
func (c *Container) Clear() domain.CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	c.lines = nil
	return c.snapshotLocked()
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Container) Lines() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyLinesLocked()
}

// ItemCount returns the number of distinct lines, not the unit total.
func (c *Container) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Subtotal returns the sum of line totals, recomputed from current lines.
func (c *Container) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subtotalLocked()
}

// Snapshot returns a point-in-time view of the cart.
func (c *Container) Snapshot() domain.CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// LastActive reports when the cart was last mutated.
func (c *Container) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

func (c *Container) copyLinesLocked() []domain.CartLine {
	lines := make([]domain.CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *Container) subtotalLocked() float64 {
	var total float64
	for _, l := range c.lines {
		total += l.LineTotal()
	}
	return total
}

func (c *Container) snapshotLocked() domain.CartSnapshot {
	return domain.CartSnapshot{
		Lines:     c.copyLinesLocked(),
		ItemCount: len(c.lines),
		Subtotal:  c.subtotalLocked(),
	}
}
