package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaro-dev-studio/TriggerTs/internal/domain"
)

func teeM() domain.CartItem {
	return domain.CartItem{ProductID: "gid://shopify/Product/1", Title: "Essential Tee", Price: 48.0, Size: "M"}
}

func teeL() domain.CartItem {
	return domain.CartItem{ProductID: "gid://shopify/Product/1", Title: "Essential Tee", Price: 48.0, Size: "L"}
}

func TestContainer_AddItem_NewLine(t *testing.T) {
	c := NewContainer()

	snap := c.AddItem(teeM())

	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 1, snap.Lines[0].Quantity)
	assert.Equal(t, 48.0, snap.Subtotal)
}

func TestContainer_AddItem_SameProductSameSizeMerges(t *testing.T) {
	c := NewContainer()

	c.AddItem(teeM())
	c.AddItem(teeM())
	snap := c.AddItem(teeM())

	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 3, snap.Lines[0].Quantity)
}

func TestContainer_AddItem_SameProductDifferentSizeOpensNewLine(t *testing.T) {
	c := NewContainer()

	c.AddItem(teeM())
	snap := c.AddItem(teeL())

	require.Len(t, snap.Lines, 2)
	assert.Equal(t, "M", snap.Lines[0].Size)
	assert.Equal(t, "L", snap.Lines[1].Size)
}

func TestContainer_SubtotalLifecycle(t *testing.T) {
	c := NewContainer()

	snap := c.AddItem(teeM())
	assert.Equal(t, 48.0, snap.Subtotal)

	snap = c.AddItem(teeM())
	assert.Equal(t, 96.0, snap.Subtotal)

	snap = c.UpdateQuantity(teeM().ProductID, "M", 1)
	assert.Equal(t, 48.0, snap.Subtotal)

	snap = c.Clear()
	assert.Equal(t, 0.0, snap.Subtotal)
	assert.Empty(t, snap.Lines)
}

func TestContainer_RemoveItem_AbsentIsNoop(t *testing.T) {
	c := NewContainer()
	c.AddItem(teeM())

	snap := c.RemoveItem("gid://shopify/Product/999", "M")

	require.Len(t, snap.Lines, 1)
}

func TestContainer_UpdateQuantity_ZeroEqualsRemove(t *testing.T) {
	c := NewContainer()
	item := teeM()
	c.AddItem(item)

	byUpdate := c.UpdateQuantity(item.ProductID, item.Size, 0)

	c2 := NewContainer()
	c2.AddItem(item)
	byRemove := c2.RemoveItem(item.ProductID, item.Size)

	assert.Equal(t, byRemove, byUpdate)
	assert.Empty(t, byUpdate.Lines)
}

func TestContainer_UpdateQuantity_NegativeRemoves(t *testing.T) {
	c := NewContainer()
	item := teeM()
	c.AddItem(item)

	snap := c.UpdateQuantity(item.ProductID, item.Size, -3)

	assert.Empty(t, snap.Lines)
}

func TestContainer_UpdateQuantity_AbsentLineIsNoop(t *testing.T) {
	c := NewContainer()

	snap := c.UpdateQuantity("gid://shopify/Product/1", "M", 5)

	assert.Empty(t, snap.Lines)
}

func TestContainer_UpdateQuantity_NoUpperBound(t *testing.T) {
	c := NewContainer()
	item := teeM()
	c.AddItem(item)

	snap := c.UpdateQuantity(item.ProductID, item.Size, 10000)

	assert.Equal(t, 10000, snap.Lines[0].Quantity)
}

func TestContainer_ItemCount_CountsDistinctLines(t *testing.T) {
	c := NewContainer()
	c.AddItem(teeM())
	c.AddItem(teeM())
	c.AddItem(teeL())

	assert.Equal(t, 2, c.ItemCount())
}

func TestContainer_Lines_ReturnsCopy(t *testing.T) {
	c := NewContainer()
	c.AddItem(teeM())

	lines := c.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestContainer_ConcurrentAdds(t *testing.T) {
	c := NewContainer()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.AddItem(teeM())
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 50, snap.Lines[0].Quantity)
}
