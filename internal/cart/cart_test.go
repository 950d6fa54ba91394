package cart

import (
	"context"
	"testing"

	"buildmart/internal/kv"
	"buildmart/internal/models"
	"buildmart/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCart(t *testing.T) (*Cart, *storage.Storage) {
	t.Helper()
	logger := zerolog.Nop()
	store := storage.New(kv.NewMemoryStore(), &logger)
	return New(context.Background(), store), store
}

func paint(qty int) models.CartItem {
	return models.CartItem{
		Type: models.ItemTypeProduct, ItemID: "prod-1",
		Name: "Premium Interior Paint", Price: 1899, Quantity: qty,
	}
}

func TestAddMergesByCompositeKey(t *testing.T) {
	c, _ := newTestCart(t)
	ctx := context.Background()

	first := c.Add(ctx, paint(1))
	second := c.Add(ctx, paint(2))

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)
	assert.Equal(t, 3, c.ItemCount())
}

func TestAddDistinctTypesStaySeparate(t *testing.T) {
	c, _ := newTestCart(t)
	ctx := context.Background()

	c.Add(ctx, paint(1))
	c.Add(ctx, models.CartItem{
		Type: models.ItemTypeService, ItemID: "prod-1", Name: "Painting", Price: 500, Quantity: 1,
	})

	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Contains("prod-1", models.ItemTypeProduct))
	assert.True(t, c.Contains("prod-1", models.ItemTypeService))
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	c, _ := newTestCart(t)
	ctx := context.Background()

	a := c.Add(ctx, models.CartItem{Type: models.ItemTypeProduct, ItemID: "a", Quantity: 1})
	b := c.Add(ctx, models.CartItem{Type: models.ItemTypeProduct, ItemID: "b", Quantity: 1})

	assert.NotEqual(t, a.ID, b.ID)
	assert.Contains(t, a.ID, "product-a-")
}

func TestTotalAndItemCount(t *testing.T) {
	c, _ := newTestCart(t)
	ctx := context.Background()

	assert.Equal(t, 0.0, c.Total())

	c.Add(ctx, paint(2))
	assert.Equal(t, 3798.0, c.Total())
	assert.Equal(t, 2, c.ItemCount())

	c.Add(ctx, models.CartItem{Type: models.ItemTypeProduct, ItemID: "prod-2", Price: 399, Quantity: 5})
	assert.Equal(t, 3798.0+1995.0, c.Total())
	assert.Equal(t, 7, c.ItemCount())
}

func TestUpdateQuantity(t *testing.T) {
	c, _ := newTestCart(t)
	ctx := context.Background()

	line := c.Add(ctx, paint(2))

	t.Run("Replace", func(t *testing.T) {
		c.UpdateQuantity(ctx, line.ID, 5)
		assert.Equal(t, 5, c.ItemCount())
	})

	t.Run("ZeroRemoves", func(t *testing.T) {
		c.UpdateQuantity(ctx, line.ID, 0)
		assert.Equal(t, 0, c.Len())
		assert.False(t, c.Contains("prod-1", models.ItemTypeProduct))
	})

	t.Run("NegativeRemoves", func(t *testing.T) {
		again := c.Add(ctx, paint(1))
		c.UpdateQuantity(ctx, again.ID, -3)
		assert.Equal(t, 0, c.Len())
	})
}

func TestRemove(t *testing.T) {
	c, _ := newTestCart(t)
	ctx := context.Background()

	line := c.Add(ctx, paint(1))
	c.Remove(ctx, line.ID)
	assert.Equal(t, 0, c.Len())

	// Unknown id is a no-op.
	c.Add(ctx, paint(1))
	c.Remove(ctx, "missing")
	assert.Equal(t, 1, c.Len())
}

func TestWriteThroughPersistence(t *testing.T) {
	c, store := newTestCart(t)
	ctx := context.Background()

	c.Add(ctx, paint(2))

	persisted := store.Cart().Get(ctx)
	require.Len(t, persisted, 1)
	assert.Equal(t, 2, persisted[0].Quantity)

	// A fresh aggregate over the same storage sees the same lines.
	reloaded := New(ctx, store)
	assert.Equal(t, 2, reloaded.ItemCount())
	assert.Equal(t, 3798.0, reloaded.Total())

	c.Clear(ctx)
	assert.Empty(t, store.Cart().Get(ctx))
}
