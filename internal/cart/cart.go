package cart

import (
	"context"
	"fmt"
	"sync"

	"buildmart/internal/models"
	"buildmart/internal/storage"

	"github.com/google/uuid"
)

// Cart holds the in-progress selection in memory and mirrors every mutation
// to the persisted cart collection (write-through). The composite identity
// of a line is (ItemID, Type): adding the same pair again increments the
// existing quantity instead of appending a duplicate row.
type Cart struct {
	mu    sync.Mutex
	items []models.CartItem
	store *storage.Storage
}

// New loads the persisted cart, if any.
func New(ctx context.Context, store *storage.Storage) *Cart {
	return &Cart{
		items: store.Cart().Get(ctx),
		store: store,
	}
}

// Items returns a snapshot of the current lines.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Add merges by (ItemID, Type) or appends a new line with a generated id.
// Line ids embed a random UUID rather than a wall-clock timestamp, so rapid
// repeated adds can never collide.
func (c *Cart) Add(ctx context.Context, item models.CartItem) models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	for i := range c.items {
		if c.items[i].ItemID == item.ItemID && c.items[i].Type == item.Type {
			c.items[i].Quantity += item.Quantity
			c.persist(ctx)
			return c.items[i]
		}
	}

	item.ID = fmt.Sprintf("%s-%s-%s", item.Type, item.ItemID, uuid.NewString())
	c.items = append(c.items, item)
	c.persist(ctx)
	return item
}

// Remove drops the line with the given id. Unknown ids are a no-op.
func (c *Cart) Remove(ctx context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := c.items[:0:0]
	for _, item := range c.items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	c.items = filtered
	c.persist(ctx)
}

// UpdateQuantity replaces a line's quantity; a quantity of zero or less is
// equivalent to Remove.
func (c *Cart) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity <= 0 {
		c.Remove(ctx, id)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			break
		}
	}
	c.persist(ctx)
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.persist(ctx)
}

// Total is the sum of price × quantity across all lines. Tax is applied at
// checkout, never here.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// ItemCount sums quantities, not distinct lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Contains reports membership by composite key.
func (c *Cart) Contains(itemID, itemType string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.ItemID == itemID && item.Type == itemType {
			return true
		}
	}
	return false
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) persist(ctx context.Context) {
	c.store.Cart().Set(ctx, c.items)
}
