package storage

import "context"

// Wishlist is the accessor for the saved product id list. It is global, not
// per-user; the layout carries one list under one key.
type Wishlist struct {
	s *Storage
}

func (s *Storage) Wishlist() Wishlist { return Wishlist{s: s} }

func (c Wishlist) Get(ctx context.Context) []string {
	return getList[string](ctx, c.s, KeyWishlist)
}

// Add appends the product id unless it is already saved.
func (c Wishlist) Add(ctx context.Context, itemID string) bool {
	ids := c.Get(ctx)
	for _, id := range ids {
		if id == itemID {
			return true
		}
	}
	return setList(ctx, c.s, KeyWishlist, append(ids, itemID))
}

func (c Wishlist) Remove(ctx context.Context, itemID string) bool {
	ids := c.Get(ctx)
	filtered := ids[:0:0]
	for _, id := range ids {
		if id != itemID {
			filtered = append(filtered, id)
		}
	}
	return setList(ctx, c.s, KeyWishlist, filtered)
}

func (c Wishlist) Has(ctx context.Context, itemID string) bool {
	for _, id := range c.Get(ctx) {
		if id == itemID {
			return true
		}
	}
	return false
}
