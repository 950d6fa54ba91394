package storage

import (
	"context"

	"buildmart/internal/models"
)

// CartStore persists the raw cart line list. The merge/total logic lives in
// the cart aggregate; this is only its write-through target.
type CartStore struct {
	s *Storage
}

func (s *Storage) Cart() CartStore { return CartStore{s: s} }

func (c CartStore) Get(ctx context.Context) []models.CartItem {
	return getList[models.CartItem](ctx, c.s, KeyCart)
}

func (c CartStore) Set(ctx context.Context, items []models.CartItem) bool {
	return setList(ctx, c.s, KeyCart, items)
}

func (c CartStore) Clear(ctx context.Context) bool {
	if err := c.s.store.Remove(ctx, KeyCart); err != nil {
		if c.s.log != nil {
			c.s.log.Error().Err(err).Msg("clear cart failed")
		}
		return false
	}
	return true
}
