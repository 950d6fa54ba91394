package storage

import (
	"context"

	"buildmart/internal/kv"
	"buildmart/internal/metrics"

	"github.com/rs/zerolog"
)

// Persisted state layout: one JSON document per fixed key.
const (
	KeyCart          = "construction_cart"
	KeyUser          = "construction_user"
	KeyOrders        = "construction_orders"
	KeyBookings      = "construction_bookings"
	KeyWishlist      = "construction_wishlist"
	KeySettings      = "construction_settings"
	KeyProducts      = "construction_products"
	KeyServices      = "construction_services"
	KeyUsers         = "construction_users"
	KeyNotifications = "construction_notifications"
	KeyAnalytics     = "construction_analytics"
	KeyContracts     = "construction_contracts"
	KeySyncQueue     = "construction_sync_queue"
)

// Keys lists every key the application owns, in layout order.
func Keys() []string {
	return []string{
		KeyCart, KeyUser, KeyOrders, KeyBookings, KeyWishlist, KeySettings,
		KeyProducts, KeyServices, KeyUsers, KeyNotifications, KeyAnalytics,
		KeyContracts, KeySyncQueue,
	}
}

// Storage hands out typed collection accessors over one kv.Store. Every
// mutation is a full-document read-modify-write; there is no locking and
// no per-record transactionality.
type Storage struct {
	store kv.Store
	log   *zerolog.Logger
}

func New(store kv.Store, logger *zerolog.Logger) *Storage {
	return &Storage{store: store, log: logger}
}

// ClearAll removes every application key. Used by tests and the admin
// settings reset.
func (s *Storage) ClearAll(ctx context.Context) {
	for _, key := range Keys() {
		if err := s.store.Remove(ctx, key); err != nil && s.log != nil {
			s.log.Error().Err(err).Str("key", key).Msg("clear key failed")
		}
	}
}

func getList[T any](ctx context.Context, s *Storage, key string) []T {
	return kv.GetJSON(ctx, s.store, s.log, key, []T(nil))
}

func setList[T any](ctx context.Context, s *Storage, key string, items []T) bool {
	metrics.IncStorageWrite(key)
	return kv.SetJSON(ctx, s.store, s.log, key, items)
}

// updateByID scans for the first record matching id, applies the mutation
// and rewrites the whole list. A missing id is a silent no-op returning
// false, mirroring the forgiving contract of the storage layer.
func updateByID[T any](ctx context.Context, s *Storage, key string, id string, idOf func(T) string, apply func(*T)) bool {
	items := getList[T](ctx, s, key)
	for i := range items {
		if idOf(items[i]) == id {
			apply(&items[i])
			return setList(ctx, s, key, items)
		}
	}
	return false
}

func appendRecord[T any](ctx context.Context, s *Storage, key string, record T) bool {
	items := getList[T](ctx, s, key)
	items = append(items, record)
	return setList(ctx, s, key, items)
}

func findByID[T any](ctx context.Context, s *Storage, key string, id string, idOf func(T) string) (T, bool) {
	for _, item := range getList[T](ctx, s, key) {
		if idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func filterList[T any](ctx context.Context, s *Storage, key string, keep func(T) bool) []T {
	var out []T
	for _, item := range getList[T](ctx, s, key) {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
