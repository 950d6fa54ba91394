package kv

import (
	"context"
	"sync"
)

// MemoryStore keeps values in process memory. Used in tests and as the
// failover fallback when the primary store is down.
type MemoryStore struct {
	values sync.Map
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, ok := s.values.Load(key)
	if !ok {
		return nil, ErrNotFound
	}
	raw := val.([]byte)
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	raw := make([]byte, len(value))
	copy(raw, value)
	s.values.Store(key, raw)
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	s.values.Delete(key)
	return nil
}

func (s *MemoryStore) Has(ctx context.Context, key string) (bool, error) {
	_, ok := s.values.Load(key)
	return ok, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
