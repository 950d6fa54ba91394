package kv

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// FailoverStore writes through the primary store and degrades to the
// fallback when the primary errors. After a minute it probes the primary
// again. Reads and writes against the fallback are lost once the process
// exits; the degradation is logged so operators notice.
type FailoverStore struct {
	primary   Store
	fallback  Store
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64 // unix nanos of the last failed probe
}

const recoveryInterval = time.Minute

func NewFailoverStore(primary, fallback Store, logger *zerolog.Logger) *FailoverStore {
	return &FailoverStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (s *FailoverStore) markDown(err error) {
	if s.logger != nil {
		s.logger.Error().Err(err).Msg("primary kv store failed, falling back to memory")
	}
	s.isDown.Store(true)
	s.lastCheck.Store(time.Now().UnixNano())
}

func (s *FailoverStore) shouldProbe() bool {
	return time.Since(time.Unix(0, s.lastCheck.Load())) > recoveryInterval
}

func (s *FailoverStore) Get(ctx context.Context, key string) ([]byte, error) {
	if !s.isDown.Load() || s.shouldProbe() {
		val, err := s.primary.Get(ctx, key)
		if err == nil || errors.Is(err, ErrNotFound) {
			s.isDown.Store(false)
			return val, err
		}
		s.markDown(err)
	}
	return s.fallback.Get(ctx, key)
}

func (s *FailoverStore) Set(ctx context.Context, key string, value []byte) error {
	if !s.isDown.Load() || s.shouldProbe() {
		err := s.primary.Set(ctx, key, value)
		if err == nil {
			s.isDown.Store(false)
			return nil
		}
		s.markDown(err)
	}
	return s.fallback.Set(ctx, key, value)
}

func (s *FailoverStore) Remove(ctx context.Context, key string) error {
	if !s.isDown.Load() || s.shouldProbe() {
		err := s.primary.Remove(ctx, key)
		if err == nil {
			s.isDown.Store(false)
			return nil
		}
		s.markDown(err)
	}
	return s.fallback.Remove(ctx, key)
}

func (s *FailoverStore) Has(ctx context.Context, key string) (bool, error) {
	if !s.isDown.Load() || s.shouldProbe() {
		ok, err := s.primary.Has(ctx, key)
		if err == nil {
			s.isDown.Store(false)
			return ok, nil
		}
		s.markDown(err)
	}
	return s.fallback.Has(ctx, key)
}

func (s *FailoverStore) Close() error {
	if err := s.primary.Close(); err != nil {
		return err
	}
	return s.fallback.Close()
}
