package kv

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"
)

// GetJSON reads and decodes the value at key. A missing key, storage error
// or decode failure degrades to the caller-supplied default; failures are
// logged, never propagated.
func GetJSON[T any](ctx context.Context, s Store, log *zerolog.Logger, key string, defaultValue T) T {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) && log != nil {
			log.Error().Err(err).Str("key", key).Msg("kv read failed, returning default")
		}
		return defaultValue
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		if log != nil {
			log.Error().Err(err).Str("key", key).Msg("kv decode failed, returning default")
		}
		return defaultValue
	}
	return out
}

// SetJSON encodes and writes the value at key. Failures are logged and
// reported as false; the caller owns any user-facing handling.
func SetJSON(ctx context.Context, s Store, log *zerolog.Logger, key string, value any) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		if log != nil {
			log.Error().Err(err).Str("key", key).Msg("kv encode failed")
		}
		return false
	}
	if err := s.Set(ctx, key, raw); err != nil {
		if log != nil {
			log.Error().Err(err).Str("key", key).Msg("kv write failed")
		}
		return false
	}
	return true
}
