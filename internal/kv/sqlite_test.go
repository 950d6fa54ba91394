package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "buildmart.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	t.Run("GetMissingKey", func(t *testing.T) {
		_, err := s.Get(ctx, "construction_cart")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("SetGetRoundTrip", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "construction_cart", []byte(`[]`)))

		got, err := s.Get(ctx, "construction_cart")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[]`), got)
	})

	t.Run("SetOverwrites", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "construction_cart", []byte(`[{"id":"x"}]`)))

		got, err := s.Get(ctx, "construction_cart")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[{"id":"x"}]`), got)
	})

	t.Run("HasAndRemove", func(t *testing.T) {
		ok, err := s.Has(ctx, "construction_cart")
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, s.Remove(ctx, "construction_cart"))

		ok, err = s.Has(ctx, "construction_cart")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("SurvivesReopen", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "construction_settings", []byte(`{"theme":"dark"}`)))
		require.NoError(t, s.Close())

		reopened, err := NewSQLiteStore(path)
		require.NoError(t, err)
		defer reopened.Close()

		got, err := reopened.Get(ctx, "construction_settings")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"theme":"dark"}`), got)

		s = reopened
	})
}
