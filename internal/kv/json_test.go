package kv

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestJSONHelpers(t *testing.T) {
	s := NewMemoryStore()
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		in := payload{Name: "cement", Count: 5}
		ok := SetJSON(ctx, s, &logger, "p", in)
		require.True(t, ok)

		out := GetJSON(ctx, s, &logger, "p", payload{})
		assert.Equal(t, in, out)
	})

	t.Run("MissingKeyReturnsDefault", func(t *testing.T) {
		def := payload{Name: "default"}
		out := GetJSON(ctx, s, &logger, "missing", def)
		assert.Equal(t, def, out)
	})

	t.Run("CorruptValueReturnsDefault", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "corrupt", []byte("{not json")))

		out := GetJSON(ctx, s, &logger, "corrupt", payload{Name: "default"})
		assert.Equal(t, "default", out.Name)
	})

	t.Run("BrokenStoreReportsFalse", func(t *testing.T) {
		ok := SetJSON(ctx, brokenStore{}, &logger, "p", payload{})
		assert.False(t, ok)

		out := GetJSON(ctx, brokenStore{}, &logger, "p", payload{Name: "default"})
		assert.Equal(t, "default", out.Name)
	})

	t.Run("UnencodableValueReportsFalse", func(t *testing.T) {
		ok := SetJSON(ctx, s, &logger, "bad", make(chan int))
		assert.False(t, ok)
	})

	t.Run("SliceRoundTrip", func(t *testing.T) {
		in := []payload{{Name: "a"}, {Name: "b"}}
		require.True(t, SetJSON(ctx, s, &logger, "list", in))

		out := GetJSON(ctx, s, &logger, "list", []payload(nil))
		assert.Equal(t, in, out)
	})
}
