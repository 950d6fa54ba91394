package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"buildmart/internal/kv"
	"buildmart/internal/models"
	"buildmart/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureYAML = `
users:
  - id: admin-1
    email: admin@site.com
    name: Admin User
    role: admin
  - id: painter-1
    email: painter@site.com
    name: Mike Johnson
    role: service_provider
    pricing: {hourly: 1800, daily: 14000, project: 0}
products:
  - id: prod-1
    name: Premium Interior Paint
    category: {id: cat-paints, name: Paints}
    price: 1899
    stock: 150
services:
  - id: service-painter-1
    name: Painter Service
    provider_id: painter-1
    is_available: true
`

func writeFixtureFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o644))
	return path
}

func TestLoadFixtures(t *testing.T) {
	fixtures, err := LoadFixtures(writeFixtureFile(t))
	require.NoError(t, err)

	require.Len(t, fixtures.Users, 2)
	assert.Equal(t, models.RoleAdmin, fixtures.Users[0].Role)
	require.NotNil(t, fixtures.Users[1].Pricing)
	assert.Equal(t, 1800.0, fixtures.Users[1].Pricing.Hourly)

	require.Len(t, fixtures.Products, 1)
	assert.Equal(t, "Paints", fixtures.Products[0].Category.Name)
	assert.Equal(t, 150, fixtures.Products[0].Stock)

	require.Len(t, fixtures.Services, 1)
	assert.Equal(t, "painter-1", fixtures.Services[0].ProviderID)
}

func TestLoadFixturesMissingFile(t *testing.T) {
	_, err := LoadFixtures(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestInitializeSeedsEmptyStore(t *testing.T) {
	logger := zerolog.Nop()
	store := storage.New(kv.NewMemoryStore(), &logger)
	ctx := context.Background()

	fixtures, err := LoadFixtures(writeFixtureFile(t))
	require.NoError(t, err)

	require.NoError(t, New(store, &logger).Initialize(ctx, fixtures))

	assert.Len(t, store.Users().GetAll(ctx), 2)
	assert.Len(t, store.Products().Get(ctx), 1)
	assert.Len(t, store.Services().Get(ctx), 1)
	assert.Len(t, store.Orders().Get(ctx), 2)
	assert.Len(t, store.Bookings().Get(ctx), 2)
	assert.Len(t, store.Notifications().Get(ctx), 3)

	// The init event is tracked.
	events := store.Analytics().Get(ctx).Events
	require.NotEmpty(t, events)
	assert.Equal(t, "app_initialized", events[len(events)-1].Event)
}

func TestInitializeIsIdempotent(t *testing.T) {
	logger := zerolog.Nop()
	store := storage.New(kv.NewMemoryStore(), &logger)
	ctx := context.Background()

	fixtures, err := LoadFixtures(writeFixtureFile(t))
	require.NoError(t, err)

	seeder := New(store, &logger)
	require.NoError(t, seeder.Initialize(ctx, fixtures))

	// Mutate a collection and re-run: nothing is re-seeded or duplicated.
	store.Orders().Add(ctx, models.Order{ID: "order-99", Status: models.OrderStatusPending})
	require.NoError(t, seeder.Initialize(ctx, fixtures))

	assert.Len(t, store.Orders().Get(ctx), 3)
	assert.Len(t, store.Users().GetAll(ctx), 2)
}

func TestInitializeRejectsInvalidRole(t *testing.T) {
	logger := zerolog.Nop()
	store := storage.New(kv.NewMemoryStore(), &logger)

	err := New(store, &logger).Initialize(context.Background(), Fixtures{
		Users: []models.User{{ID: "u-1", Role: "superuser"}},
	})
	assert.Error(t, err)
}
