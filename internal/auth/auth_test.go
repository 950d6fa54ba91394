package auth

import (
	"context"
	"testing"
	"time"

	"buildmart/internal/kv"
	"buildmart/internal/models"
	"buildmart/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *storage.Storage) {
	t.Helper()
	logger := zerolog.Nop()
	store := storage.New(kv.NewMemoryStore(), &logger)
	store.Users().Add(context.Background(), models.User{
		ID: "admin-1", Email: "admin@site.com", Name: "Site Admin", Role: models.RoleAdmin,
	})
	store.Users().Add(context.Background(), models.User{
		ID: "customer-1", Email: "customer@site.com", Name: "Jane Doe", Role: models.RoleCustomer,
	})
	return NewService(store, nil, 0, &logger), store
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Login(ctx, "admin@site.com", "Admin@123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", current.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "admin@site.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Current(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody@site.com", "Admin@123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginCredentialWithoutUserRecord(t *testing.T) {
	logger := zerolog.Nop()
	store := storage.New(kv.NewMemoryStore(), &logger)
	svc := NewService(store, nil, 0, &logger)

	// painter@site.com is in the credential table but not seeded here.
	_, err := svc.Login(context.Background(), "painter@site.com", "Painter@123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "customer@site.com", "Customer@123")
	require.NoError(t, err)

	svc.Logout(ctx)
	_, err = svc.Current(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	// Logging out twice stays a no-op.
	svc.Logout(ctx)
}

func TestLoginHonorsContextDuringDelay(t *testing.T) {
	logger := zerolog.Nop()
	store := storage.New(kv.NewMemoryStore(), &logger)
	svc := NewService(store, nil, time.Second, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Login(ctx, "admin@site.com", "Admin@123")
	assert.ErrorIs(t, err, context.Canceled)
}
