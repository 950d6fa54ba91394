package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"buildmart/internal/models"
	"buildmart/internal/storage"

	"github.com/rs/zerolog"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	ErrNoSession          = errors.New("auth: no active session")
)

// DefaultCredentials returns the built-in demo account table.
func DefaultCredentials() map[string]string {
	return map[string]string{
		"admin@site.com":       "Admin@123",
		"customer@site.com":    "Customer@123",
		"painter@site.com":     "Painter@123",
		"contractor@site.com":  "Contractor@123",
		"electrician@site.com": "Electrician@123",
		"carpenter@site.com":   "Carpenter@123",
	}
}

// Service verifies credentials against a static table and keeps the current
// session in the persisted user record.
type Service struct {
	store       *storage.Storage
	credentials map[string]string
	delay       time.Duration
	log         *zerolog.Logger
}

// NewService constructs the auth service. A nil credentials map falls back to
// the demo table; delay simulates upstream verification latency.
func NewService(store *storage.Storage, credentials map[string]string, delay time.Duration, log *zerolog.Logger) *Service {
	if credentials == nil {
		credentials = DefaultCredentials()
	}
	return &Service{store: store, credentials: credentials, delay: delay, log: log}
}

// Login checks the credential table, looks the account up in the user
// collection and persists it as the current session.
func (s *Service) Login(ctx context.Context, email, password string) (models.User, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return models.User{}, ctx.Err()
		}
	}

	expected, ok := s.credentials[email]
	if !ok || subtle.ConstantTimeCompare([]byte(expected), []byte(password)) != 1 {
		s.log.Warn().Str("email", email).Msg("login rejected")
		return models.User{}, ErrInvalidCredentials
	}

	user, found := s.store.Users().GetByEmail(ctx, email)
	if !found {
		s.log.Error().Str("email", email).Msg("credential has no user record")
		return models.User{}, ErrInvalidCredentials
	}

	s.store.Users().SetCurrent(ctx, user)
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login")
	return user, nil
}

// Logout clears the current session. Logging out with no session is a no-op.
func (s *Service) Logout(ctx context.Context) {
	s.store.Users().ClearCurrent(ctx)
}

// Current returns the active session user.
func (s *Service) Current(ctx context.Context) (models.User, error) {
	user, ok := s.store.Users().Current(ctx)
	if !ok {
		return models.User{}, ErrNoSession
	}
	return user, nil
}
