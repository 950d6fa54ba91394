package storage

import (
	"context"

	"buildmart/internal/kv"
	"buildmart/internal/models"
)

// Users is the accessor for all known accounts plus the single persisted
// session record.
type Users struct {
	s *Storage
}

func (s *Storage) Users() Users { return Users{s: s} }

func (c Users) GetAll(ctx context.Context) []models.User {
	return getList[models.User](ctx, c.s, KeyUsers)
}

func (c Users) SetAll(ctx context.Context, users []models.User) bool {
	return setList(ctx, c.s, KeyUsers, users)
}

func (c Users) Add(ctx context.Context, user models.User) bool {
	return appendRecord(ctx, c.s, KeyUsers, user)
}

func (c Users) Update(ctx context.Context, id string, apply func(*models.User)) bool {
	return updateByID(ctx, c.s, KeyUsers, id, userID, apply)
}

func (c Users) GetByID(ctx context.Context, id string) (models.User, bool) {
	return findByID(ctx, c.s, KeyUsers, id, userID)
}

func (c Users) GetByEmail(ctx context.Context, email string) (models.User, bool) {
	for _, user := range c.GetAll(ctx) {
		if user.Email == email {
			return user, true
		}
	}
	return models.User{}, false
}

func (c Users) GetByRole(ctx context.Context, role models.Role) []models.User {
	return filterList(ctx, c.s, KeyUsers, func(u models.User) bool {
		return u.Role == role
	})
}

// Current reads the logged-in session user, if any.
func (c Users) Current(ctx context.Context) (models.User, bool) {
	user := kv.GetJSON(ctx, c.s.store, c.s.log, KeyUser, models.User{})
	return user, user.ID != ""
}

// SetCurrent persists the session user.
func (c Users) SetCurrent(ctx context.Context, user models.User) bool {
	return kv.SetJSON(ctx, c.s.store, c.s.log, KeyUser, user)
}

// ClearCurrent ends the session.
func (c Users) ClearCurrent(ctx context.Context) bool {
	if err := c.s.store.Remove(ctx, KeyUser); err != nil {
		if c.s.log != nil {
			c.s.log.Error().Err(err).Msg("clear session failed")
		}
		return false
	}
	return true
}

func userID(u models.User) string { return u.ID }
