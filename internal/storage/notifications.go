package storage

import (
	"context"

	"buildmart/internal/models"
)

// Notifications is the accessor for the persisted notification feed.
type Notifications struct {
	s *Storage
}

func (s *Storage) Notifications() Notifications { return Notifications{s: s} }

func (c Notifications) Get(ctx context.Context) []models.Notification {
	return getList[models.Notification](ctx, c.s, KeyNotifications)
}

func (c Notifications) Add(ctx context.Context, n models.Notification) bool {
	return appendRecord(ctx, c.s, KeyNotifications, n)
}

func (c Notifications) GetByUser(ctx context.Context, userID string) []models.Notification {
	return filterList(ctx, c.s, KeyNotifications, func(n models.Notification) bool {
		return n.UserID == userID
	})
}

// MarkAsRead flips the read flag on one notification. Missing id → false.
func (c Notifications) MarkAsRead(ctx context.Context, id string) bool {
	return updateByID(ctx, c.s, KeyNotifications, id, notificationID,
		func(n *models.Notification) { n.IsRead = true })
}

func (c Notifications) UnreadCount(ctx context.Context, userID string) int {
	count := 0
	for _, n := range c.GetByUser(ctx, userID) {
		if !n.IsRead {
			count++
		}
	}
	return count
}

func (c Notifications) Clear(ctx context.Context) bool {
	if err := c.s.store.Remove(ctx, KeyNotifications); err != nil {
		if c.s.log != nil {
			c.s.log.Error().Err(err).Msg("clear notifications failed")
		}
		return false
	}
	return true
}

func notificationID(n models.Notification) string { return n.ID }
