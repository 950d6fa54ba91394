package storage

import (
	"context"
	"sort"

	"buildmart/internal/models"
)

// Bookings is the accessor for the persisted service booking list.
type Bookings struct {
	s *Storage
}

func (s *Storage) Bookings() Bookings { return Bookings{s: s} }

func (c Bookings) Get(ctx context.Context) []models.ServiceBooking {
	return getList[models.ServiceBooking](ctx, c.s, KeyBookings)
}

func (c Bookings) Set(ctx context.Context, bookings []models.ServiceBooking) bool {
	return setList(ctx, c.s, KeyBookings, bookings)
}

func (c Bookings) Add(ctx context.Context, booking models.ServiceBooking) bool {
	return appendRecord(ctx, c.s, KeyBookings, booking)
}

func (c Bookings) Update(ctx context.Context, id string, apply func(*models.ServiceBooking)) bool {
	return updateByID(ctx, c.s, KeyBookings, id, bookingID, apply)
}

func (c Bookings) GetByID(ctx context.Context, id string) (models.ServiceBooking, bool) {
	return findByID(ctx, c.s, KeyBookings, id, bookingID)
}

func (c Bookings) GetByProvider(ctx context.Context, providerID string) []models.ServiceBooking {
	return filterList(ctx, c.s, KeyBookings, func(b models.ServiceBooking) bool {
		return b.ProviderID == providerID
	})
}

func (c Bookings) GetByCustomer(ctx context.Context, customerID string) []models.ServiceBooking {
	return filterList(ctx, c.s, KeyBookings, func(b models.ServiceBooking) bool {
		return b.CustomerID == customerID
	})
}

func (c Bookings) GetByStatus(ctx context.Context, status string) []models.ServiceBooking {
	return filterList(ctx, c.s, KeyBookings, func(b models.ServiceBooking) bool {
		return b.Status == status
	})
}

func (c Bookings) GetRecent(ctx context.Context, limit int) []models.ServiceBooking {
	bookings := c.Get(ctx)
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	if limit > 0 && len(bookings) > limit {
		bookings = bookings[:limit]
	}
	return bookings
}

func bookingID(b models.ServiceBooking) string { return b.ID }
