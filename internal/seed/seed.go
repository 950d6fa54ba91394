package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"buildmart/internal/models"
	"buildmart/internal/storage"

	"github.com/rs/zerolog"
	yaml "gopkg.in/yaml.v2"
)

// Fixtures is the catalog portion of the seed file. Orders, bookings and
// notifications are generated in code so their timestamps stay coherent.
type Fixtures struct {
	Users    []models.User    `yaml:"users"`
	Products []models.Product `yaml:"products"`
	Services []models.Service `yaml:"services"`
}

// LoadFixtures reads and parses a seed file.
func LoadFixtures(path string) (Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("seed: read %s: %w", path, err)
	}

	var f Fixtures
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Fixtures{}, fmt.Errorf("seed: parse %s: %w", path, err)
	}
	return f, nil
}

// Seeder populates empty collections with demo data.
type Seeder struct {
	store *storage.Storage
	log   *zerolog.Logger
}

func New(store *storage.Storage, log *zerolog.Logger) *Seeder {
	return &Seeder{store: store, log: log}
}

// Initialize seeds each collection that is still empty. Collections that
// already hold data are left alone, so re-running on a warm store is safe.
func (s *Seeder) Initialize(ctx context.Context, fixtures Fixtures) error {
	if len(s.store.Users().GetAll(ctx)) == 0 {
		for _, user := range fixtures.Users {
			if !user.Role.Valid() {
				return fmt.Errorf("seed: user %s has invalid role %q", user.ID, user.Role)
			}
		}
		s.store.Users().SetAll(ctx, fixtures.Users)
	}
	if len(s.store.Products().Get(ctx)) == 0 {
		s.store.Products().Set(ctx, fixtures.Products)
	}
	if len(s.store.Services().Get(ctx)) == 0 {
		s.store.Services().Set(ctx, fixtures.Services)
	}
	if len(s.store.Orders().Get(ctx)) == 0 {
		s.store.Orders().Set(ctx, sampleOrders())
	}
	if len(s.store.Bookings().Get(ctx)) == 0 {
		s.store.Bookings().Set(ctx, sampleBookings())
	}
	if len(s.store.Notifications().Get(ctx)) == 0 {
		for _, n := range sampleNotifications() {
			s.store.Notifications().Add(ctx, n)
		}
	}

	s.store.Analytics().TrackEvent(ctx, "app_initialized", map[string]any{
		"users":    len(s.store.Users().GetAll(ctx)),
		"products": len(s.store.Products().Get(ctx)),
		"services": len(s.store.Services().Get(ctx)),
		"orders":   len(s.store.Orders().Get(ctx)),
		"bookings": len(s.store.Bookings().Get(ctx)),
	})

	s.log.Info().
		Int("users", len(s.store.Users().GetAll(ctx))).
		Int("products", len(s.store.Products().Get(ctx))).
		Int("orders", len(s.store.Orders().Get(ctx))).
		Msg("seed complete")
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func sampleOrders() []models.Order {
	firstDelivery := date(2024, time.January, 22)
	secondDelivery := date(2024, time.January, 27)
	mumbai := models.Address{Address: "123 Main St", City: "Mumbai", State: "Maharashtra", ZipCode: "400001"}

	return []models.Order{
		{
			ID:         "order-1",
			CustomerID: "customer-1",
			Items: []models.CartItem{{
				ID: "item-1", Type: models.ItemTypeProduct, ItemID: "prod-1",
				Name: "Premium Interior Paint", Price: 1899, Quantity: 2, Category: "Paints",
			}},
			Total:             3798,
			Status:            models.OrderStatusDelivered,
			PaymentStatus:     models.PaymentStatusPaid,
			DeliveryAddress:   mumbai,
			CreatedAt:         date(2024, time.January, 15),
			EstimatedDelivery: &firstDelivery,
			TrackingNumber:    "TRK123456789",
		},
		{
			ID:         "order-2",
			CustomerID: "customer-1",
			Items: []models.CartItem{{
				ID: "item-2", Type: models.ItemTypeProduct, ItemID: "prod-2",
				Name: "Portland Cement", Price: 399, Quantity: 5, Category: "Cement",
			}},
			Total:             1995,
			Status:            models.OrderStatusProcessing,
			PaymentStatus:     models.PaymentStatusPaid,
			DeliveryAddress:   mumbai,
			CreatedAt:         date(2024, time.January, 20),
			EstimatedDelivery: &secondDelivery,
			TrackingNumber:    "TRK987654321",
		},
	}
}

func sampleBookings() []models.ServiceBooking {
	mumbai := models.Address{Address: "123 Main St", City: "Mumbai", State: "Maharashtra", ZipCode: "400001"}

	return []models.ServiceBooking{
		{
			ID:                 "booking-1",
			CustomerID:         "customer-1",
			ProviderID:         "painter-1",
			Service:            "Interior Painting",
			Category:           "Painter",
			WorkersRequired:    2,
			PreferredLanguages: []string{"English", "Hindi"},
			Location:           mumbai,
			ScheduledDate:      date(2024, time.February, 15),
			Status:             models.BookingStatusAccepted,
			TotalPrice:         2999,
			CreatedAt:          date(2024, time.January, 25),
			ProviderNotes:      "Will start at 9 AM",
			CustomerNotes:      "Please use eco-friendly paint",
		},
		{
			ID:                 "booking-2",
			CustomerID:         "customer-1",
			ProviderID:         "contractor-1",
			Service:            "Kitchen Renovation",
			Category:           "Contractor",
			WorkersRequired:    4,
			PreferredLanguages: []string{"English"},
			Location:           mumbai,
			ScheduledDate:      date(2024, time.March, 1),
			Status:             models.BookingStatusPending,
			TotalPrice:         15000,
			CreatedAt:          date(2024, time.January, 28),
		},
	}
}

func sampleNotifications() []models.Notification {
	return []models.Notification{
		{
			ID: "notif-1", UserID: "customer-1",
			Title:   "Order Delivered",
			Message: "Your order #order-1 has been delivered successfully!",
			Type:    models.NotificationSuccess,
			CreatedAt: date(2024, time.January, 22), ActionURL: "/dashboard",
		},
		{
			ID: "notif-2", UserID: "customer-1",
			Title:   "Service Booking Confirmed",
			Message: "Your painting service has been confirmed for Feb 15th",
			Type:    models.NotificationInfo,
			CreatedAt: date(2024, time.January, 26), ActionURL: "/dashboard",
		},
		{
			ID: "notif-3", UserID: "painter-1",
			Title:   "New Service Request",
			Message: "You have a new interior painting request",
			Type:    models.NotificationInfo,
			CreatedAt: date(2024, time.January, 25), ActionURL: "/provider-dashboard",
		},
	}
}
