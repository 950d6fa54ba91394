package dashboard

import (
	"context"

	"buildmart/internal/models"
	"buildmart/internal/storage"
)

// AdminStats is the marketplace-wide aggregate shown on the admin dashboard.
type AdminStats struct {
	TotalUsers     int     `json:"totalUsers"`
	TotalOrders    int     `json:"totalOrders"`
	TotalBookings  int     `json:"totalBookings"`
	TotalProducts  int     `json:"totalProducts"`
	TotalServices  int     `json:"totalServices"`
	Revenue        float64 `json:"revenue"`
	PendingOrders  int     `json:"pendingOrders"`
	ActiveBookings int     `json:"activeBookings"`
}

// AdminData bundles the stats with the recent-activity lists.
type AdminData struct {
	Stats            AdminStats           `json:"stats"`
	RecentOrders     []models.Order       `json:"recentOrders"`
	RecentBookings   []models.ServiceBooking `json:"recentBookings"`
	LowStockProducts []models.Product     `json:"lowStockProducts"`
	RevenueStats     storage.RevenueStats `json:"revenueStats"`
}

// CustomerStats summarizes a single customer's activity.
type CustomerStats struct {
	TotalOrders         int     `json:"totalOrders"`
	TotalSpent          float64 `json:"totalSpent"`
	ActiveBookings      int     `json:"activeBookings"`
	UnreadNotifications int     `json:"unreadNotifications"`
}

// CustomerData is the customer dashboard payload.
type CustomerData struct {
	User          models.User             `json:"user"`
	Orders        []models.Order          `json:"orders"`
	Bookings      []models.ServiceBooking `json:"bookings"`
	Notifications []models.Notification   `json:"notifications"`
	Stats         CustomerStats           `json:"stats"`
}

// ProviderStats summarizes a service provider's bookings.
type ProviderStats struct {
	TotalBookings     int     `json:"totalBookings"`
	CompletedBookings int     `json:"completedBookings"`
	PendingBookings   int     `json:"pendingBookings"`
	TotalEarnings     float64 `json:"totalEarnings"`
	AverageRating     float64 `json:"averageRating"`
}

// ProviderData is the provider dashboard payload.
type ProviderData struct {
	Bookings []models.ServiceBooking `json:"bookings"`
	Services []models.Service        `json:"services"`
	Stats    ProviderStats           `json:"stats"`
}

// Service computes dashboard aggregates by scanning the collections. Nothing
// is cached: the collections are small and the scans stay cheap.
type Service struct {
	store *storage.Storage
}

func NewService(store *storage.Storage) *Service {
	return &Service{store: store}
}

// Admin builds the marketplace-wide dashboard.
func (s *Service) Admin(ctx context.Context) AdminData {
	orders := s.store.Orders()
	bookings := s.store.Bookings()

	allOrders := orders.Get(ctx)
	allBookings := bookings.Get(ctx)

	stats := AdminStats{
		TotalUsers:    len(s.store.Users().GetAll(ctx)),
		TotalOrders:   len(allOrders),
		TotalBookings: len(allBookings),
		TotalProducts: len(s.store.Products().Get(ctx)),
		TotalServices: len(s.store.Services().Get(ctx)),
		Revenue:       orders.TotalRevenue(ctx),
	}
	for _, o := range allOrders {
		if o.Status == models.OrderStatusPending {
			stats.PendingOrders++
		}
	}
	for _, b := range allBookings {
		if b.Active() {
			stats.ActiveBookings++
		}
	}

	return AdminData{
		Stats:            stats,
		RecentOrders:     orders.GetRecent(ctx, 5),
		RecentBookings:   bookings.GetRecent(ctx, 5),
		LowStockProducts: s.store.Products().GetLowStock(ctx, models.DefaultLowStockThreshold),
		RevenueStats:     s.store.Analytics().GetRevenueStats(ctx),
	}
}

// Customer builds the per-customer dashboard. The second return is false when
// the user does not exist.
func (s *Service) Customer(ctx context.Context, userID string) (CustomerData, bool) {
	user, ok := s.store.Users().GetByID(ctx, userID)
	if !ok {
		return CustomerData{}, false
	}

	orders := s.store.Orders().GetByCustomer(ctx, userID)
	bookings := s.store.Bookings().GetByCustomer(ctx, userID)
	notifications := s.store.Notifications().GetByUser(ctx, userID)

	stats := CustomerStats{TotalOrders: len(orders)}
	for _, o := range orders {
		if o.CountsAsRevenue() {
			stats.TotalSpent += o.Total
		}
	}
	for _, b := range bookings {
		if b.Active() {
			stats.ActiveBookings++
		}
	}
	for _, n := range notifications {
		if !n.IsRead {
			stats.UnreadNotifications++
		}
	}

	return CustomerData{
		User:          user,
		Orders:        orders,
		Bookings:      bookings,
		Notifications: notifications,
		Stats:         stats,
	}, true
}

// Provider builds the service-provider dashboard. The average rating divides
// by all bookings, rated or not.
func (s *Service) Provider(ctx context.Context, providerID string) ProviderData {
	bookings := s.store.Bookings().GetByProvider(ctx, providerID)

	stats := ProviderStats{TotalBookings: len(bookings)}
	var ratingSum float64
	for _, b := range bookings {
		switch b.Status {
		case models.BookingStatusCompleted:
			stats.CompletedBookings++
			stats.TotalEarnings += b.TotalPrice
		case models.BookingStatusPending:
			stats.PendingBookings++
		}
		ratingSum += b.Rating
	}
	if len(bookings) > 0 {
		stats.AverageRating = ratingSum / float64(len(bookings))
	}

	return ProviderData{
		Bookings: bookings,
		Services: s.store.Services().GetByProvider(ctx, providerID),
		Stats:    stats,
	}
}
