package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"buildmart/internal/cart"
	"buildmart/internal/events"
	"buildmart/internal/metrics"
	"buildmart/internal/models"
	"buildmart/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrEmptyCart         = errors.New("checkout: cart is empty")
	ErrIncompleteAddress = errors.New("checkout: delivery address is incomplete")
	ErrOrderNotFound     = errors.New("checkout: order not found")
	ErrBookingNotFound   = errors.New("checkout: booking not found")
	ErrInvalidTransition = errors.New("checkout: status transition not allowed")
)

// Forward moves per status. Cancellation is handled separately: it is legal
// from any non-terminal status.
var orderTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusConfirmed},
	models.OrderStatusConfirmed:  {models.OrderStatusProcessing},
	models.OrderStatusProcessing: {models.OrderStatusShipped},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
}

var bookingTransitions = map[string][]string{
	models.BookingStatusPending:    {models.BookingStatusAccepted, models.BookingStatusRejected},
	models.BookingStatusAccepted:   {models.BookingStatusInProgress},
	models.BookingStatusInProgress: {models.BookingStatusCompleted},
}

// Service runs the checkout and booking flows: it charges payments, freezes
// order snapshots and enforces the status state machines.
type Service struct {
	store    *storage.Storage
	payments PaymentProcessor
	bus      events.Publisher
	taxRate  float64
	log      *zerolog.Logger
}

// NewService wires the checkout service. A non-positive taxRate falls back to
// the default rate.
func NewService(store *storage.Storage, payments PaymentProcessor, bus events.Publisher, taxRate float64, log *zerolog.Logger) *Service {
	if taxRate <= 0 {
		taxRate = models.DefaultTaxRate
	}
	return &Service{store: store, payments: payments, bus: bus, taxRate: taxRate, log: log}
}

// TaxRate returns the configured checkout tax rate.
func (s *Service) TaxRate() float64 { return s.taxRate }

// Totals breaks an amount down the way the order summary shows it.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Quote computes the totals for the given lines without placing an order.
func (s *Service) Quote(items []models.CartItem) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Subtotal()
	}
	tax := subtotal * s.taxRate
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}

// PlaceOrder charges the cart total and creates a confirmed order from the
// cart snapshot. The cart is cleared only after the payment succeeds; on a
// declined payment the cart is left untouched.
func (s *Service) PlaceOrder(ctx context.Context, c *cart.Cart, customerID string, address models.Address, method string) (models.Order, error) {
	items := c.Items()
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}
	if !address.Complete() {
		return models.Order{}, ErrIncompleteAddress
	}

	totals := s.Quote(items)

	paymentID, err := s.payments.Process(ctx, totals.Total, method)
	if err != nil {
		metrics.IncPaymentFailed()
		s.log.Warn().Err(err).Str("customer_id", customerID).Float64("total", totals.Total).Msg("payment failed")
		return models.Order{}, fmt.Errorf("checkout: payment: %w", err)
	}

	now := time.Now()
	delivery := now.AddDate(0, 0, models.EstimatedDeliveryDays)
	order := models.Order{
		ID:                "order-" + uuid.NewString(),
		CustomerID:        customerID,
		Items:             items,
		Total:             totals.Total,
		Status:            models.OrderStatusConfirmed,
		PaymentStatus:     models.PaymentStatusPaid,
		DeliveryAddress:   address,
		CreatedAt:         now,
		EstimatedDelivery: &delivery,
		TrackingNumber:    newTrackingNumber(),
	}

	s.store.Orders().Add(ctx, order)
	c.Clear(ctx)
	metrics.IncOrderCreated()

	s.publishOrderEvent(events.EventOrderCreated, order)
	s.log.Info().
		Str("order_id", order.ID).
		Str("payment_id", paymentID).
		Float64("total", order.Total).
		Int("items", len(order.Items)).
		Msg("order placed")

	return order, nil
}

// UpdateOrderStatus advances an order through its state machine. Cancellation
// is accepted from any non-terminal status; every other move must follow the
// transition table.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID, status string) (models.Order, error) {
	current, ok := s.store.Orders().GetByID(ctx, orderID)
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}

	if !orderTransitionAllowed(current.Status, status) {
		return models.Order{}, fmt.Errorf("%w: order %s -> %s", ErrInvalidTransition, current.Status, status)
	}

	s.store.Orders().Update(ctx, orderID, func(o *models.Order) {
		o.Status = status
	})

	current.Status = status
	s.publishOrderEvent(events.EventOrderStatusChanged, current)
	s.log.Info().Str("order_id", orderID).Str("status", status).Msg("order status changed")
	return current, nil
}

// BookService creates a pending booking for a provider.
func (s *Service) BookService(ctx context.Context, booking models.ServiceBooking) (models.ServiceBooking, error) {
	if booking.CustomerID == "" || booking.ProviderID == "" || booking.Service == "" {
		return models.ServiceBooking{}, errors.New("checkout: booking needs customer, provider and service")
	}

	booking.ID = "booking-" + uuid.NewString()
	booking.Status = models.BookingStatusPending
	booking.CreatedAt = time.Now()
	if booking.WorkersRequired <= 0 {
		booking.WorkersRequired = 1
	}

	s.store.Bookings().Add(ctx, booking)
	metrics.IncBookingCreated()

	s.publishBookingEvent(events.EventBookingCreated, booking)
	s.log.Info().
		Str("booking_id", booking.ID).
		Str("provider_id", booking.ProviderID).
		Bool("urgent", booking.IsUrgent).
		Msg("booking created")

	return booking, nil
}

// UpdateBookingStatus advances a booking through its state machine, with the
// same cancellation rule as orders.
func (s *Service) UpdateBookingStatus(ctx context.Context, bookingID, status string) (models.ServiceBooking, error) {
	current, ok := s.store.Bookings().GetByID(ctx, bookingID)
	if !ok {
		return models.ServiceBooking{}, ErrBookingNotFound
	}

	if !bookingTransitionAllowed(current.Status, status) {
		return models.ServiceBooking{}, fmt.Errorf("%w: booking %s -> %s", ErrInvalidTransition, current.Status, status)
	}

	s.store.Bookings().Update(ctx, bookingID, func(b *models.ServiceBooking) {
		b.Status = status
	})

	current.Status = status
	s.publishBookingEvent(events.EventBookingStatusChange, current)
	s.log.Info().Str("booking_id", bookingID).Str("status", status).Msg("booking status changed")
	return current, nil
}

// RateBooking records a customer rating on a completed booking.
func (s *Service) RateBooking(ctx context.Context, bookingID string, rating float64) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("checkout: rating %.1f out of range", rating)
	}

	current, ok := s.store.Bookings().GetByID(ctx, bookingID)
	if !ok {
		return ErrBookingNotFound
	}
	if current.Status != models.BookingStatusCompleted {
		return fmt.Errorf("%w: rating requires a completed booking", ErrInvalidTransition)
	}

	s.store.Bookings().Update(ctx, bookingID, func(b *models.ServiceBooking) {
		b.Rating = rating
	})
	return nil
}

func orderTransitionAllowed(from, to string) bool {
	if from == to {
		return false
	}
	if to == models.OrderStatusCancelled {
		return from != models.OrderStatusDelivered && from != models.OrderStatusCancelled
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func bookingTransitionAllowed(from, to string) bool {
	if from == to {
		return false
	}
	if to == models.BookingStatusCancelled {
		switch from {
		case models.BookingStatusCompleted, models.BookingStatusCancelled, models.BookingStatusRejected:
			return false
		default:
			return true
		}
	}
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *Service) publishOrderEvent(eventType string, order models.Order) {
	itemCount := 0
	for _, item := range order.Items {
		itemCount += item.Quantity
	}
	err := s.bus.PublishJSON(eventType, events.OrderEventPayload{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Total:      order.Total,
		Status:     order.Status,
		ItemCount:  itemCount,
		CreatedAt:  order.CreatedAt,
	})
	if err != nil {
		s.log.Error().Err(err).Str("event", eventType).Msg("publish failed")
	}
}

func (s *Service) publishBookingEvent(eventType string, booking models.ServiceBooking) {
	err := s.bus.PublishJSON(eventType, events.BookingEventPayload{
		BookingID:     booking.ID,
		CustomerID:    booking.CustomerID,
		ProviderID:    booking.ProviderID,
		Service:       booking.Service,
		Status:        booking.Status,
		TotalPrice:    booking.TotalPrice,
		ScheduledDate: booking.ScheduledDate,
		IsUrgent:      booking.IsUrgent,
	})
	if err != nil {
		s.log.Error().Err(err).Str("event", eventType).Msg("publish failed")
	}
}

// newTrackingNumber mints a TRK-prefixed carrier reference.
func newTrackingNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "TRK" + raw[:9]
}
