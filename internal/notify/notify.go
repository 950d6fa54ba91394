package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"buildmart/internal/events"
	"buildmart/internal/models"
	"buildmart/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Sender is the slice of tgbotapi.BotAPI the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier turns domain events into persisted notifications, optionally
// forwarding a copy to a Telegram admin chat.
type Notifier struct {
	store       *storage.Storage
	log         *zerolog.Logger
	telegram    Sender
	adminChatID int64
}

func New(store *storage.Storage, log *zerolog.Logger) *Notifier {
	return &Notifier{store: store, log: log}
}

// WithTelegram enables admin-chat forwarding.
func (n *Notifier) WithTelegram(sender Sender, adminChatID int64) *Notifier {
	n.telegram = sender
	n.adminChatID = adminChatID
	return n
}

// Register subscribes the notifier to all marketplace events.
func (n *Notifier) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventOrderCreated, n.onOrderCreated)
	bus.Subscribe(events.EventOrderStatusChanged, n.onOrderStatusChanged)
	bus.Subscribe(events.EventBookingCreated, n.onBookingCreated)
	bus.Subscribe(events.EventBookingStatusChange, n.onBookingStatusChanged)
}

func (n *Notifier) onOrderCreated(event *events.Event) error {
	var payload events.OrderEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return err
	}

	n.record(models.Notification{
		UserID:    payload.CustomerID,
		Title:     "Order Placed",
		Message:   fmt.Sprintf("Your order #%s for %.2f has been placed.", payload.OrderID, payload.Total),
		Type:      models.NotificationSuccess,
		ActionURL: "/dashboard",
	})
	n.forward(fmt.Sprintf("New order %s: %.2f (%d items)", payload.OrderID, payload.Total, payload.ItemCount))
	return nil
}

func (n *Notifier) onOrderStatusChanged(event *events.Event) error {
	var payload events.OrderEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return err
	}

	kind := models.NotificationInfo
	switch payload.Status {
	case models.OrderStatusDelivered:
		kind = models.NotificationSuccess
	case models.OrderStatusCancelled:
		kind = models.NotificationWarning
	}

	n.record(models.Notification{
		UserID:    payload.CustomerID,
		Title:     "Order Update",
		Message:   fmt.Sprintf("Your order #%s is now %s.", payload.OrderID, payload.Status),
		Type:      kind,
		ActionURL: "/dashboard",
	})
	return nil
}

func (n *Notifier) onBookingCreated(event *events.Event) error {
	var payload events.BookingEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return err
	}

	// The provider gets the request; the customer gets a receipt.
	n.record(models.Notification{
		UserID:    payload.ProviderID,
		Title:     "New Service Request",
		Message:   fmt.Sprintf("You have a new %s request.", payload.Service),
		Type:      models.NotificationInfo,
		ActionURL: "/provider-dashboard",
	})
	n.record(models.Notification{
		UserID:    payload.CustomerID,
		Title:     "Booking Requested",
		Message:   fmt.Sprintf("Your %s booking was sent to the provider.", payload.Service),
		Type:      models.NotificationInfo,
		ActionURL: "/dashboard",
	})
	if payload.IsUrgent {
		n.forward(fmt.Sprintf("Urgent booking %s: %s for provider %s", payload.BookingID, payload.Service, payload.ProviderID))
	}
	return nil
}

func (n *Notifier) onBookingStatusChanged(event *events.Event) error {
	var payload events.BookingEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return err
	}

	kind := models.NotificationInfo
	switch payload.Status {
	case models.BookingStatusAccepted, models.BookingStatusCompleted:
		kind = models.NotificationSuccess
	case models.BookingStatusRejected, models.BookingStatusCancelled:
		kind = models.NotificationWarning
	}

	n.record(models.Notification{
		UserID:    payload.CustomerID,
		Title:     "Booking Update",
		Message:   fmt.Sprintf("Your %s booking is now %s.", payload.Service, payload.Status),
		Type:      kind,
		ActionURL: "/dashboard",
	})
	return nil
}

func (n *Notifier) record(notification models.Notification) {
	notification.ID = "notif-" + uuid.NewString()
	notification.CreatedAt = time.Now()
	n.store.Notifications().Add(context.Background(), notification)
}

func (n *Notifier) forward(text string) {
	if n.telegram == nil || n.adminChatID == 0 {
		return
	}
	if _, err := n.telegram.Send(tgbotapi.NewMessage(n.adminChatID, text)); err != nil {
		n.log.Error().Err(err).Msg("telegram forward failed")
	}
}
