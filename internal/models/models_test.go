package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"admin", "customer", "service_provider"} {
		role, err := ParseRole(raw)
		require.NoError(t, err)
		assert.True(t, role.Valid())
	}

	_, err := ParseRole("superuser")
	assert.Error(t, err)
	assert.False(t, Role("").Valid())
}

func TestAddressComplete(t *testing.T) {
	addr := Address{Address: "123 Main St", City: "Mumbai", State: "Maharashtra", ZipCode: "400001"}
	assert.True(t, addr.Complete())

	addr.ZipCode = ""
	assert.False(t, addr.Complete())
}

func TestCartItemSubtotal(t *testing.T) {
	item := CartItem{Price: 1899, Quantity: 2}
	assert.Equal(t, 3798.0, item.Subtotal())
}

func TestOrderTerminal(t *testing.T) {
	assert.True(t, Order{Status: OrderStatusDelivered}.Terminal())
	assert.True(t, Order{Status: OrderStatusCancelled}.Terminal())
	assert.False(t, Order{Status: OrderStatusShipped}.Terminal())

	assert.True(t, Order{Status: OrderStatusDelivered}.CountsAsRevenue())
	assert.False(t, Order{Status: OrderStatusPending}.CountsAsRevenue())
}

func TestBookingActive(t *testing.T) {
	assert.True(t, ServiceBooking{Status: BookingStatusPending}.Active())
	assert.True(t, ServiceBooking{Status: BookingStatusInProgress}.Active())
	assert.False(t, ServiceBooking{Status: BookingStatusCompleted}.Active())
	assert.False(t, ServiceBooking{Status: BookingStatusRejected}.Active())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, "light", s.Theme)
	assert.True(t, s.Notifications)
	assert.Equal(t, "en", s.Language)
}
