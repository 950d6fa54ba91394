package google

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"buildmart/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRowValues(t *testing.T) {
	order := &models.Order{
		ID:         "order-1",
		CustomerID: "customer-1",
		Items: []models.CartItem{
			{Quantity: 2},
			{Quantity: 3},
		},
		Total:          3798,
		Status:         models.OrderStatusConfirmed,
		PaymentStatus:  models.PaymentStatusPaid,
		TrackingNumber: "TRK123456789",
		CreatedAt:      time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC),
	}

	row := orderRowValues(order)
	require.Len(t, row, 8)
	assert.Equal(t, "order-1", row[0])
	assert.Equal(t, 5, row[2])
	assert.Equal(t, "confirmed", row[4])
	assert.Equal(t, "2024-01-15 10:30:00", row[7])
}

func TestBookingRowValues(t *testing.T) {
	booking := &models.ServiceBooking{
		ID:            "booking-1",
		CustomerID:    "customer-1",
		ProviderID:    "painter-1",
		Service:       "Interior Painting",
		ScheduledDate: time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC),
		Status:        models.BookingStatusPending,
		TotalPrice:    2999,
	}

	row := bookingRowValues(booking)
	require.Len(t, row, 8)
	assert.Equal(t, "booking-1", row[0])
	assert.Equal(t, "2024-02-15", row[4])
	assert.Equal(t, 2999.0, row[6])
}

func TestGetServiceAccountEmail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"client_email":"sync@buildmart.iam.gserviceaccount.com"}`), 0o600))

	var s SheetsService
	email, err := s.GetServiceAccountEmail(path)
	require.NoError(t, err)
	assert.Equal(t, "sync@buildmart.iam.gserviceaccount.com", email)
}

func TestGetServiceAccountEmailBadFile(t *testing.T) {
	var s SheetsService

	_, err := s.GetServiceAccountEmail(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))
	_, err = s.GetServiceAccountEmail(path)
	assert.Error(t, err)
}

func TestRowCache(t *testing.T) {
	s := SheetsService{rowCache: make(map[string]int)}

	_, ok := s.getCachedRow("order-1")
	assert.False(t, ok)

	s.setCachedRow("order-1", 7)
	row, ok := s.getCachedRow("order-1")
	assert.True(t, ok)
	assert.Equal(t, 7, row)

	s.ClearCache()
	_, ok = s.getCachedRow("order-1")
	assert.False(t, ok)
}
