package models

import "time"

// ServiceBooking is a requested service engagement with a specific provider.
type ServiceBooking struct {
	ID                 string    `json:"id"`
	CustomerID         string    `json:"customerId"`
	ProviderID         string    `json:"providerId"`
	Service            string    `json:"service"`
	Category           string    `json:"category"`
	WorkersRequired    int       `json:"workersRequired"`
	PreferredLanguages []string  `json:"preferredLanguages,omitempty"`
	Location           Address   `json:"location"`
	ScheduledDate      time.Time `json:"scheduledDate"`
	IsUrgent           bool      `json:"isUrgent"`
	Status             string    `json:"status"`
	TotalPrice         float64   `json:"totalPrice"`
	CreatedAt          time.Time `json:"createdAt"`
	ProviderNotes      string    `json:"providerNotes,omitempty"`
	CustomerNotes      string    `json:"customerNotes,omitempty"`
	Rating             float64   `json:"rating,omitempty"`
}

// Active reports whether the booking still occupies the provider.
func (b ServiceBooking) Active() bool {
	switch b.Status {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusInProgress:
		return true
	default:
		return false
	}
}
