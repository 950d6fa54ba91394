package models

import "time"

// Order is an immutable snapshot of a purchased selection. Items and Total
// are captured at checkout and never recomputed from the catalog.
type Order struct {
	ID                string     `json:"id"`
	CustomerID        string     `json:"customerId"`
	Items             []CartItem `json:"items"`
	Total             float64    `json:"total"`
	Status            string     `json:"status"`
	PaymentStatus     string     `json:"paymentStatus"`
	DeliveryAddress   Address    `json:"deliveryAddress"`
	CreatedAt         time.Time  `json:"createdAt"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
	TrackingNumber    string     `json:"trackingNumber,omitempty"`
}

// Terminal reports whether no further status transition is allowed.
func (o Order) Terminal() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled
}

// CountsAsRevenue mirrors the dashboard rule: only delivered orders are
// counted into revenue totals.
func (o Order) CountsAsRevenue() bool {
	return o.Status == OrderStatusDelivered
}
