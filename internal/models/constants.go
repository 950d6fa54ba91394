package models

// Order statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Booking statuses.
const (
	BookingStatusPending    = "pending"
	BookingStatusAccepted   = "accepted"
	BookingStatusRejected   = "rejected"
	BookingStatusInProgress = "in_progress"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
)

// Contract statuses.
const (
	ContractStatusOpen       = "open"
	ContractStatusInProgress = "in_progress"
	ContractStatusCompleted  = "completed"
	ContractStatusCancelled  = "cancelled"
)

// Notification types.
const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

// Cart item types.
const (
	ItemTypeProduct = "product"
	ItemTypeService = "service"
)

const (
	// DefaultLowStockThreshold flags products running out on dashboards.
	DefaultLowStockThreshold = 10

	// DefaultRecentLimit caps "recent" dashboard lists.
	DefaultRecentLimit = 10

	// DefaultTaxRate applies at checkout when the config does not set one.
	DefaultTaxRate = 0.08

	// EstimatedDeliveryDays offsets a new order's delivery estimate.
	EstimatedDeliveryDays = 7
)
