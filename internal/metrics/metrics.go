package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildmart",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	storageWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildmart",
			Name:      "storage_writes_total",
			Help:      "Collection rewrites by storage key.",
		},
		[]string{"key"},
	)

	ordersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "buildmart",
			Name:      "orders_created_total",
			Help:      "Orders created through checkout.",
		},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "buildmart",
			Name:      "bookings_created_total",
			Help:      "Service bookings created.",
		},
	)

	paymentsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "buildmart",
			Name:      "payments_failed_total",
			Help:      "Declined or errored payment attempts.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, storageWrites, ordersCreated, bookingsCreated, paymentsFailed)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncStorageWrite counts a full-collection rewrite.
func IncStorageWrite(key string) {
	storageWrites.WithLabelValues(key).Inc()
}

func IncOrderCreated()   { ordersCreated.Inc() }
func IncBookingCreated() { bookingsCreated.Inc() }
func IncPaymentFailed()  { paymentsFailed.Inc() }
