package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"buildmart/internal/auth"
	"buildmart/internal/cart"
	"buildmart/internal/checkout"
	"buildmart/internal/config"
	"buildmart/internal/dashboard"
	"buildmart/internal/export"
	"buildmart/internal/metrics"
	"buildmart/internal/storage"

	"github.com/rs/zerolog"
)

// HTTPServer exposes the marketplace over a JSON HTTP API.
type HTTPServer struct {
	cfg        config.APIConfig
	store      *storage.Storage
	auth       *HTTPAuth
	accounts   *auth.Service
	checkout   *checkout.Service
	dashboards *dashboard.Service
	cart       *cart.Cart
	exports    *export.Exporter
	server     *http.Server
	log        *zerolog.Logger
}

func NewHTTPServer(
	cfg config.APIConfig,
	store *storage.Storage,
	accounts *auth.Service,
	checkoutSvc *checkout.Service,
	dashboards *dashboard.Service,
	cartAgg *cart.Cart,
	log *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		cfg:        cfg,
		store:      store,
		accounts:   accounts,
		checkout:   checkoutSvc,
		dashboards: dashboards,
		cart:       cartAgg,
		log:        log,
	}
	srv.auth = NewHTTPAuth(cfg)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", srv.handleHealth)
	mux.HandleFunc("/api/v1/auth/login", srv.handleLogin)
	mux.HandleFunc("/api/v1/auth/logout", srv.handleLogout)
	mux.HandleFunc("/api/v1/auth/me", srv.handleMe)
	mux.HandleFunc("/api/v1/products", srv.handleProducts)
	mux.HandleFunc("/api/v1/products/", srv.handleProductByID)
	mux.HandleFunc("/api/v1/services", srv.handleServices)
	mux.HandleFunc("/api/v1/cart", srv.handleCart)
	mux.HandleFunc("/api/v1/cart/items", srv.handleCartItems)
	mux.HandleFunc("/api/v1/cart/items/", srv.handleCartItemByID)
	mux.HandleFunc("/api/v1/checkout", srv.handleCheckout)
	mux.HandleFunc("/api/v1/orders", srv.handleOrders)
	mux.HandleFunc("/api/v1/orders/", srv.handleOrderSubroutes)
	mux.HandleFunc("/api/v1/bookings", srv.handleBookings)
	mux.HandleFunc("/api/v1/bookings/", srv.handleBookingSubroutes)
	mux.HandleFunc("/api/v1/notifications", srv.handleNotifications)
	mux.HandleFunc("/api/v1/notifications/", srv.handleNotificationRead)
	mux.HandleFunc("/api/v1/wishlist", srv.handleWishlist)
	mux.HandleFunc("/api/v1/exports/", srv.handleExports)
	mux.HandleFunc("/api/v1/dashboard/admin", srv.handleAdminDashboard)
	mux.HandleFunc("/api/v1/dashboard/customer/", srv.handleCustomerDashboard)
	mux.HandleFunc("/api/v1/dashboard/provider/", srv.handleProviderDashboard)

	handler := srv.loggingMiddleware(srv.auth.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

// WithExporter enables the xlsx export endpoints.
func (s *HTTPServer) WithExporter(exporter *export.Exporter) *HTTPServer {
	s.exports = exporter
	return s
}

// Handler exposes the full middleware chain for tests.
func (s *HTTPServer) Handler() http.Handler { return s.server.Handler }

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		metrics.IncHTTP(r.URL.Path)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
