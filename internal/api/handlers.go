package api

import (
	"errors"
	"net/http"
	"strings"

	"buildmart/internal/auth"
	"buildmart/internal/checkout"
	"buildmart/internal/models"
)

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Email == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := s.accounts.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.accounts.Logout(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	user, err := s.accounts.Current(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "no active session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *HTTPServer) handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx := r.Context()
	if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
		writeJSON(w, http.StatusOK, map[string]any{"products": s.store.Products().GetByCategory(ctx, category)})
		return
	}
	if r.URL.Query().Get("low_stock") == "true" {
		writeJSON(w, http.StatusOK, map[string]any{
			"products": s.store.Products().GetLowStock(ctx, models.DefaultLowStockThreshold),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": s.store.Products().Get(ctx)})
}

func (s *HTTPServer) handleProductByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := pathTail(r.URL.Path, "/api/v1/products/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "product id is required")
		return
	}

	product, ok := s.store.Products().GetByID(r.Context(), id)
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": product})
}

func (s *HTTPServer) handleServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx := r.Context()
	if provider := strings.TrimSpace(r.URL.Query().Get("provider")); provider != "" {
		writeJSON(w, http.StatusOK, map[string]any{"services": s.store.Services().GetByProvider(ctx, provider)})
		return
	}
	if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
		writeJSON(w, http.StatusOK, map[string]any{"services": s.store.Services().GetByCategory(ctx, category)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": s.store.Services().Get(ctx)})
}

func (s *HTTPServer) handleCart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{
			"items":      s.cart.Items(),
			"total":      s.cart.Total(),
			"item_count": s.cart.ItemCount(),
		})
	case http.MethodDelete:
		s.cart.Clear(r.Context())
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleCartItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var item models.CartItem
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if item.ItemID == "" || (item.Type != models.ItemTypeProduct && item.Type != models.ItemTypeService) {
		writeError(w, http.StatusBadRequest, "item_id and a valid type are required")
		return
	}

	added := s.cart.Add(r.Context(), item)
	writeJSON(w, http.StatusCreated, map[string]any{"item": added, "item_count": s.cart.ItemCount()})
}

func (s *HTTPServer) handleCartItemByID(w http.ResponseWriter, r *http.Request) {
	id := pathTail(r.URL.Path, "/api/v1/cart/items/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "line id is required")
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var body struct {
			Quantity int `json:"quantity"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		s.cart.UpdateQuantity(r.Context(), id, body.Quantity)
		writeJSON(w, http.StatusOK, map[string]any{"items": s.cart.Items()})
	case http.MethodDelete:
		s.cart.Remove(r.Context(), id)
		writeJSON(w, http.StatusOK, map[string]any{"items": s.cart.Items()})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		CustomerID    string         `json:"customer_id"`
		Address       models.Address `json:"address"`
		PaymentMethod string         `json:"payment_method"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.CustomerID == "" {
		writeError(w, http.StatusBadRequest, "customer_id is required")
		return
	}

	order, err := s.checkout.PlaceOrder(r.Context(), s.cart, body.CustomerID, body.Address, body.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart), errors.Is(err, checkout.ErrIncompleteAddress):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, checkout.ErrPaymentDeclined):
			writeError(w, http.StatusPaymentRequired, "payment declined")
		default:
			writeError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"order": order})
}

func (s *HTTPServer) handleOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx := r.Context()
	if customer := strings.TrimSpace(r.URL.Query().Get("customer")); customer != "" {
		writeJSON(w, http.StatusOK, map[string]any{"orders": s.store.Orders().GetByCustomer(ctx, customer)})
		return
	}
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		writeJSON(w, http.StatusOK, map[string]any{"orders": s.store.Orders().GetByStatus(ctx, status)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": s.store.Orders().Get(ctx)})
}

func (s *HTTPServer) handleOrderSubroutes(w http.ResponseWriter, r *http.Request) {
	rest := pathTail(r.URL.Path, "/api/v1/orders/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "order id is required")
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		order, ok := s.store.Orders().GetByID(r.Context(), id)
		if !ok {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"order": order})
	case action == "status" && r.Method == http.MethodPost:
		var body struct {
			Status string `json:"status"`
		}
		if err := decodeJSON(r, &body); err != nil || body.Status == "" {
			writeError(w, http.StatusBadRequest, "status is required")
			return
		}
		order, err := s.checkout.UpdateOrderStatus(r.Context(), id, body.Status)
		if err != nil {
			writeTransitionError(w, err, checkout.ErrOrderNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"order": order})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleBookings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		if provider := strings.TrimSpace(r.URL.Query().Get("provider")); provider != "" {
			writeJSON(w, http.StatusOK, map[string]any{"bookings": s.store.Bookings().GetByProvider(ctx, provider)})
			return
		}
		if customer := strings.TrimSpace(r.URL.Query().Get("customer")); customer != "" {
			writeJSON(w, http.StatusOK, map[string]any{"bookings": s.store.Bookings().GetByCustomer(ctx, customer)})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"bookings": s.store.Bookings().Get(ctx)})
	case http.MethodPost:
		var booking models.ServiceBooking
		if err := decodeJSON(r, &booking); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		created, err := s.checkout.BookService(ctx, booking)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"booking": created})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleBookingSubroutes(w http.ResponseWriter, r *http.Request) {
	rest := pathTail(r.URL.Path, "/api/v1/bookings/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "booking id is required")
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		booking, ok := s.store.Bookings().GetByID(r.Context(), id)
		if !ok {
			writeError(w, http.StatusNotFound, "booking not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
	case action == "status" && r.Method == http.MethodPost:
		var body struct {
			Status string `json:"status"`
		}
		if err := decodeJSON(r, &body); err != nil || body.Status == "" {
			writeError(w, http.StatusBadRequest, "status is required")
			return
		}
		booking, err := s.checkout.UpdateBookingStatus(r.Context(), id, body.Status)
		if err != nil {
			writeTransitionError(w, err, checkout.ErrBookingNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
	case action == "rating" && r.Method == http.MethodPost:
		var body struct {
			Rating float64 `json:"rating"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := s.checkout.RateBooking(r.Context(), id, body.Rating); err != nil {
			writeTransitionError(w, err, checkout.ErrBookingNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "rated"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	user := strings.TrimSpace(r.URL.Query().Get("user"))
	if user == "" {
		writeError(w, http.StatusBadRequest, "user is required")
		return
	}

	ctx := r.Context()
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": s.store.Notifications().GetByUser(ctx, user),
		"unread":        s.store.Notifications().UnreadCount(ctx, user),
	})
}

func (s *HTTPServer) handleNotificationRead(w http.ResponseWriter, r *http.Request) {
	rest := pathTail(r.URL.Path, "/api/v1/notifications/")
	id, action, _ := strings.Cut(rest, "/")
	if r.Method != http.MethodPost || action != "read" || id == "" {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if !s.store.Notifications().MarkAsRead(r.Context(), id) {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

func (s *HTTPServer) handleWishlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"items": s.store.Wishlist().Get(ctx)})
	case http.MethodPost:
		var body struct {
			ItemID string `json:"item_id"`
		}
		if err := decodeJSON(r, &body); err != nil || body.ItemID == "" {
			writeError(w, http.StatusBadRequest, "item_id is required")
			return
		}
		s.store.Wishlist().Add(ctx, body.ItemID)
		writeJSON(w, http.StatusOK, map[string]any{"items": s.store.Wishlist().Get(ctx)})
	case http.MethodDelete:
		itemID := strings.TrimSpace(r.URL.Query().Get("item_id"))
		if itemID == "" {
			writeError(w, http.StatusBadRequest, "item_id is required")
			return
		}
		s.store.Wishlist().Remove(ctx, itemID)
		writeJSON(w, http.StatusOK, map[string]any{"items": s.store.Wishlist().Get(ctx)})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.dashboards.Admin(r.Context()))
}

func (s *HTTPServer) handleCustomerDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := pathTail(r.URL.Path, "/api/v1/dashboard/customer/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "user id is required")
		return
	}

	data, ok := s.dashboards.Customer(r.Context(), id)
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *HTTPServer) handleProviderDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := pathTail(r.URL.Path, "/api/v1/dashboard/provider/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "provider id is required")
		return
	}
	writeJSON(w, http.StatusOK, s.dashboards.Provider(r.Context(), id))
}

func (s *HTTPServer) handleExports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.exports == nil {
		writeError(w, http.StatusServiceUnavailable, "exports are not configured")
		return
	}

	var (
		file string
		err  error
	)
	switch pathTail(r.URL.Path, "/api/v1/exports/") {
	case "orders":
		file, err = s.exports.Orders(r.Context())
	case "bookings":
		file, err = s.exports.Bookings(r.Context())
	default:
		writeError(w, http.StatusNotFound, "unknown export")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"file": file})
}

func writeTransitionError(w http.ResponseWriter, err error, notFound error) {
	switch {
	case errors.Is(err, notFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, checkout.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func pathTail(path, prefix string) string {
	return strings.Trim(strings.TrimPrefix(path, prefix), "/")
}
