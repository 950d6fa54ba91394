package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"buildmart/internal/models"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ErrRowNotFound signals that an order has no row in the sheet yet.
var ErrRowNotFound = errors.New("sheet row not found")

// SheetsService mirrors orders and bookings into Google Sheets for the
// back office. Row lookups by ID go through a cache over column A.
type SheetsService struct {
	service         *sheets.Service
	ordersSheetID   string
	bookingsSheetID string
	rowCache        map[string]int
	cacheMu         sync.RWMutex
}

// NewSheetsService builds a Sheets client from a service-account key file.
func NewSheetsService(credentialsFile, ordersSheetID, bookingsSheetID string) (*SheetsService, error) {
	ctx := context.Background()

	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %v", err)
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %v", err)
	}

	client := config.Client(ctx)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %v", err)
	}

	service := &SheetsService{
		service:         srv,
		ordersSheetID:   ordersSheetID,
		bookingsSheetID: bookingsSheetID,
		rowCache:        make(map[string]int),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		service.WarmUpCache(ctx)
	}()

	return service, nil
}

// TestConnection reads one cell to verify access.
func (s *SheetsService) TestConnection(ctx context.Context) error {
	_, err := s.service.Spreadsheets.Values.Get(s.ordersSheetID, "Orders!A1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("connection test failed: %v", err)
	}
	return nil
}

// GetServiceAccountEmail extracts the account email from the key file, for
// sharing instructions.
func (s *SheetsService) GetServiceAccountEmail(credentialsFile string) (string, error) {
	file, err := os.ReadFile(credentialsFile)
	if err != nil {
		return "", err
	}

	var creds struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal(file, &creds); err != nil {
		return "", err
	}
	return creds.ClientEmail, nil
}

// WarmUpCache populates the row index cache from the order ID column.
func (s *SheetsService) WarmUpCache(ctx context.Context) error {
	resp, err := s.service.Spreadsheets.Values.Get(s.ordersSheetID, "Orders!A:A").Context(ctx).Do()
	if err != nil {
		return err
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.rowCache = make(map[string]int)

	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if id, ok := row[0].(string); ok && id != "" {
			s.rowCache[id] = i + 1
		}
	}
	return nil
}

// AppendOrder adds a new order row.
func (s *SheetsService) AppendOrder(ctx context.Context, order *models.Order) error {
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{orderRowValues(order)},
	}

	_, err := s.service.Spreadsheets.Values.Append(s.ordersSheetID, "Orders!A:A", valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// UpsertOrder updates the existing order row or appends one.
func (s *SheetsService) UpsertOrder(ctx context.Context, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("order is nil")
	}

	rowIdx, err := s.FindOrderRow(ctx, order.ID)
	if err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return s.AppendOrder(ctx, order)
		}
		return err
	}

	rangeData := fmt.Sprintf("Orders!A%d:H%d", rowIdx, rowIdx)
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{orderRowValues(order)},
	}

	_, err = s.service.Spreadsheets.Values.Update(s.ordersSheetID, rangeData, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

// UpdateOrderStatus rewrites the status cell of an order row.
func (s *SheetsService) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	rowIdx, err := s.FindOrderRow(ctx, orderID)
	if err != nil {
		return err
	}

	statusRange := fmt.Sprintf("Orders!E%d:E%d", rowIdx, rowIdx)
	_, err = s.service.Spreadsheets.Values.Update(s.ordersSheetID, statusRange, &sheets.ValueRange{
		Values: [][]interface{}{{status}},
	}).ValueInputOption("RAW").Context(ctx).Do()
	return err
}

// FindOrderRow locates the 1-based row index for an order ID in column A.
func (s *SheetsService) FindOrderRow(ctx context.Context, orderID string) (int, error) {
	if orderID == "" {
		return 0, fmt.Errorf("order id is required")
	}

	if row, ok := s.getCachedRow(orderID); ok {
		return row, nil
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.ordersSheetID, "Orders!A:A").Context(ctx).Do()
	if err != nil {
		return 0, err
	}

	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if id, ok := row[0].(string); ok && id == orderID {
			rowIdx := i + 1
			s.setCachedRow(orderID, rowIdx)
			return rowIdx, nil
		}
	}

	return 0, ErrRowNotFound
}

// AppendBooking adds a new booking row.
func (s *SheetsService) AppendBooking(ctx context.Context, booking *models.ServiceBooking) error {
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{bookingRowValues(booking)},
	}

	_, err := s.service.Spreadsheets.Values.Append(s.bookingsSheetID, "Bookings!A:A", valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// ReplaceOrdersSheet rewrites the whole orders sheet, headers included.
func (s *SheetsService) ReplaceOrdersSheet(ctx context.Context, orders []models.Order) error {
	values := [][]interface{}{
		{"ID", "Customer", "Items", "Total", "Status", "Payment", "Tracking", "Created"},
	}
	for i := range orders {
		values = append(values, orderRowValues(&orders[i]))
	}

	rangeData := fmt.Sprintf("Orders!A1:H%d", len(values))
	_, err := s.service.Spreadsheets.Values.Update(s.ordersSheetID, rangeData, &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return err
	}

	s.cacheMu.Lock()
	s.rowCache = make(map[string]int)
	for i, order := range orders {
		s.rowCache[order.ID] = i + 2
	}
	s.cacheMu.Unlock()
	return nil
}

func (s *SheetsService) getCachedRow(id string) (int, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	row, ok := s.rowCache[id]
	return row, ok
}

func (s *SheetsService) setCachedRow(id string, row int) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.rowCache[id] = row
}

// ClearCache drops the row index cache.
func (s *SheetsService) ClearCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.rowCache = make(map[string]int)
}

func orderRowValues(order *models.Order) []interface{} {
	itemCount := 0
	for _, item := range order.Items {
		itemCount += item.Quantity
	}
	return []interface{}{
		order.ID,
		order.CustomerID,
		itemCount,
		order.Total,
		order.Status,
		order.PaymentStatus,
		order.TrackingNumber,
		order.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func bookingRowValues(booking *models.ServiceBooking) []interface{} {
	return []interface{}{
		booking.ID,
		booking.CustomerID,
		booking.ProviderID,
		booking.Service,
		booking.ScheduledDate.Format("2006-01-02"),
		booking.Status,
		booking.TotalPrice,
		booking.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
