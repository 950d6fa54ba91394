package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"buildmart/internal/storage"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Exporter writes back-office spreadsheets for orders and bookings.
type Exporter struct {
	store *storage.Storage
	path  string
	log   *zerolog.Logger
}

func New(store *storage.Storage, path string, log *zerolog.Logger) *Exporter {
	return &Exporter{store: store, path: path, log: log}
}

var orderHeaders = []string{"Order ID", "Customer", "Items", "Total", "Status", "Payment", "Tracking", "Created"}
var bookingHeaders = []string{"Booking ID", "Customer", "Provider", "Service", "Scheduled", "Urgent", "Status", "Price", "Rating"}

// Orders writes every order to an xlsx file and returns its path.
func (e *Exporter) Orders(ctx context.Context) (string, error) {
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	orders := e.store.Orders().Get(ctx)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Orders"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	writeHeaderRow(f, sheetName, orderHeaders)

	for i, order := range orders {
		row := i + 2
		itemCount := 0
		for _, item := range order.Items {
			itemCount += item.Quantity
		}
		setRow(f, sheetName, row,
			order.ID,
			order.CustomerID,
			itemCount,
			order.Total,
			order.Status,
			order.PaymentStatus,
			order.TrackingNumber,
			order.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	_ = f.SetColWidth(sheetName, "A", "B", 30)
	_ = f.SetColWidth(sheetName, "C", "H", 18)
	_ = f.DeleteSheet("Sheet1")

	filePath := filepath.Join(e.path, fmt.Sprintf("orders_%s.xlsx", time.Now().Format("2006-01-02")))
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.log.Info().Str("file_path", filePath).Int("orders", len(orders)).Msg("orders export created")
	return filePath, nil
}

// Bookings writes every booking to an xlsx file and returns its path.
func (e *Exporter) Bookings(ctx context.Context) (string, error) {
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	bookings := e.store.Bookings().Get(ctx)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Bookings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	writeHeaderRow(f, sheetName, bookingHeaders)

	for i, booking := range bookings {
		row := i + 2
		setRow(f, sheetName, row,
			booking.ID,
			booking.CustomerID,
			booking.ProviderID,
			booking.Service,
			booking.ScheduledDate.Format("2006-01-02"),
			booking.IsUrgent,
			booking.Status,
			booking.TotalPrice,
			booking.Rating,
		)
	}

	_ = f.SetColWidth(sheetName, "A", "C", 30)
	_ = f.SetColWidth(sheetName, "D", "I", 18)
	_ = f.DeleteSheet("Sheet1")

	filePath := filepath.Join(e.path, fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02")))
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.log.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("bookings export created")
	return filePath, nil
}

func writeHeaderRow(f *excelize.File, sheetName string, headers []string) {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, style)
	}
}

func setRow(f *excelize.File, sheetName string, row int, values ...any) {
	for i, value := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheetName, cell, value)
	}
}
