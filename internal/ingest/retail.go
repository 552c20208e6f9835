// internal/ingest/retail.go
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"

	"github.com/xingluo6/redmart/internal/models"
)

// RetailOptions controls the Online Retail CSV transformation.
type RetailOptions struct {
	// FillMissing synthesizes the fields the dataset lacks (product
	// descriptions, categories, stock, user names) instead of defaults.
	FillMissing bool
	Seed        uint64
}

type retailRow struct {
	invoiceNo   string
	stockCode   string
	description string
	quantity    int
	invoiceDate time.Time
	unitPrice   float64
	customerID  string
	country     string
}

// LoadRetailCSV reads an Online Retail export (ISO-8859-1 encoded) and
// transforms it into the three record batches: one product per stock code
// priced at its mean unit price, one user per distinct customer, and one
// order per invoice with items in source row order. Credit notes (invoice
// numbers containing 'C') are skipped, as are rows without a customer or
// description and rows with non-positive quantity or price.
func LoadRetailCSV(path string, opts RetailOptions) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open retail dataset: %w", err)
	}
	defer file.Close()
	return parseRetail(charmap.ISO8859_1.NewDecoder().Reader(file), opts)
}

func parseRetail(r io.Reader, opts RetailOptions) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read retail header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"InvoiceNo", "StockCode", "Description", "Quantity", "InvoiceDate", "UnitPrice", "CustomerID", "Country"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("retail dataset missing column %s", required)
		}
	}

	var rows []retailRow
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read retail row: %w", err)
		}
		row, ok := cleanRow(record, col)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	if skipped > 0 {
		logrus.WithField("skipped", skipped).Info("Dropped unusable retail rows")
	}

	return assemble(rows, opts), nil
}

func cleanRow(record []string, col map[string]int) (retailRow, bool) {
	get := func(name string) string {
		idx := col[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	row := retailRow{
		invoiceNo:   get("InvoiceNo"),
		stockCode:   get("StockCode"),
		description: get("Description"),
		customerID:  get("CustomerID"),
		country:     get("Country"),
	}
	if row.customerID == "" || row.description == "" {
		return retailRow{}, false
	}

	qty, err := strconv.Atoi(get("Quantity"))
	if err != nil || qty <= 0 {
		return retailRow{}, false
	}
	row.quantity = qty

	price, err := strconv.ParseFloat(get("UnitPrice"), 64)
	if err != nil || price <= 0 {
		return retailRow{}, false
	}
	row.unitPrice = price

	date, ok := parseRetailDate(get("InvoiceDate"))
	if !ok {
		return retailRow{}, false
	}
	row.invoiceDate = date

	return row, true
}

// parseRetailDate handles the dataset's "M/D/YYYY H:MM" format plus ISO
// fallbacks seen in re-exports.
func parseRetailDate(s string) (time.Time, bool) {
	for _, layout := range []string{"1/2/2006 15:04", "1/2/2006 15:04:05", "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func assemble(rows []retailRow, opts RetailOptions) *Dataset {
	f := gofakeit.New(opts.Seed)
	now := time.Now()
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	decadeStart := now.AddDate(-10, 0, 0)
	ds := &Dataset{}

	// Products: mean unit price per stock code, first description as name.
	type priceAgg struct {
		name  string
		sum   float64
		count int
	}
	productAgg := make(map[string]*priceAgg)
	var productOrder []string
	for _, row := range rows {
		agg, ok := productAgg[row.stockCode]
		if !ok {
			agg = &priceAgg{name: row.description}
			productAgg[row.stockCode] = agg
			productOrder = append(productOrder, row.stockCode)
		}
		agg.sum += row.unitPrice
		agg.count++
	}
	for _, code := range productOrder {
		agg := productAgg[code]
		p := models.Product{
			ID:        code,
			Name:      agg.name,
			Price:     agg.sum / float64(agg.count),
			CreatedAt: now.Format(time.RFC3339),
		}
		if opts.FillMissing {
			p.Description = f.Sentence(10)
			p.Category = Categories[f.Number(0, len(Categories)-1)]
			p.Stock = f.Number(50, 500)
			p.CreatedAt = f.DateRange(yearStart, now).Format(time.RFC3339)
		} else {
			p.Category = "unknown"
		}
		ds.Products = append(ds.Products, p)
	}

	// Users: one per distinct customer id.
	seenUsers := make(map[string]struct{})
	for _, row := range rows {
		if _, ok := seenUsers[row.customerID]; ok {
			continue
		}
		seenUsers[row.customerID] = struct{}{}
		u := models.User{
			ID:               row.customerID,
			RegistrationDate: now.Format(time.RFC3339),
			LastLogin:        now.Format(time.RFC3339),
		}
		if opts.FillMissing {
			u.Username = f.Username()
			u.Email = f.Email()
			u.RegistrationDate = f.DateRange(decadeStart, now).Format(time.RFC3339)
			u.LastLogin = f.DateRange(yearStart, now).Format(time.RFC3339)
		} else {
			u.Username = "anonymous"
		}
		ds.Users = append(ds.Users, u)
	}

	// Orders: group rows by invoice, items in source order, credit notes
	// excluded.
	orderIdx := make(map[string]int)
	for _, row := range rows {
		if strings.Contains(row.invoiceNo, "C") {
			continue
		}
		idx, ok := orderIdx[row.invoiceNo]
		if !ok {
			idx = len(ds.Orders)
			orderIdx[row.invoiceNo] = idx
			ds.Orders = append(ds.Orders, models.Order{
				ID:        row.invoiceNo,
				UserID:    row.customerID,
				OrderDate: row.invoiceDate.Format("2006-01-02T15:04:05"),
				Country:   row.country,
				Status:    retailStatus(f),
			})
		}
		order := &ds.Orders[idx]
		order.Items = append(order.Items, models.OrderItem{
			OrderID:     order.ID,
			Index:       len(order.Items),
			ProductRef:  row.stockCode,
			Description: row.description,
			Quantity:    row.quantity,
			UnitPrice:   row.unitPrice,
		})
		order.TotalAmount += float64(row.quantity) * row.unitPrice
	}

	return ds
}

// retailStatus picks a fulfilled-looking status; the dataset has no status
// column.
func retailStatus(f *gofakeit.Faker) models.OrderStatus {
	fulfilled := []models.OrderStatus{
		models.OrderStatusPaid,
		models.OrderStatusShipped,
		models.OrderStatusCompleted,
	}
	return fulfilled[f.Number(0, len(fulfilled)-1)]
}
