// internal/ingest/synthetic.go
package ingest

import (
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/xingluo6/redmart/internal/models"
)

// Categories every synthetic product is drawn from.
var Categories = []string{
	"electronics",
	"apparel",
	"home goods",
	"books and media",
	"beauty",
	"food and beverage",
}

var statuses = []models.OrderStatus{
	models.OrderStatusPending,
	models.OrderStatusPaid,
	models.OrderStatusShipped,
	models.OrderStatusCompleted,
	models.OrderStatusCancelled,
}

type SyntheticOptions struct {
	Products int
	Users    int
	Orders   int
	Seed     uint64
}

// Dataset is one generated batch of the three record streams.
type Dataset struct {
	Products []models.Product
	Users    []models.User
	Orders   []models.Order
}

// GenerateDataset produces a synthetic dataset. Orders reference generated
// product and user ids; each synthetic order carries a single line item.
func GenerateDataset(opts SyntheticOptions) *Dataset {
	f := gofakeit.New(opts.Seed)
	now := time.Now()
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	decadeStart := now.AddDate(-10, 0, 0)

	ds := &Dataset{
		Products: make([]models.Product, 0, opts.Products),
		Users:    make([]models.User, 0, opts.Users),
		Orders:   make([]models.Order, 0, opts.Orders),
	}

	for i := 0; i < opts.Products; i++ {
		ds.Products = append(ds.Products, models.Product{
			ID:          f.UUID(),
			Name:        f.ProductName(),
			Description: f.Sentence(12),
			Category:    Categories[f.Number(0, len(Categories)-1)],
			Price:       round2(f.Price(10, 10000)),
			Stock:       f.Number(0, 500),
			CreatedAt:   f.DateRange(yearStart, now).Format(time.RFC3339),
		})
	}

	for i := 0; i < opts.Users; i++ {
		ds.Users = append(ds.Users, models.User{
			ID:               f.UUID(),
			Username:         f.Username(),
			Email:            f.Email(),
			RegistrationDate: f.DateRange(decadeStart, now).Format(time.RFC3339),
			LastLogin:        f.DateRange(yearStart, now).Format(time.RFC3339),
		})
	}

	if len(ds.Products) == 0 || len(ds.Users) == 0 {
		return ds
	}

	for i := 0; i < opts.Orders; i++ {
		orderID := f.UUID()
		product := &ds.Products[f.Number(0, len(ds.Products)-1)]
		user := &ds.Users[f.Number(0, len(ds.Users)-1)]
		quantity := f.Number(1, 5)
		unitPrice := round2(f.Price(10, 500))

		ds.Orders = append(ds.Orders, models.Order{
			ID:          orderID,
			UserID:      user.ID,
			OrderDate:   f.DateRange(yearStart, now).Format(time.RFC3339),
			TotalAmount: round2(float64(quantity) * unitPrice),
			Country:     f.Country(),
			Status:      statuses[f.Number(0, len(statuses)-1)],
			Items: []models.OrderItem{{
				OrderID:     orderID,
				Index:       0,
				ProductRef:  product.ID,
				Description: product.Name,
				Quantity:    quantity,
				UnitPrice:   unitPrice,
			}},
		})
	}

	return ds
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
