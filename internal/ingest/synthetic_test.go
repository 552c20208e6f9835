// internal/ingest/synthetic_test.go
package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xingluo6/redmart/internal/models"
)

func TestGenerateDatasetCounts(t *testing.T) {
	ds := GenerateDataset(SyntheticOptions{Products: 20, Users: 5, Orders: 10, Seed: 42})

	assert.Len(t, ds.Products, 20)
	assert.Len(t, ds.Users, 5)
	assert.Len(t, ds.Orders, 10)
}

func TestGeneratedProductsAreValid(t *testing.T) {
	ds := GenerateDataset(SyntheticOptions{Products: 50, Users: 1, Orders: 0, Seed: 42})

	for _, p := range ds.Products {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.Contains(t, Categories, p.Category)
		assert.GreaterOrEqual(t, p.Price, 10.0)
		assert.LessOrEqual(t, p.Price, 10000.0)
		assert.GreaterOrEqual(t, p.Stock, 0)
		assert.NoError(t, models.ValidateProductFields(p.Fields()))
	}
}

func TestGeneratedOrdersReferenceDataset(t *testing.T) {
	ds := GenerateDataset(SyntheticOptions{Products: 10, Users: 4, Orders: 25, Seed: 7})

	productIDs := make(map[string]bool)
	for _, p := range ds.Products {
		productIDs[p.ID] = true
	}
	userIDs := make(map[string]bool)
	for _, u := range ds.Users {
		userIDs[u.ID] = true
	}

	for _, o := range ds.Orders {
		assert.True(t, userIDs[o.UserID], "order references unknown user")
		require.Len(t, o.Items, 1)
		item := o.Items[0]
		assert.True(t, productIDs[item.ProductRef], "item references unknown product")
		assert.Positive(t, item.Quantity)
		assert.InDelta(t, float64(item.Quantity)*item.UnitPrice, o.TotalAmount, 0.01)
		assert.NoError(t, models.ValidateOrderItem(&item))
	}
}

func TestGenerateDatasetWithoutProductsYieldsNoOrders(t *testing.T) {
	ds := GenerateDataset(SyntheticOptions{Products: 0, Users: 3, Orders: 10, Seed: 1})
	assert.Empty(t, ds.Orders)
}
