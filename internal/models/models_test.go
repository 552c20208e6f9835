// internal/models/models_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductFieldsRoundTrip(t *testing.T) {
	p := &Product{
		ID:          "p1",
		Name:        "Lamp",
		Description: "A lamp",
		Category:    "home goods",
		Price:       49.9,
		Stock:       12,
		CreatedAt:   "2024-03-01T10:00:00Z",
	}

	got := ProductFromFields(p.Fields())
	assert.Equal(t, p, got)
}

func TestProductFromFieldsDefaults(t *testing.T) {
	p := ProductFromFields(FieldMap{"product_id": "p1", "name": "Lamp"})

	assert.Equal(t, 0.0, p.Price)
	assert.Equal(t, 0, p.Stock)
	assert.Empty(t, p.Category)
}

func TestValidateProductFields(t *testing.T) {
	assert.NoError(t, ValidateProductFields(FieldMap{"price": "10.5", "stock": "3"}))
	assert.NoError(t, ValidateProductFields(FieldMap{"name": "no numerics here"}))

	var validationErr *ValidationError
	err := ValidateProductFields(FieldMap{"price": "free"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "price", validationErr.Field)

	err = ValidateProductFields(FieldMap{"stock": "-1"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "stock", validationErr.Field)
}

func TestOrderItemTotalPriceIsDerived(t *testing.T) {
	item := &OrderItem{Quantity: 6, UnitPrice: 2.55}
	assert.InDelta(t, 15.3, item.TotalPrice(), 1e-9)

	// total_price never appears in the stored fields.
	_, ok := item.Fields()["total_price"]
	assert.False(t, ok)
}

func TestOrderItemKeyLayout(t *testing.T) {
	assert.Equal(t, "order_item:536365:0", OrderItemKey("536365", 0))
	assert.Equal(t, "product:p1:sales", ProductSalesKey("p1"))
	assert.Equal(t, "category:home goods:products", CategoryKey("home goods"))
	assert.Equal(t, "cache:product_details:p1", ProductCacheKey("p1"))
}
