// internal/repository/bulk_test.go
package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xingluo6/redmart/internal/models"
)

func TestBulkStoreWritesAllBatches(t *testing.T) {
	s, mr := newTestStore(t)
	loader := NewBulkLoader(s)
	ctx := context.Background()

	products := []models.Product{
		{ID: "p1", Name: "Mug", Category: "home goods", Price: 4.5, Stock: 100},
		{ID: "p2", Name: "Lamp", Category: "electronics", Price: 30, Stock: 20},
	}
	users := []models.User{
		{ID: "u1", Username: "alice", Email: "alice@example.com"},
	}
	orders := []models.Order{
		{
			ID: "o1", UserID: "u1", OrderDate: "2024-01-05T10:00:00", TotalAmount: 9,
			Status: models.OrderStatusPaid,
			Items: []models.OrderItem{
				{ProductRef: "p1", Description: "Mug", Quantity: 2, UnitPrice: 4.5},
			},
		},
	}

	require.NoError(t, loader.Store(ctx, products, users, orders, true))

	assert.True(t, isMember(t, mr, models.ProductAllIDsKey, "p1"))
	assert.True(t, isMember(t, mr, models.CategoryKey("electronics"), "p2"))
	assert.True(t, isMember(t, mr, models.UserAllIDsKey, "u1"))
	assert.True(t, isMember(t, mr, models.OrderAllIDsKey, "o1"))

	ledger, err := mr.List(models.ProductSalesKey("p1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"o1:0"}, ledger)

	history, err := mr.List(models.UserOrdersKey("u1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"o1"}, history)
}

func TestBulkStoreFlushClearsStaleKeys(t *testing.T) {
	s, mr := newTestStore(t)
	loader := NewBulkLoader(s)
	ctx := context.Background()

	stale := []models.Product{{ID: "old", Name: "Old", Category: "retired", Price: 1, Stock: 1}}
	require.NoError(t, loader.Store(ctx, stale, nil, nil, true))

	fresh := []models.Product{{ID: "new", Name: "New", Category: "current", Price: 2, Stock: 2}}
	require.NoError(t, loader.Store(ctx, fresh, nil, nil, true))

	assert.False(t, isMember(t, mr, models.ProductAllIDsKey, "old"))
	assert.False(t, mr.Exists(models.ProductKey("old")))
	assert.False(t, mr.Exists(models.CategoryKey("retired")))
	assert.True(t, isMember(t, mr, models.ProductAllIDsKey, "new"))
}

func TestBulkStoreWithoutFlushAppends(t *testing.T) {
	s, mr := newTestStore(t)
	loader := NewBulkLoader(s)
	ctx := context.Background()

	first := []models.Product{{ID: "p1", Name: "One", Category: "a", Price: 1, Stock: 1}}
	require.NoError(t, loader.Store(ctx, first, nil, nil, true))

	second := []models.Product{{ID: "p2", Name: "Two", Category: "b", Price: 2, Stock: 2}}
	require.NoError(t, loader.Store(ctx, second, nil, nil, false))

	assert.True(t, isMember(t, mr, models.ProductAllIDsKey, "p1"))
	assert.True(t, isMember(t, mr, models.ProductAllIDsKey, "p2"))
}

func TestFlushPrimitive(t *testing.T) {
	s, mr := newTestStore(t)
	loader := NewBulkLoader(s)
	ctx := context.Background()

	require.NoError(t, loader.Store(ctx, []models.Product{{ID: "p1", Name: "One", Category: "a", Price: 1, Stock: 1}}, nil, nil, false))
	require.NoError(t, loader.Flush(ctx))

	assert.False(t, mr.Exists(models.ProductKey("p1")))
	assert.False(t, mr.Exists(models.ProductAllIDsKey))
}
