// internal/repository/bulk.go
package repository

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/xingluo6/redmart/internal/models"
	"github.com/xingluo6/redmart/internal/store"
)

// BulkLoader performs the full-database replace used by the ingestion
// pipelines. Each entity type is written as one batched phase.
type BulkLoader struct {
	store store.Store
}

func NewBulkLoader(s store.Store) *BulkLoader {
	return &BulkLoader{store: s}
}

// Store loads the three record batches. With flush set, every key is cleared
// first so no stale index entry from a previous run survives.
func (l *BulkLoader) Store(ctx context.Context, products []models.Product, users []models.User, orders []models.Order, flush bool) error {
	if flush {
		if err := l.store.FlushAll(ctx); err != nil {
			return err
		}
	}

	b := l.store.Batch()
	for i := range products {
		p := &products[i]
		b.HSet(models.ProductKey(p.ID), p.Fields())
		b.SAdd(models.ProductAllIDsKey, p.ID)
		b.SAdd(models.CategoryKey(p.Category), p.ID)
		b.ZAdd(models.ProductPricesKey, p.Price, p.ID)
	}
	if err := b.Exec(ctx); err != nil {
		return err
	}

	b = l.store.Batch()
	for i := range users {
		u := &users[i]
		b.HSet(models.UserKey(u.ID), u.Fields())
		b.SAdd(models.UserAllIDsKey, u.ID)
	}
	if err := b.Exec(ctx); err != nil {
		return err
	}

	b = l.store.Batch()
	for i := range orders {
		o := &orders[i]
		b.HSet(models.OrderKey(o.ID), o.Fields())
		b.SAdd(models.OrderAllIDsKey, o.ID)
		for j := range o.Items {
			item := &o.Items[j]
			itemID := itemRef(o.ID, j)
			b.HSet(models.OrderItemKey(o.ID, j), item.Fields())
			b.RPush(models.OrderItemsKey(o.ID), itemID)
			b.LPush(models.ProductSalesKey(item.ProductRef), itemID)
		}
		if o.UserID != "" {
			b.LPush(models.UserOrdersKey(o.UserID), o.ID)
		}
	}
	if err := b.Exec(ctx); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"products": len(products),
		"users":    len(users),
		"orders":   len(orders),
		"flush":    flush,
	}).Info("Bulk load complete")
	return nil
}

// Flush clears the whole database.
func (l *BulkLoader) Flush(ctx context.Context) error {
	return l.store.FlushAll(ctx)
}
