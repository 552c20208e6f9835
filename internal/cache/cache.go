// internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xingluo6/redmart/internal/models"
	"github.com/xingluo6/redmart/internal/store"
)

const DefaultTTL = 60 * time.Second

// ProductCache memoizes single-product detail reads as JSON snapshots with a
// fixed expiry. Writes to a product must call Invalidate; expiry alone would
// let a stale snapshot survive for up to the TTL.
type ProductCache struct {
	store store.Store
	ttl   time.Duration
}

func NewProductCache(s store.Store, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ProductCache{store: s, ttl: ttl}
}

// Get returns the cached snapshot for id, or nil on a miss. A snapshot that
// fails to decode is treated as a miss and evicted.
func (c *ProductCache) Get(ctx context.Context, id string) (models.FieldMap, error) {
	raw, ok, err := c.store.Get(ctx, models.ProductCacheKey(id))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var fields models.FieldMap
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		logrus.WithField("product_id", id).Warn("Dropping undecodable cache entry")
		_ = c.store.Del(ctx, models.ProductCacheKey(id))
		return nil, nil
	}
	return fields, nil
}

// Put stores a snapshot with the configured expiry.
func (c *ProductCache) Put(ctx context.Context, id string, fields models.FieldMap) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, models.ProductCacheKey(id), string(raw), c.ttl)
}

// Invalidate evicts the snapshot for id. Every successful update or delete
// of a product must go through here.
func (c *ProductCache) Invalidate(ctx context.Context, id string) error {
	return c.store.Del(ctx, models.ProductCacheKey(id))
}
