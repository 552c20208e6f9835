// internal/cache/cache_test.go
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xingluo6/redmart/internal/models"
	"github.com/xingluo6/redmart/internal/store"
)

func newTestCache(t *testing.T) (*ProductCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewProductCache(store.NewRedisStore(client), DefaultTTL), mr
}

func TestPutAndGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	fields := models.FieldMap{"product_id": "p1", "name": "lamp", "price": "19.5"}
	require.NoError(t, c.Put(ctx, "p1", fields))

	got, err := c.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, fields, got)
}

func TestGetMissReturnsNil(t *testing.T) {
	c, _ := newTestCache(t)

	got, err := c.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEntryExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "p1", models.FieldMap{"name": "lamp"}))

	mr.FastForward(DefaultTTL + time.Second)

	got, err := c.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInvalidateEvicts(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "p1", models.FieldMap{"name": "lamp"}))
	require.NoError(t, c.Invalidate(ctx, "p1"))

	got, err := c.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUndecodableEntryIsDropped(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	mr.Set(models.ProductCacheKey("p1"), "not json")

	got, err := c.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists(models.ProductCacheKey("p1")))
}
