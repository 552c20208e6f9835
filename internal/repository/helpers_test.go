// internal/repository/helpers_test.go
package repository

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/xingluo6/redmart/internal/cache"
	"github.com/xingluo6/redmart/internal/store"
)

func newTestStore(t *testing.T) (*store.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.NewRedisStore(client), mr
}

func newProductRepo(t *testing.T) (*ProductRepository, *miniredis.Miniredis) {
	t.Helper()
	s, mr := newTestStore(t)
	return NewProductRepository(s, cache.NewProductCache(s, time.Minute)), mr
}

func isMember(t *testing.T, mr *miniredis.Miniredis, key, member string) bool {
	t.Helper()
	ok, err := mr.SIsMember(key, member)
	if err != nil {
		return false
	}
	return ok
}
