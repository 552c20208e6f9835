// internal/store/store.go
package store

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable means the backing store could not be reached. Callers get
// it wrapped; no retry is attempted at this layer.
var ErrUnavailable = errors.New("store unavailable")

// Store is the contract every storage backend must satisfy: field-map
// hashes, sets, one sorted set, lists, plain string keys with TTL, key
// scanning, and batched writes. Missing keys read as empty results, never
// as errors.
type Store interface {
	// Hash primitives. HGetAllMulti fetches many hashes in one round trip,
	// preserving key order; missing keys yield empty maps.
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	HGet(ctx context.Context, key, field string) (string, error)

	// Set primitives.
	SMembers(ctx context.Context, key string) ([]string, error)
	SCard(ctx context.Context, key string) (int64, error)
	SIsMember(ctx context.Context, key, member string) (bool, error)

	// Sorted-set read (descending by score).
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// List reads.
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	LLen(ctx context.Context, key string) (int64, error)

	// Plain string keys, used by the detail cache.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error

	// ScanKeys enumerates keys matching a glob pattern.
	ScanKeys(ctx context.Context, pattern string) ([]string, error)

	// FlushAll removes every key in the database.
	FlushAll(ctx context.Context) error

	Ping(ctx context.Context) error

	// Batch returns a write batch applied as a single round trip. Batches
	// are not transactions: a partial failure leaves whatever committed.
	Batch() Batch
}

// Batch queues mutations and applies them in one round trip via Exec.
type Batch interface {
	HSet(key string, fields map[string]string)
	HIncrBy(key, field string, delta int64)
	SAdd(key string, members ...string)
	SRem(key string, members ...string)
	ZAdd(key string, score float64, member string)
	ZRem(key string, members ...string)
	LPush(key string, values ...string)
	RPush(key string, values ...string)
	LRem(key string, count int64, value string)
	Del(keys ...string)

	Exec(ctx context.Context) error
}
