// internal/store/redis.go
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client. The caller owns the client's
// lifetime; no process-wide singleton is kept here.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Connect dials Redis and verifies the connection with a ping.
func Connect(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// wrapErr maps any transport-level failure to ErrUnavailable. redis.Nil is
// handled by the callers that can see it.
func wrapErr(err error) error {
	if err == nil || errors.Is(err, redis.Nil) {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (s *RedisStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	res, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, wrapErr(err)
	}
	return res, nil
}

func (s *RedisStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.HGetAll(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, wrapErr(err)
	}
	out := make([]map[string]string, len(keys))
	for i, cmd := range cmds {
		out[i] = cmd.Val()
	}
	return out, nil
}

func (s *RedisStore) HGet(ctx context.Context, key, field string) (string, error) {
	res, err := s.client.HGet(ctx, key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", wrapErr(err)
	}
	return res, nil
}

func (s *RedisStore) SMembers(ctx context.Context, key string) ([]string, error) {
	res, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, wrapErr(err)
	}
	return res, nil
}

func (s *RedisStore) SCard(ctx context.Context, key string) (int64, error) {
	res, err := s.client.SCard(ctx, key).Result()
	if err != nil {
		return 0, wrapErr(err)
	}
	return res, nil
}

func (s *RedisStore) SIsMember(ctx context.Context, key, member string) (bool, error) {
	res, err := s.client.SIsMember(ctx, key, member).Result()
	if err != nil {
		return false, wrapErr(err)
	}
	return res, nil
}

func (s *RedisStore) ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	res, err := s.client.ZRevRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, wrapErr(err)
	}
	return res, nil
}

func (s *RedisStore) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	res, err := s.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, wrapErr(err)
	}
	return res, nil
}

func (s *RedisStore) LLen(ctx context.Context, key string) (int64, error) {
	res, err := s.client.LLen(ctx, key).Result()
	if err != nil {
		return 0, wrapErr(err)
	}
	return res, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	res, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapErr(err)
	}
	return res, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return wrapErr(s.client.Set(ctx, key, value, ttl).Err())
}

func (s *RedisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return wrapErr(s.client.Del(ctx, keys...).Err())
}

func (s *RedisStore) ScanKeys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, wrapErr(err)
	}
	return keys, nil
}

func (s *RedisStore) FlushAll(ctx context.Context) error {
	return wrapErr(s.client.FlushDB(ctx).Err())
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return wrapErr(s.client.Ping(ctx).Err())
}

func (s *RedisStore) Batch() Batch {
	return &redisBatch{pipe: s.client.Pipeline()}
}

// redisBatch queues commands on a pipeline. The context is deferred to Exec
// because go-redis pipelines only touch the network on execution.
type redisBatch struct {
	pipe redis.Pipeliner
}

func (b *redisBatch) HSet(key string, fields map[string]string) {
	if len(fields) == 0 {
		return
	}
	args := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		args[k] = v
	}
	b.pipe.HSet(context.Background(), key, args)
}

func (b *redisBatch) HIncrBy(key, field string, delta int64) {
	b.pipe.HIncrBy(context.Background(), key, field, delta)
}

func (b *redisBatch) SAdd(key string, members ...string) {
	b.pipe.SAdd(context.Background(), key, strsToAny(members)...)
}

func (b *redisBatch) SRem(key string, members ...string) {
	b.pipe.SRem(context.Background(), key, strsToAny(members)...)
}

func (b *redisBatch) ZAdd(key string, score float64, member string) {
	b.pipe.ZAdd(context.Background(), key, redis.Z{Score: score, Member: member})
}

func (b *redisBatch) ZRem(key string, members ...string) {
	b.pipe.ZRem(context.Background(), key, strsToAny(members)...)
}

func (b *redisBatch) LPush(key string, values ...string) {
	b.pipe.LPush(context.Background(), key, strsToAny(values)...)
}

func (b *redisBatch) RPush(key string, values ...string) {
	b.pipe.RPush(context.Background(), key, strsToAny(values)...)
}

func (b *redisBatch) LRem(key string, count int64, value string) {
	b.pipe.LRem(context.Background(), key, count, value)
}

func (b *redisBatch) Del(keys ...string) {
	if len(keys) == 0 {
		return
	}
	b.pipe.Del(context.Background(), keys...)
}

func (b *redisBatch) Exec(ctx context.Context) error {
	_, err := b.pipe.Exec(ctx)
	return wrapErr(err)
}

func strsToAny(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
