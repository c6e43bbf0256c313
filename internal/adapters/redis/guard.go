// Package redis holds Redis-backed adapters.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "goonj:idempotency:"
	DefaultTTL = 24 * time.Hour
)

// NewClient parses a redis:// URL and returns a client.
func NewClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return redis.NewClient(opt), nil
}

// IdempotencyGuard reserves submission keys with SET NX so that concurrent duplicates collapse
// onto the first submission. Reservations expire after ttl.
type IdempotencyGuard struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewIdempotencyGuard returns a guard over rdb. A non-positive ttl uses DefaultTTL.
func NewIdempotencyGuard(rdb redis.Cmdable, ttl time.Duration) *IdempotencyGuard {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &IdempotencyGuard{rdb: rdb, ttl: ttl}
}

func (g *IdempotencyGuard) Reserve(ctx context.Context, key string) (bool, error) {
	ok, err := g.rdb.SetNX(ctx, keyPrefix+key, time.Now().UTC().Format(time.RFC3339), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reserve idempotency key: %w", err)
	}
	return ok, nil
}

func (g *IdempotencyGuard) Release(ctx context.Context, key string) error {
	if err := g.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}
