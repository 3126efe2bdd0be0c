// Package ratelimit implements the per-client attempt counter gating
// sensitive actions (registration). The counter lives in redis so the limit
// holds across server instances.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dkowalski/quoteshelf/internal/common"
)

// Counter is the slice of the redis client the limiter uses.
// *redis.Client satisfies it; tests supply a fake.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd
}

// Limiter counts attempts per key inside a fixed window and rejects
// everything over the limit.
type Limiter struct {
	counter Counter
	limit   int64
	window  time.Duration
}

func New(counter Counter, limit int64, window time.Duration) *Limiter {
	return &Limiter{counter: counter, limit: limit, window: window}
}

// RegisterKey derives the counter key for a registration attempt from the
// client network identity.
func RegisterKey(clientIP string) string {
	return "register:" + clientIP
}

// Allow records one attempt for key and returns the new count.
// INCR is a single atomic step, so two concurrent attempts cannot both
// observe a count under the threshold. The window TTL is attached when the
// key is first created and is never extended afterwards.
//
// A counter store outage is reported as common.ErrStorage; an attempt over
// the limit as common.ErrRateLimited.
func (l *Limiter) Allow(ctx context.Context, key string) (int64, error) {
	count, err := l.counter.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: rate limit counter: %v", common.ErrStorage, err)
	}

	if count == 1 {
		if err := l.counter.Expire(ctx, key, l.window).Err(); err != nil {
			return 0, fmt.Errorf("%w: rate limit counter: %v", common.ErrStorage, err)
		}
	}

	if count > l.limit {
		return count, common.ErrRateLimited
	}

	return count, nil
}

// NewClient opens the redis connection used for the counter store.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}
