package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts requests in fixed windows shared by every instance.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

// NewRedisLimiter allows limit requests per window for each key.
func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{client: client, prefix: prefix, limit: int64(limit), window: window}
}

// Allow increments the counter for key and starts the window on first use.
func (r *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	redisKey := r.prefix + key

	count, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("incr %s: %w", redisKey, err)
	}
	if count == 1 {
		if err := r.client.PExpire(ctx, redisKey, r.window).Err(); err != nil {
			return Decision{}, fmt.Errorf("pexpire %s: %w", redisKey, err)
		}
	}
	if count <= r.limit {
		return Decision{Allowed: true}, nil
	}

	ttl, err := r.client.PTTL(ctx, redisKey).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("pttl %s: %w", redisKey, err)
	}
	if ttl < 0 {
		// key lost its expiry; restart the window
		_ = r.client.PExpire(ctx, redisKey, r.window).Err()
		ttl = r.window
	}
	return Decision{Allowed: false, RetryAfter: ttl}, nil
}
