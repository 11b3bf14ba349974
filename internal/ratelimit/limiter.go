package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of a rate limit check.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter counts requests per key within a window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}
