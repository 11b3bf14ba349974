package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const gcThreshold = 1000

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps one token bucket per key in process memory.
type MemoryLimiter struct {
	limit   int
	window  time.Duration
	now     func() time.Time
	mu      sync.Mutex
	clients map[string]*clientLimiter
}

// NewMemoryLimiter allows limit requests per window for each key.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		clients: map[string]*clientLimiter{},
	}
}

// Allow consumes a token for key when one is available.
func (m *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := m.now()
	limiter := m.getLimiter(key, now)

	res := limiter.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return Decision{Allowed: false, RetryAfter: delay}, nil
	}
	return Decision{Allowed: true}, nil
}

func (m *MemoryLimiter) getLimiter(key string, now time.Time) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if client, exists := m.clients[key]; exists {
		client.lastSeen = now
		return client.limiter
	}

	created := &clientLimiter{
		limiter:  rate.NewLimiter(rate.Every(m.window/time.Duration(m.limit)), m.limit),
		lastSeen: now,
	}
	m.clients[key] = created
	m.gcLocked(now)
	return created.limiter
}

func (m *MemoryLimiter) gcLocked(now time.Time) {
	if len(m.clients) < gcThreshold {
		return
	}
	cutoff := now.Add(-m.window)
	for key, client := range m.clients {
		if client.lastSeen.Before(cutoff) {
			delete(m.clients, key)
		}
	}
}
