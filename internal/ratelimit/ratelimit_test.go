package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/content-service/pkg/util/errorutil"
)

func TestMemoryLimiter_OnePerWindow(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(1, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	d, err := l.Allow(ctx, "1.1.1.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = l.Allow(ctx, "1.1.1.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.InDelta(t, time.Minute.Seconds(), d.RetryAfter.Seconds(), 1)

	d, err = l.Allow(ctx, "2.2.2.2")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	now = now.Add(30 * time.Second)
	d, _ = l.Allow(ctx, "1.1.1.1")
	assert.False(t, d.Allowed)

	now = now.Add(31 * time.Second)
	d, _ = l.Allow(ctx, "1.1.1.1")
	assert.True(t, d.Allowed)
}

func newLimitedApp(l Limiter) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		},
	})
	app.Post("/contact", Middleware(l, ClientIP(1), zap.NewNop()), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusCreated)
	})
	return app
}

func TestMiddleware_PerClient(t *testing.T) {
	app := newLimitedApp(NewMemoryLimiter(1, time.Minute))

	send := func(ip string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.Header.Set("X-Forwarded-For", ip)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	assert.Equal(t, http.StatusCreated, send("10.0.0.1").StatusCode)

	limited := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.StatusCode)
	assert.NotEmpty(t, limited.Header.Get("Retry-After"))

	assert.Equal(t, http.StatusCreated, send("10.0.0.2").StatusCode)
}

func TestMiddleware_FailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	defer client.Close()

	app := newLimitedApp(NewRedisLimiter(client, "test:", 1, time.Minute))
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/contact", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name      string
		hops      int
		forwarded string
		want      string
	}{
		{name: "no proxy ignores header", hops: 0, forwarded: "9.9.9.9", want: "0.0.0.0"},
		{name: "one hop takes rightmost", hops: 1, forwarded: "9.9.9.9, 203.0.113.7", want: "203.0.113.7"},
		{name: "two hops", hops: 2, forwarded: "9.9.9.9, 203.0.113.7, 10.0.0.1", want: "203.0.113.7"},
		{name: "fewer entries than hops", hops: 3, forwarded: "203.0.113.7", want: "203.0.113.7"},
		{name: "missing header", hops: 1, want: "0.0.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				got = ClientIP(tt.hops)(c)
				return nil
			})
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			_, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
