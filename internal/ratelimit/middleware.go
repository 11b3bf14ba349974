package ratelimit

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/content-service/pkg/util/errorutil"
)

// KeyFunc derives the rate limit key from a request.
type KeyFunc func(c *fiber.Ctx) string

// ClientIP keys requests by client address. With hops > 0 the service sits
// behind that many trusted proxies and the X-Forwarded-For entry hops places
// from the right is used; entries further left are client supplied and
// ignored. With hops == 0 the socket address is used.
func ClientIP(hops int) KeyFunc {
	return func(c *fiber.Ctx) string {
		if hops <= 0 {
			return c.IP()
		}
		ips := c.IPs()
		if len(ips) == 0 {
			return c.IP()
		}
		idx := len(ips) - hops
		if idx < 0 {
			idx = 0
		}
		if ip := strings.TrimSpace(ips[idx]); ip != "" {
			return ip
		}
		return c.IP()
	}
}

// Middleware rejects requests over the limit with 429 and Retry-After.
// Limiter failures let the request through.
func Middleware(limiter Limiter, key KeyFunc, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision, err := limiter.Allow(c.UserContext(), key(c))
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if !decision.Allowed {
			seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(seconds))
			return apperrors.NewTooManyRequests("too many requests, please try again later")
		}
		return c.Next()
	}
}
