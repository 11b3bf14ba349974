package observability

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequestLogger_RecordsRoutePattern(t *testing.T) {
	metrics, err := NewMetrics()
	require.NoError(t, err)

	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), metrics))
	app.Get("/api/team/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	_, err = app.Test(httptest.NewRequest("GET", "/api/team/abc", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requestCount.WithLabelValues("GET", "/api/team/:id", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.requestCount))
}

func TestMetrics_Counters(t *testing.T) {
	metrics, err := NewMetrics()
	require.NoError(t, err)

	metrics.RecordEmail("owner", nil)
	metrics.RecordEmail("owner", errors.New("smtp down"))
	metrics.RecordMediaDeletion("ok")
	metrics.RecordError("/api/blog", "GET", "NOT_FOUND")

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.emailsSent.WithLabelValues("owner", "sent")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.emailsSent.WithLabelValues("owner", "failed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.mediaDeletions.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.errorCount.WithLabelValues("GET", "/api/blog", "NOT_FOUND")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.RecordEmail("client", nil) })
}
