package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors used across the service.
type Metrics struct {
	registry        *prometheus.Registry
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorCount      *prometheus.CounterVec
	mediaDeletions  *prometheus.CounterVec
	emailsSent      *prometheus.CounterVec
}

// NewMetrics registers collectors on a fresh registry.
func NewMetrics() (*Metrics, error) {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		errorCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_errors_total",
				Help: "Errors returned to clients by error code.",
			},
			[]string{"method", "path", "code"},
		),
		mediaDeletions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "media_deletions_total",
				Help: "External media deletions by outcome.",
			},
			[]string{"result"},
		),
		emailsSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "emails_sent_total",
				Help: "Outgoing emails by kind and outcome.",
			},
			[]string{"kind", "result"},
		),
	}

	for _, c := range []prometheus.Collector{m.requestCount, m.requestDuration, m.errorCount, m.mediaDeletions, m.emailsSent} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorCount.WithLabelValues(method, path, code).Inc()
}

// RecordMediaDeletion counts the outcome of an external asset deletion.
func (m *Metrics) RecordMediaDeletion(result string) {
	if m == nil {
		return
	}
	m.mediaDeletions.WithLabelValues(result).Inc()
}

// RecordEmail counts an email delivery attempt.
func (m *Metrics) RecordEmail(kind string, err error) {
	if m == nil {
		return
	}
	result := "sent"
	if err != nil {
		result = "failed"
	}
	m.emailsSent.WithLabelValues(kind, result).Inc()
}
