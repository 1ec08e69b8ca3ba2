// Package metrics tracks per-request outcome metrics for the collector.
package metrics

import (
	"strconv"
	"sync/atomic"
	"time"

	"beaconhq/beacon/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// HitMetrics tracks request outcomes for the collector.
//
// Metrics:
//   - <ns>_<sub>_hits_success_total: requests whose final status was 200 or 302
//   - <ns>_<sub>_hits_failure_total: every other request
//   - <ns>_<sub>_requests_total: per decision and status code
//   - <ns>_<sub>_request_duration_seconds: duration histogram per decision
//
// Alongside the Prometheus series the struct keeps exact atomic totals,
// because registered counters cannot be read back precisely and both the
// stats flusher and tests need exact numbers.
type HitMetrics struct {
	registry *prometheus.Registry

	successTotal    prometheus.Counter
	failureTotal    prometheus.Counter
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	success atomic.Int64
	failure atomic.Int64
}

// NewHitMetrics creates and registers hit metrics with the provided
// registry. If registry is nil a fresh one is created; callers that
// expose an exposition endpoint should pass their own and serve it via
// Handler. Construction is the only registration point, so each test can
// inject its own registry and counters never collide.
func NewHitMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *HitMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	buckets := cfg.RequestDurationBuckets
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}

	m := &HitMetrics{
		registry: registry,

		successTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "hits_success_total",
			Help:      "Requests whose final status code was 200 or 302",
		}),

		failureTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "hits_failure_total",
			Help:      "Requests with any other final status code, including the 404 fallback",
		}),

		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "requests_total",
			Help:      "Requests partitioned by routing decision and final status code",
		}, []string{"decision", "status"}),

		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "request_duration_seconds",
			Help:      "Request handling duration by routing decision",
			Buckets:   buckets,
		}, []string{"decision"}),
	}

	registry.MustRegister(
		m.successTotal,
		m.failureTotal,
		m.requestsTotal,
		m.requestDuration,
	)

	return m
}

// Record classifies the final status code, increments exactly one outcome
// counter plus the per-decision series, observes the duration, and
// returns the classification. It must be called exactly once per request,
// after the final status is known. Increments are atomic; concurrent
// callers never lose updates.
func (m *HitMetrics) Record(decision string, status int, duration time.Duration) Outcome {
	outcome := Classify(status)

	switch outcome {
	case OutcomeSuccess:
		m.successTotal.Inc()
		m.success.Add(1)
	default:
		m.failureTotal.Inc()
		m.failure.Add(1)
	}

	m.requestsTotal.WithLabelValues(decision, strconv.Itoa(status)).Inc()
	if duration > 0 {
		m.requestDuration.WithLabelValues(decision).Observe(duration.Seconds())
	}

	return outcome
}

// Totals returns the exact success and failure counts recorded so far.
func (m *HitMetrics) Totals() (success, failure int64) {
	return m.success.Load(), m.failure.Load()
}
