// Package metrics exposes Prometheus collectors for the API and the budget engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vibe-budget/backend/internal/application/adapter"
)

const namespace = "vibe_budget"

// Metrics implements adapter.BudgetMetrics and instruments HTTP handlers.
type Metrics struct {
	gatherer prometheus.Gatherer

	recomputeLatency prometheus.Histogram
	snapshotCache    *prometheus.CounterVec
	resolvedBills    prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		recomputeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_recompute_seconds",
			Help:      "Time spent resolving bills and aggregating a snapshot",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}),
		snapshotCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_cache_total",
			Help:      "Snapshot cache lookups by result",
		}, []string{"result"}),
		resolvedBills: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_auto_resolved_total",
			Help:      "Bills flipped to paid because their due day passed",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	reg.MustRegister(
		m.recomputeLatency,
		m.snapshotCache,
		m.resolvedBills,
		m.httpRequests,
		m.httpLatency,
	)
	return m
}

// ObserveRecompute records one snapshot derivation.
func (m *Metrics) ObserveRecompute(duration time.Duration) {
	m.recomputeLatency.Observe(duration.Seconds())
}

// IncSnapshotCache counts a cache lookup.
func (m *Metrics) IncSnapshotCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.snapshotCache.WithLabelValues(result).Inc()
}

// AddResolvedBills counts bills that auto-transitioned to paid.
func (m *Metrics) AddResolvedBills(count int) {
	if count > 0 {
		m.resolvedBills.Add(float64(count))
	}
}

// Instrument returns a gin middleware recording request counts and latency.
// Unmatched routes share the "unmatched" label.
func (m *Metrics) Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.httpRequests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpLatency.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

var _ adapter.BudgetMetrics = (*Metrics)(nil)
