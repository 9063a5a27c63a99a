package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_BudgetCollectors(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncSnapshotCache(true)
	m.IncSnapshotCache(false)
	m.IncSnapshotCache(false)
	m.AddResolvedBills(3)
	m.AddResolvedBills(0)
	m.ObserveRecompute(2 * time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.snapshotCache.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.snapshotCache.WithLabelValues("miss")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.resolvedBills))
	assert.Equal(t, 1, testutil.CollectAndCount(m.recomputeLatency))
}

func TestMetrics_InstrumentAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(prometheus.NewRegistry())

	engine := gin.New()
	engine.Use(m.Instrument())
	engine.GET("/bills/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	for _, path := range []string{"/bills/1", "/bills/2", "/nowhere"} {
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/bills/:id", "GET", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("unmatched", "GET", "404")))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "vibe_budget_http_requests_total"))
}
