package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestGinMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry := prometheus.NewRegistry()
	m := newHTTPMetrics(registry, Config{ServiceName: "fbrinvoice", Environment: "test"})

	r := gin.New()
	r.Use(GinMiddleware(m))
	r.GET("/api/v1/invoices/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/v1/invoices/a", "/api/v1/invoices/b", "/metrics"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues("/api/v1/invoices/:id", "GET", "404"))
	if got != 2 {
		t.Fatalf("expected 2 requests, got %v", got)
	}
	if n := testutil.CollectAndCount(m.requests); n != 1 {
		t.Fatalf("expected a single series, got %d", n)
	}
	if v := testutil.ToFloat64(m.inflight); v != 0 {
		t.Fatalf("expected no in-flight requests, got %v", v)
	}
}

func TestNewHTTPMetricsReusesRegisteredCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := newHTTPMetrics(registry, Config{})
	second := newHTTPMetrics(registry, Config{})

	first.requests.WithLabelValues("/health", "GET", "200").Inc()

	if got := testutil.ToFloat64(second.requests.WithLabelValues("/health", "GET", "200")); got != 1 {
		t.Fatalf("expected shared collector, got %v", got)
	}
}
