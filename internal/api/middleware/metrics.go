package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	catalogRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_refreshes_total",
			Help: "Total number of session catalog refreshes",
		},
		[]string{"status"},
	)

	adminOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_admin_operations_total",
			Help: "Total number of admin product operations",
		},
		[]string{"operation", "status"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_active_sessions",
			Help: "Number of live storefront sessions",
		},
	)
)

// PrometheusMiddleware collects request count and latency
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
	}
}

// RecordCatalogRefresh counts a session refresh
func RecordCatalogRefresh(success bool) {
	catalogRefreshes.WithLabelValues(statusLabel(success)).Inc()
}

// RecordAdminOperation counts an admin create/update/delete
func RecordAdminOperation(operation string, success bool) {
	adminOperations.WithLabelValues(operation, statusLabel(success)).Inc()
}

// SetActiveSessions reports the session registry size
func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
