package prometheus

import (
	"time"

	"github.com/Ivoox45/habitora-gateway/pkg/config"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Domain operation metrics
	RoomOperationsCounter     prometheus.CounterVec
	TenantOperationsCounter   prometheus.CounterVec
	ContractOperationsCounter prometheus.CounterVec

	// Local validation rejections by entity
	ValidationRejectionsCounter prometheus.CounterVec

	// Response cache metrics
	CacheHitsCounter          prometheus.CounterVec
	CacheMissesCounter        prometheus.CounterVec
	CacheInvalidationsCounter prometheus.Counter

	// Upstream call metrics
	UpstreamRequestDuration prometheus.HistogramVec
	UpstreamConflictCounter prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: prefix + "_auth_attempts_total",
		Help: "Total number of authentication attempts",
	})

	AuthSuccessCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: prefix + "_auth_success_total",
		Help: "Total number of successful authentications",
	})

	AuthErrorsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: prefix + "_auth_errors_total",
		Help: "Total number of failed authentications",
	})

	RoomOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_room_operations_total",
			Help: "Total number of room operations by type",
		},
		[]string{"operation"},
	)

	TenantOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_tenant_operations_total",
			Help: "Total number of tenant operations by type",
		},
		[]string{"operation"},
	)

	ContractOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_contract_operations_total",
			Help: "Total number of contract operations by type",
		},
		[]string{"operation"},
	)

	ValidationRejectionsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_validation_rejections_total",
			Help: "Total number of submissions rejected by local validation",
		},
		[]string{"entity"},
	)

	CacheHitsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_cache_hits_total",
			Help: "Total number of response cache hits by view kind",
		},
		[]string{"kind"},
	)

	CacheMissesCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_cache_misses_total",
			Help: "Total number of response cache misses by view kind",
		},
		[]string{"kind"},
	)

	CacheInvalidationsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: prefix + "_cache_invalidations_total",
		Help: "Total number of cache keys dropped after mutations",
	})

	UpstreamRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_upstream_request_duration_seconds",
			Help:    "Duration of calls to the system-of-record API in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "outcome"},
	)

	UpstreamConflictCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: prefix + "_upstream_conflicts_total",
		Help: "Total number of availability conflicts reported by the backend",
	})
}

// MetricsMiddleware records request totals and latency for every route
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := statusText(c.Response().Status)
			HttpRequestsTotal.WithLabelValues(c.Request().Method, c.Path(), status).Inc()
			HttpRequestDuration.WithLabelValues(c.Request().Method, c.Path(), status).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// RecordRoomOperation increments the room operation counter
func RecordRoomOperation(operation string) {
	RoomOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordTenantOperation increments the tenant operation counter
func RecordTenantOperation(operation string) {
	TenantOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordContractOperation increments the contract operation counter
func RecordContractOperation(operation string) {
	ContractOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordValidationRejection increments the validation rejection counter
func RecordValidationRejection(entity string) {
	ValidationRejectionsCounter.WithLabelValues(entity).Inc()
}

// TrackUpstreamOperation returns a function that records the duration of an
// upstream call when invoked with the start time
func TrackUpstreamOperation(operation, outcome string) func(time.Time) {
	return func(start time.Time) {
		UpstreamRequestDuration.WithLabelValues(operation, outcome).Observe(time.Since(start).Seconds())
	}
}

func statusText(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	}
	return "other"
}
