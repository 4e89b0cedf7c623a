package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medicapp_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "medicapp_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	backendOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medicapp_backend_operations_total",
			Help: "Total number of backend operations by outcome",
		},
		[]string{"operation", "table", "status"},
	)

	backendOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "medicapp_backend_operation_duration_seconds",
			Help:    "Duration of backend operations in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		},
		[]string{"operation", "table"},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		backendOperationsTotal,
		backendOperationDuration,
	)
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordBackendOperation records one data access call.
func RecordBackendOperation(operation, table string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	backendOperationsTotal.WithLabelValues(operation, table, status).Inc()
	backendOperationDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// Handler serves the registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
