package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Count of handled HTTP requests.",
		},
		[]string{"method", "pattern", "status"},
	)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "pattern"},
	)
)

// Metrics records request counts and latency, labeled by the ServeMux
// pattern that matched (so session ids do not blow up cardinality).
func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &loggingWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			pattern := r.Pattern
			if pattern == "" {
				pattern = "unmatched"
			}
			requestsTotal.WithLabelValues(
				r.Method, pattern, strconv.Itoa(wrapped.statusCode),
			).Inc()
			requestDuration.WithLabelValues(r.Method, pattern).
				Observe(time.Since(start).Seconds())
		})
	}
}
