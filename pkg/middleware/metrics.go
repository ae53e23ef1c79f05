package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/nsight-ai/nsight-engine/pkg/observability"
)

// Metrics returns middleware that records request counts and latencies.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			status := strconv.Itoa(wrapped.statusCode)
			observability.HTTPRequestsTotal.
				WithLabelValues(r.Method, r.URL.Path, status).Inc()
			observability.HTTPRequestDurationSeconds.
				WithLabelValues(r.Method, r.URL.Path, status).
				Observe(time.Since(start).Seconds())
		})
	}
}
