package middleware

import (
	"net/http"
	"time"

	"regionview/pkg/metrics"
)

// RouteFunc maps a request to a bounded route label.
type RouteFunc func(r *http.Request) string

func RequestMetrics(collector *metrics.Collector, route RouteFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapped, r)

			label := r.URL.Path
			if route != nil {
				label = route(r)
			}
			collector.ObserveHTTP(r.Method, label, wrapped.statusCode, time.Since(start))
		})
	}
}
