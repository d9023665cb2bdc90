package middleware

import (
	"net/http"
	"time"
)

type httpObserver interface {
	ObserveHTTP(route, method string, code int, d time.Duration)
}

// Metrics records request count and latency per matched route pattern.
// It must sit outside the ServeMux so the pattern is known afterwards.
func Metrics(obs httpObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			obs.ObserveHTTP(route, r.Method, sw.status, time.Since(start))
		})
	}
}
