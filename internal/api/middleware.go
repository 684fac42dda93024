package api

import (
	"net/http"
	"time"

	"carrier-simulator/internal/common/errors"
	"carrier-simulator/internal/common/metrics"
)

// requireAPIKey enforces the X-API-Key shared secret on every carrier route.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-API-Key")
		if key == "" {
			writeError(w, s.log, errors.NewUnauthorizedError("Missing API key. Include X-API-Key header."))
			return
		}
		if key != s.apiKey {
			writeError(w, s.log, errors.NewUnauthorizedError("Invalid API key"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// instrument records request duration per route and emits an access log line.
func (s *Server) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		elapsed := time.Since(start)

		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		s.obs.RecordOperationDuration(r.Context(), route, elapsed)
		s.log.Debug("request handled", map[string]interface{}{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": elapsed.String(),
		})
	})
}
