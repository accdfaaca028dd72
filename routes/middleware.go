package routes

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"biztime/logger"
)

const requestIDHeader = "X-Request-ID"

// withCORS sets CORS headers and answers preflights for routed paths.
// Any other OPTIONS request falls through to mux.
func withCORS(mux *http.ServeMux, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)

		// Handle preflight request
		if isPreflight(mux, r) {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isPreflight reports whether r is a CORS preflight for a method and path
// that mux routes somewhere other than the catch-all.
func isPreflight(mux *http.ServeMux, r *http.Request) bool {
	method := r.Header.Get("Access-Control-Request-Method")
	if r.Method != http.MethodOptions || r.Header.Get("Origin") == "" || method == "" {
		return false
	}
	target := r.Clone(r.Context())
	target.Method = method
	_, pattern := mux.Handler(target)
	return pattern != "" && pattern != catchAllPattern
}

// withRequestLog tags each request with an id and logs its outcome at debug level.
func withRequestLog(log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		log.Debug(r.Context(), "request",
			logger.String("request_id", id),
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", wrapped.status),
			logger.Any("duration", time.Since(start)),
		)
	})
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
