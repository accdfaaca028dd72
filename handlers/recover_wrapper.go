package handlers

import (
	"net/http"
	"runtime"

	"biztime/logger"
)

// RecoverWrapper turns a panic in next into a logged 500 JSON error.
// http.ErrAbortHandler is re-raised for the server to handle, and nothing is
// written once next has already sent its headers.
func RecoverWrapper(log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tw := &headerTracker{ResponseWriter: w}
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			stack := make([]byte, 8*1024)
			stack = stack[:runtime.Stack(stack, false)]
			log.Error(r.Context(), "panic recovered",
				logger.Any("panic", rec),
				logger.String("path", r.URL.Path),
				logger.String("stack", string(stack)),
			)
			if !tw.wroteHeader {
				WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		next.ServeHTTP(tw, r)
	})
}

type headerTracker struct {
	http.ResponseWriter
	wroteHeader bool
}

func (t *headerTracker) WriteHeader(code int) {
	t.wroteHeader = true
	t.ResponseWriter.WriteHeader(code)
}

func (t *headerTracker) Write(b []byte) (int, error) {
	t.wroteHeader = true
	return t.ResponseWriter.Write(b)
}
