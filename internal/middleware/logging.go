package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs every request with its method, path, status, caller,
// and duration.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if claims := GetClaims(r.Context()); claims != nil {
			attrs = append(attrs, "profile_id", claims.ProfileID)
		}

		if rec.status >= http.StatusInternalServerError {
			slog.Error("Request completed", attrs...)
		} else if rec.status >= http.StatusBadRequest {
			slog.Warn("Request completed", attrs...)
		} else {
			slog.Info("Request completed", attrs...)
		}
	})
}
