package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mfauzanap/event-registration/pkg/logger"
)

// sensitiveHeaders are never written to logs.
var sensitiveHeaders = []string{
	"authorization",
	"cookie",
	"set-cookie",
	"x-api-key",
}

// LoggingMiddleware logs a start and completion line per request using the
// request-scoped logger, which already carries the trace id.
func LoggingMiddleware(_ *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lg := logger.From(r.Context())

			lg.Info("request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"headers", filterSensitiveHeaders(r.Header))

			ww := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			lg.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration_ms", time.Since(start).Milliseconds())
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.statusCode = code
	sw.ResponseWriter.WriteHeader(code)
}

func filterSensitiveHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		lower := strings.ToLower(name)
		redacted := false
		for _, s := range sensitiveHeaders {
			if lower == s {
				redacted = true
				break
			}
		}
		if redacted {
			out[name] = "[REDACTED]"
			continue
		}
		out[name] = strings.Join(values, ",")
	}
	return out
}
