package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mfauzanap/event-registration/pkg/logger"
)

const traceHeader = "X-Trace-ID"

// RequestID accepts an inbound trace id or mints one, stamps it on the
// response, and scopes the request logger to it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		w.Header().Set(traceHeader, traceID)

		ctx := logger.With(r.Context(), "trace_id", traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
