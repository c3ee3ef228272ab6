package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/newsroomhq/newstag/internal/log"
)

// CorrelationIDHeader is the header carrying the correlation ID.
const CorrelationIDHeader = "X-Correlation-ID"

// CorrelationID returns middleware that propagates a correlation ID from
// the request header, generating one when absent, and echoes it on the
// response.
func CorrelationID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(CorrelationIDHeader)
			if id == "" {
				id = uuid.New().String()
			}

			ctx := log.WithCorrelationID(r.Context(), id)
			w.Header().Set(CorrelationIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCorrelationID extracts the correlation ID from a request context.
func GetCorrelationID(ctx context.Context) string {
	return log.CorrelationID(ctx)
}
