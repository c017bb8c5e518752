package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"jari-backend/internal/common/logger"
	"jari-backend/internal/common/metrics"
)

// SecretHeader carries the shared webhook secret on every platform callback.
const SecretHeader = "X-Vapi-Secret"

type contextKeyRequestID struct{}

// RequestID assigns a correlation id to every request; handlers attach it to
// their log fields.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), contextKeyRequestID{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the correlation id from the context.
func GetRequestID(ctx context.Context) string {
	id, ok := ctx.Value(contextKeyRequestID{}).(string)
	if !ok {
		return ""
	}
	return id
}

// SecretAuth rejects any request whose secret header does not exactly equal
// the configured secret. Rejections answer 403 with an empty body so nothing
// internal leaks, and the request body is never parsed.
func SecretAuth(secret string, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			received := r.Header.Get(SecretHeader)
			if received != secret {
				log.Warn("webhook secret mismatch, access denied", map[string]interface{}{
					"requestId":     GetRequestID(r.Context()),
					"secretPresent": received != "",
				})
				metrics.WebhookRequests.WithLabelValues("unknown", "unauthorized").Inc()
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
