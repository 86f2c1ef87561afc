package middleware

import (
	"context"
	"net/http"

	"github.com/arcosplaya/concierge/internal/services/session"
	"github.com/arcosplaya/concierge/pkg/httpext"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	sessionIDKey contextKey = "sessionID"
)

// WithSession makes sure every request runs inside a visitor session,
// starting one when the cookie is missing or no longer valid.
func WithSession(sessionService *session.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := sessionService.EnsureSession(w, r)
			if err != nil {
				log.Error().
					Err(err).
					Str("path", r.URL.Path).
					Msg("Failed to establish visitor session")
				httpext.JsonError(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			ctx := WithSessionID(r.Context(), claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// GetSessionID returns the visitor session of the request, or "" outside WithSession.
func GetSessionID(r *http.Request) string {
	if id, ok := r.Context().Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}
