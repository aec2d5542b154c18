package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kingtech/dboptima/internal/auth"
)

// contextKey is an unexported type for context keys in this package to
// avoid collisions with keys defined elsewhere.
type contextKey int

const claimsKey contextKey = 0

// ClaimsFromContext retrieves the verified token claims injected by
// JWTMiddleware. It returns (nil, false) for unauthenticated requests.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}

// actorFromContext returns the authenticated user's email, or "anonymous"
// when the request carries no verified claims.
func actorFromContext(ctx context.Context) string {
	if c, ok := ClaimsFromContext(ctx); ok && c.Email != "" {
		return c.Email
	}
	return "anonymous"
}

// JWTMiddleware enforces HS256 bearer-token authentication using issuer.
// On success the verified claims are stored in the request context; on
// failure the response is HTTP 401 with a JSON error body and the next
// handler is never called. A nil issuer disables validation, which tests
// covering only request parsing rely on.
func JWTMiddleware(issuer *auth.Issuer, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if issuer == nil {
				next.ServeHTTP(w, r)
				return
			}

			raw := r.Header.Get("Authorization")
			if !strings.HasPrefix(raw, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			token := strings.TrimPrefix(raw, "Bearer ")

			claims, err := issuer.Verify(token)
			if err != nil {
				logger.Warn("jwt: authentication failed",
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("error", err.Error()),
				)
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
