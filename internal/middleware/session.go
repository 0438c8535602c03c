package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dearyou/dearyou/internal/auth"
	"github.com/dearyou/dearyou/internal/service"
)

// SessionConfig holds configuration for the session middleware.
type SessionConfig struct {
	Logger     *slog.Logger
	Auth       *service.AuthService
	CookieName string
}

// Session returns a middleware that resolves the caller's session, if any.
// It reads the session token from the cookie (or an Authorization: Bearer
// header for non-browser clients) and injects the resolved identity into
// the request context. Requests without a valid session proceed
// unauthenticated: anonymous posting and browsing are allowed, and the
// guarded routes are enforced by RequireUser.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractSessionToken(r, cfg.CookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := cfg.Auth.Resolve(r.Context(), token)
			if err != nil {
				// Unknown or expired token; treat as unauthenticated.
				cfg.Logger.Debug("session not resolved",
					slog.String("request_id", GetRequestID(r.Context())),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.ContextWithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractSessionToken pulls the session token from the request.
// The cookie takes precedence; a Bearer header is the fallback.
func extractSessionToken(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}
