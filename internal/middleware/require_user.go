package middleware

import (
	"net/http"

	"github.com/dearyou/dearyou/internal/auth"
)

// RequireUser returns middleware that rejects unauthenticated requests.
// Must be applied after Session middleware. Guarded operations (reacting,
// editing, deleting, profile) can then rely on a resolved user identity
// being present in the context.
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth.SessionFromContext(r.Context()) == nil {
				writeUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeUnauthorized writes a 401 response.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Authentication required","code":"UNAUTHORIZED"}`))
}
