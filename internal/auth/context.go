package auth

import (
	"context"

	"github.com/dearyou/dearyou/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// sessionContextKey is the context key for storing the resolved Session.
	sessionContextKey contextKey = "session"
)

// ContextWithSession adds a resolved Session to the context.
func ContextWithSession(ctx context.Context, sess *model.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// SessionFromContext retrieves the Session from the context.
// Returns nil for unauthenticated requests.
func SessionFromContext(ctx context.Context) *model.Session {
	sess, ok := ctx.Value(sessionContextKey).(*model.Session)
	if !ok {
		return nil
	}
	return sess
}

// UserIDFromContext is a convenience function to get the user ID from context.
// Returns empty string if not authenticated.
func UserIDFromContext(ctx context.Context) string {
	sess := SessionFromContext(ctx)
	if sess == nil {
		return ""
	}
	return sess.UserID
}
