// Package middleware provides HTTP middleware for the DearYou API.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// ctxKey is a private type for context keys to avoid collisions.
type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	traceIDKey   ctxKey = "trace_id"
)

// RequestIDHeader is the HTTP header for request ID.
const RequestIDHeader = "X-Request-ID"

// TraceIDHeader is the HTTP header for trace ID.
const TraceIDHeader = "X-Trace-ID"

// maxInboundIDLength caps client-supplied correlation IDs so they stay
// sane in logs.
const maxInboundIDLength = 64

// RequestID injects a unique request ID into each request.
// A client-supplied X-Request-ID is honored when present and reasonably
// sized; otherwise a new UUID is generated. The ID is echoed back on
// the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > maxInboundIDLength {
			requestID = uuid.New().String()
		}

		traceID := r.Header.Get(TraceIDHeader)
		if len(traceID) > maxInboundIDLength {
			traceID = ""
		}

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		if traceID != "" {
			ctx = context.WithValue(ctx, traceIDKey, traceID)
		}

		w.Header().Set(RequestIDHeader, requestID)
		if traceID != "" {
			w.Header().Set(TraceIDHeader, traceID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from context.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetTraceID retrieves the trace ID from context.
func GetTraceID(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey).(string); ok {
		return id
	}
	return ""
}
