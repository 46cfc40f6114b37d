package httpx

import (
	"context"
	"net/http"

	"libraryapi/internal/entity"
)

type contextKey string

const (
	principalKey contextKey = "principal"
	requestIDKey contextKey = "requestID"
)

// PrincipalFrom retrieves the authenticated user from the request
// context, or nil for anonymous requests.
func PrincipalFrom(r *http.Request) *entity.User {
	if u, ok := r.Context().Value(principalKey).(*entity.User); ok {
		return u
	}
	return nil
}

// ContextWithPrincipal returns a new context carrying the principal.
func ContextWithPrincipal(ctx context.Context, u *entity.User) context.Context {
	return context.WithValue(ctx, principalKey, u)
}

// RequestIDFrom retrieves the request id from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithRequestID returns a new context carrying the request id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}
