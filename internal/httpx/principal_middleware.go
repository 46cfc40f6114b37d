package httpx

import (
	"context"
	"net/http"

	"libraryapi/internal/entity"
)

// PrincipalResolver derives the request principal from the raw
// Authorization header value. (nil, nil) means anonymous.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, authHeader string) (*entity.User, error)
}

// PrincipalMiddleware resolves the principal before any handler runs.
// Anonymous requests pass through with no principal; a present but
// unverifiable credential fails here with the taxonomy error instead
// of surfacing later as an unhandled fault.
func PrincipalMiddleware(resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := resolver.ResolvePrincipal(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				JSONTaxonomyError(w, err)
				return
			}
			if principal != nil {
				r = r.WithContext(ContextWithPrincipal(r.Context(), principal))
			}
			next.ServeHTTP(w, r)
		})
	}
}
