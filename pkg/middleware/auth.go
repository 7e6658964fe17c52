package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/market/pkg/auth"
	"github.com/shashiranjanraj/market/pkg/logger"
	"github.com/shashiranjanraj/market/pkg/metrics"
	"github.com/shashiranjanraj/market/pkg/response"
)

// IdentityResolver turns a bearer token into the identity it belongs to.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (auth.Identity, error)
}

// bearer extracts the token of an "Authorization: Bearer <token>" header.
func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

// Authenticate attaches the caller's identity to the request context when
// a valid bearer token is present. A missing or rejected token never ends
// the request here: failures are logged and counted, and the request
// continues unauthenticated. Use RequireAuth to protect routes.
func Authenticate(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearer(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				kind := auth.Kind(err)
				metrics.AuthFailures.WithLabelValues(kind).Inc()
				logger.WithCtx(r.Context()).Warn("bearer token rejected", "kind", kind, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAuth answers 401 unless Authenticate attached an identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.IdentityFromCtx(r.Context()); !ok {
			response.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
