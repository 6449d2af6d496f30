package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/arjun-dc/blog-platform/backend/internal/apperr"
	"github.com/arjun-dc/blog-platform/backend/internal/auth"
	"github.com/arjun-dc/blog-platform/backend/internal/httpx"
)

type ctxKey int

const identityKey ctxKey = iota

// Identity is the authenticated caller extracted from a bearer token.
type Identity struct {
	UserID   string
	Username string
}

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireAuth verifies the Authorization bearer token and injects the
// caller's identity into the request context.
func RequireAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				httpx.WriteError(w, apperr.Unauthorized("Missing bearer token"))
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				httpx.WriteError(w, err)
				return
			}

			ident := Identity{UserID: claims.Subject, Username: claims.Username}
			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerIdentity returns the identity injected by RequireAuth.
func CallerIdentity(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey).(Identity)
	return ident, ok
}
