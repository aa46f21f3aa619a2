package auth

import (
	"errors"
	"net/http"

	"github.com/lagoon-stays/lagoon/internal/platform/httpx"
	"github.com/lagoon-stays/lagoon/internal/rbac"
)

// Middleware authenticates bearer credentials and stores the derived
// principal in the request context.
type Middleware struct {
	Tokens *TokenService
}

// RequireAuth rejects requests without a verifiable bearer credential.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := m.Tokens.VerifyCredential(r.Header.Get("Authorization"))
		if err != nil {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthenticated", authFailureDetail(err))
			return
		}
		ctx := rbac.ContextWithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func authFailureDetail(err error) string {
	switch {
	case errors.Is(err, ErrTokenMalformed):
		return "no token provided"
	case errors.Is(err, ErrTokenExpired):
		return "token has expired"
	case errors.Is(err, ErrIncompleteClaims):
		return "invalid token structure"
	default:
		return "invalid token"
	}
}
