package rbac

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lagoon-stays/lagoon/internal/platform/httpx"
)

// Middleware wires route-level authorization guards for HTTP handlers.
// Ownership-scoped checks stay in the handlers; the middleware only covers
// permission and role gates that apply to a whole route.
type Middleware struct {
	Logger *slog.Logger
}

// Require ensures the authenticated principal holds the given permission.
func (m Middleware) Require(perm Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFromContext(r.Context())
			if err := Authorize(p, perm, nil); err != nil {
				m.deny(w, r, perm, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole ensures the principal's role is one of the listed roles.
func (m Middleware) RequireRole(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFromContext(r.Context())
			if p == nil {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthenticated", "authentication required")
				return
			}
			for _, role := range roles {
				if p.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			httpx.Problem(w, http.StatusForbidden, "Forbidden",
				fmt.Sprintf("elevated access required, current role: %s", p.Role))
		})
	}
}

func (m Middleware) deny(w http.ResponseWriter, r *http.Request, perm Permission, err error) {
	if err == ErrUnauthenticated {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthenticated", "authentication required")
		return
	}
	if m.Logger != nil {
		p := PrincipalFromContext(r.Context())
		m.Logger.Warn("permission denied",
			slog.String("path", r.URL.Path),
			slog.String("permission", string(perm)),
			slog.String("role", string(p.Role)))
	}
	httpx.Problem(w, http.StatusForbidden, "Forbidden",
		fmt.Sprintf("permission denied, required permission: %s", perm))
}
