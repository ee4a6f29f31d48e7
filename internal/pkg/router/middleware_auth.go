package router

import (
	"net/http"

	"github.com/blueseamans/mailanes/internal/pkg/jwt"
)

// Authenticator extracts the session claims of a request.
type Authenticator interface {
	Authenticate(r *http.Request) (jwt.Claims, error)
}

// middlewareAuthentication rejects requests without a valid session unless
// the route is public. Public routes still receive the claims when present.
func middlewareAuthentication(authn Authenticator, public map[string][]string) Middleware {
	publics := make(map[string]map[string]struct{}, len(public))
	for method, paths := range public {
		set := make(map[string]struct{}, len(paths))
		for _, p := range paths {
			set[p] = struct{}{}
		}
		publics[method] = set
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, isPublic := publics[r.Method][matchedRoutePath(r)]

			if authn == nil {
				if isPublic {
					next.ServeHTTP(w, r)
					return
				}
				writeJSON(w, errorResponse{Message: "Authentication required"}, http.StatusUnauthorized)
				return
			}

			claims, err := authn.Authenticate(r)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(jwt.SetAuth(r.Context(), claims)))
			case isPublic:
				next.ServeHTTP(w, r)
			default:
				writeJSON(w, errorResponse{Message: "Authentication required"}, http.StatusUnauthorized)
			}
		})
	}
}
