package api

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

// Identity extraction from the JWT verified by jwtauth. The token is the
// identity-provider boundary: its claims carry the stable user id (sub),
// display name, email and role.

type contextKey string

const identityKey contextKey = "identity"

// IdentityMiddleware extracts the authenticated identity from the verified
// token and stores it on the request context. Mount after jwtauth.Verifier
// and jwtauth.Authenticator.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			respondError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}

		identity := simplecms.Identity{
			ID:    stringClaim(claims, "sub"),
			Name:  stringClaim(claims, "name"),
			Email: stringClaim(claims, "email"),
			Role:  stringClaim(claims, "role"),
		}
		if identity.ID == "" {
			respondError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext returns the identity placed by IdentityMiddleware. The
// zero Identity is returned when no authentication ran for this request.
func IdentityFromContext(ctx context.Context) simplecms.Identity {
	identity, _ := ctx.Value(identityKey).(simplecms.Identity)
	return identity
}

func stringClaim(claims map[string]interface{}, key string) string {
	v, _ := claims[key].(string)
	return v
}
