package identity

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// SystemActor is recorded when no authenticated caller is present,
// e.g. scheduled jobs or unauthenticated deployments.
const SystemActor = "system"

// FromContext returns the acting user recorded in the JWT claims.
// Identity here is attribution, not authorization: absence of a token
// falls back to SystemActor instead of failing.
func FromContext(ctx context.Context) string {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return SystemActor
	}
	return FromToken(token, claims)
}

// FromToken resolves the actor from a verified token, preferring the
// standard subject claim over the legacy user_id claim.
func FromToken(token jwt.Token, claims map[string]interface{}) string {
	if token != nil && token.Subject() != "" {
		return token.Subject()
	}
	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		return userID
	}
	return SystemActor
}
