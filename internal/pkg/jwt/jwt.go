// Package jwt verifies access tokens issued by the identity provider.
//
// This service never mints tokens of its own; it only checks provider
// signatures so authenticated endpoints can trust the claims.
package jwt

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSigningMethod is returned when the JWT signing method is not supported.
	ErrInvalidSigningMethod = errors.New("invalid JWT signing method")

	// ErrSigningKeyRequired is returned when no verification secret is configured.
	ErrSigningKeyRequired = errors.New("JWT verification secret is required")

	// ErrTokenExpired is returned when the JWT token has expired.
	ErrTokenExpired = errors.New("JWT token has expired")

	// ErrInvalidToken is returned when the token is malformed or fails validation.
	ErrInvalidToken = errors.New("invalid token")
)

// JWT defines the single operation the app needs: verify a provider token.
type JWT interface {
	// Verify parses and validates the token and returns claims.
	Verify(tokenStr string) (Claims, error)
}

type jwtContextKey struct{}

// Claims wraps the registered claims with the provider's custom payload.
type Claims struct {
	// RegisteredClaims holds the standard JWT claims; Subject is the user id.
	jwt.RegisteredClaims
	// Email is the authenticated user email.
	Email string `json:"email"`
	// Role is the provider-assigned role.
	Role string `json:"role"`
}

// GetAuth returns the JWT claims stored in the context, if any.
func GetAuth(ctx context.Context) *Claims {
	clm, ok := ctx.Value(jwtContextKey{}).(Claims)
	if !ok {
		return nil
	}

	return &clm
}

// SetAuth stores JWT claims in the context.
func SetAuth(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, jwtContextKey{}, clm)
}
