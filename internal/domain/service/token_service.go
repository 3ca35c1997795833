package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by an access token.
// The registered claims hold the standard sub/iat/exp fields.
type Claims struct {
	UserID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating access tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a new signed access token for a given user.
	Issue(userID uuid.UUID) (string, error)

	// Validate checks the signature, structure and expiry of a token string
	// and returns its claims. Callers must treat any returned error as a
	// single undifferentiated authentication failure.
	Validate(tokenString string) (*Claims, error)

	// AccessTokenDuration returns the configured access token lifetime.
	AccessTokenDuration() time.Duration
}
