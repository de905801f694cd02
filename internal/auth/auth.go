// Package auth gates requests behind Appwrite-issued session JWTs. Tokens are
// structurally prechecked locally, then verified by asking Appwrite who they
// belong to; this service issues and renews nothing itself.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/axp8948/prodify/internal/appwrite"
)

// ErrMissingToken is returned when the Authorization header is absent.
var ErrMissingToken = errors.New("missing bearer token")

// ErrInvalidToken wraps parsing/verification errors.
var ErrInvalidToken = errors.New("invalid bearer token")

// ErrTokenExpired is returned when a token's exp claim is already in the past.
var ErrTokenExpired = errors.New("bearer token expired")

// User is the verified identity behind a request.
type User struct {
	ID    string
	Name  string
	Email string
}

// Identity couples the verified user with the raw token, so downstream reads
// can be scoped to the same credential that authenticated the request.
type Identity struct {
	User  User
	Token string
}

// Verifier exchanges a bearer token for a verified identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*User, error)
}

// AppwriteVerifier verifies tokens by resolving them against the Appwrite
// account endpoint.
type AppwriteVerifier struct {
	client *appwrite.Client
}

// NewAppwriteVerifier constructs an AppwriteVerifier over a base client.
func NewAppwriteVerifier(client *appwrite.Client) *AppwriteVerifier {
	return &AppwriteVerifier{client: client}
}

// Verify prechecks the token's structure and expiry locally, then asks
// Appwrite for the account it belongs to. Malformed or expired tokens are
// rejected without a network round-trip.
func (v *AppwriteVerifier) Verify(ctx context.Context, token string) (*User, error) {
	if err := precheck(token, time.Now()); err != nil {
		return nil, err
	}

	account, err := v.client.WithJWT(token).GetAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return &User{ID: account.ID, Name: account.Name, Email: account.Email}, nil
}

// precheck parses the token without verifying its signature. Appwrite holds
// the signing key; locally we can only reject tokens that are malformed or
// carry an exp claim in the past.
func precheck(token string, now time.Time) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if exp != nil && exp.Before(now) {
		return ErrTokenExpired
	}
	return nil
}
