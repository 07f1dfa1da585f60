// Package identity adapts the external users service that owns OAuth login
// and session tokens. The storefront never stores credentials; it only turns
// a session token into a user ID.
package identity

import (
	"context"
	"errors"

	"shophub/internal/domain"
)

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrMissingCode    = errors.New("no authorization code provided")
)

// Provider is the narrow contract the API layer depends on
type Provider interface {
	// RedirectURL returns the OAuth consent URL the client should open
	RedirectURL(ctx context.Context) (string, error)
	// ExchangeCode trades an OAuth authorization code for a session token
	ExchangeCode(ctx context.Context, code string) (string, error)
	// Validate resolves a session token to its user.
	// Returns ErrInvalidSession for unknown, expired or revoked tokens.
	Validate(ctx context.Context, sessionToken string) (*domain.User, error)
	// Revoke ends the session. Revoking an unknown token is not an error.
	Revoke(ctx context.Context, sessionToken string) error
}
