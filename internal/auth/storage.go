// Package auth talks to the session-token store of the main Quirzy
// application. This backend never issues tokens; it only looks them up
// and revokes every session of an account once that account is gone.
package auth

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("no such token")

// Storage is the storage for authentication tokens.
type Storage interface {
	// Get returns the token info for the given token.
	//
	// Error is implementation-defined except for ErrNotFound.
	// ErrNotFound is returned when the token is not found.
	Get(ctx context.Context, token string) (TokenInfo, error)

	// Create stores a new token and returns it. Used by fixtures and
	// tests; the production issuer lives in the main application.
	Create(ctx context.Context, info TokenInfo) (string, error)

	// Delete revokes the specified token.
	Delete(ctx context.Context, token string) error

	// DeleteByAccount revokes every token of the given account.
	DeleteByAccount(ctx context.Context, accountID int64) error
}

// TokenInfo is the information of a session token.
type TokenInfo struct {
	AccountID int64  `json:"account_id"` // the account the session belongs to
	Email     string `json:"email"`      // the account email at issue time
	Machine   string `json:"machine"`    // the User-Agent the session was issued to
}

var (
	ErrValidationPositiveAccountID = errors.New("account ID must be positive")
	ErrValidationRequireEmail      = errors.New("email is required")
)

func (t TokenInfo) Validate() error {
	if t.AccountID <= 0 {
		return ErrValidationPositiveAccountID
	}

	if t.Email == "" {
		return ErrValidationRequireEmail
	}

	return nil
}

// DefaultTokenExpire is the token lifetime in seconds.
const DefaultTokenExpire = 8 * 60 * 60 // 8 hr
