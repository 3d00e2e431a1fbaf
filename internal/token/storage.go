// Package token provides credential management for GitHub operations.
//
// Storage Strategy
//
// The package implements two primary token storage mechanisms:
//
// 1. Environment Variables (Primary Production Storage):
//   - Recommended for headless, CI and Docker environments
//   - Uses UPM_TOKEN_* prefixed environment variables
//   - No system dependencies or user interaction required
//
// 2. Memory Storage (Testing/Ephemeral Use):
//   - Suitable for testing and short-lived operations
//   - No persistence between program restarts
//
// Environment Variable Usage:
//
//	export UPM_TOKEN_GITHUB='{"Value":"ghp_abc..."}'
//
// System keychain integration was considered but intentionally not implemented
// to keep the tool usable in headless and containerized environments.
package token

import (
	"context"
	"errors"
	"time"
)

// KeyGitHub is the storage key under which the GitHub credential lives.
// "Change token" flows delete this key before storing the replacement.
const KeyGitHub = "GITHUB"

// Common errors that may be returned by token operations
var (
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrTokenExpired       = errors.New("token has expired")
	ErrStorageUnavailable = errors.New("token storage is unavailable")
)

// Token represents an authentication credential with metadata.
// The value itself is opaque and must never be written to logs.
type Token struct {
	// Value is the actual token string
	Value string `json:"Value"`

	// ExpiresAt indicates when the token will expire.
	// Zero value means the token does not expire.
	ExpiresAt time.Time `json:"ExpiresAt"`

	// Scope defines the permissions granted to this token
	Scope string `json:"Scope"`

	// CreatedAt indicates when the token was created/stored
	CreatedAt time.Time `json:"CreatedAt"`
}

// NewToken creates a new token with validation
func NewToken(value string, expiresAt time.Time, scope string) (*Token, error) {
	if value == "" {
		return nil, errors.New("token value cannot be empty")
	}

	token := &Token{
		Value:     value,
		ExpiresAt: expiresAt,
		Scope:     scope,
		CreatedAt: time.Now(),
	}

	if !IsValid(*token) {
		return nil, ErrTokenInvalid
	}

	return token, nil
}

// Storage defines the interface for token storage implementations
type Storage interface {
	// Store saves a token with the given key.
	// If a token already exists for the key, it will be overwritten.
	Store(ctx context.Context, key string, token Token) error

	// Retrieve gets a token by its key.
	// Returns ErrTokenNotFound if the token doesn't exist.
	Retrieve(ctx context.Context, key string) (Token, error)

	// Delete removes a token by its key.
	// Returns nil if the token was successfully deleted or didn't exist.
	Delete(ctx context.Context, key string) error

	// Close performs any necessary cleanup
	Close(ctx context.Context) error
}

// Validator provides methods to validate tokens
type Validator interface {
	// Validate checks if a token is valid.
	// Returns nil if the token is valid, otherwise returns an error
	// explaining why the token is invalid.
	Validate(ctx context.Context, token *Token) error
}

// IsExpired checks if a token has expired
func IsExpired(token Token) bool {
	if token.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(token.ExpiresAt)
}

// IsValid performs basic validation of a token
func IsValid(token Token) bool {
	return token.Value != ""
}
