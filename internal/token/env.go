package token

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// EnvPrefix is the prefix used for all token environment variables
	EnvPrefix = "UPM_TOKEN_"
)

// EnvStorage implements Storage using environment variables.
// Tokens are stored as JSON-encoded strings in environment variables with the
// UPM_TOKEN_ prefix, which works without any system dependency in CI,
// containers and headless editors alike.
//
// Example:
//
//	export UPM_TOKEN_GITHUB='{"Value":"ghp_abc..."}'
type EnvStorage struct{}

// NewEnvStorage creates a new environment variable-based token storage
func NewEnvStorage() *EnvStorage {
	return &EnvStorage{}
}

// Store saves a token with the given key as an environment variable.
// The token is stored as a JSON string to preserve metadata.
func (e *EnvStorage) Store(ctx context.Context, key string, token Token) error {
	if !IsValid(token) {
		return ErrTokenInvalid
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	envKey := e.FormatEnvKey(key)
	if err := os.Setenv(envKey, string(data)); err != nil {
		return fmt.Errorf("failed to set environment variable: %w", err)
	}

	return nil
}

// Retrieve gets a token by its key from environment variables
func (e *EnvStorage) Retrieve(ctx context.Context, key string) (Token, error) {
	envKey := e.FormatEnvKey(key)
	data := os.Getenv(envKey)
	if data == "" {
		return Token{}, ErrTokenNotFound
	}

	var token Token
	if err := json.Unmarshal([]byte(data), &token); err != nil {
		// Allow a bare token string so users can export the raw value
		// without wrapping it in JSON.
		if !strings.HasPrefix(strings.TrimSpace(data), "{") {
			return Token{Value: data, CreatedAt: time.Now()}, nil
		}
		return Token{}, fmt.Errorf("failed to unmarshal token: %w", err)
	}

	if !IsValid(token) {
		return Token{}, ErrTokenInvalid
	}

	if IsExpired(token) {
		return Token{}, ErrTokenExpired
	}

	return token, nil
}

// Delete removes a token by unsetting its environment variable
func (e *EnvStorage) Delete(ctx context.Context, key string) error {
	envKey := e.FormatEnvKey(key)
	if err := os.Unsetenv(envKey); err != nil {
		return fmt.Errorf("failed to unset environment variable: %w", err)
	}
	return nil
}

// FormatEnvKey converts a token key into an environment variable name.
// This is exported to allow users to predict and verify variable names.
func (e *EnvStorage) FormatEnvKey(key string) string {
	sanitized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, strings.ToUpper(key))

	return EnvPrefix + sanitized
}

// Close implements Storage.Close
func (e *EnvStorage) Close(ctx context.Context) error {
	return nil
}
