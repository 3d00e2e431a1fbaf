package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/UnityEssentials/go-upmtools/internal/token"
)

// TokenValidator implements token.Validator for GitHub tokens
type TokenValidator struct {
	baseURL string
}

// NewTokenValidator creates a new GitHub token validator
func NewTokenValidator() *TokenValidator {
	return &TokenValidator{
		baseURL: apiBaseURL,
	}
}

// SetBaseURL overrides the API root for tests.
func (v *TokenValidator) SetBaseURL(baseURL string) {
	v.baseURL = baseURL
}

// Validate checks that a token is non-expired and accepted by the API.
// On success the token's scope and expiry metadata are refreshed from the
// response headers.
func (v *TokenValidator) Validate(ctx context.Context, t *token.Token) error {
	if t.Value == "" {
		return token.ErrTokenInvalid
	}

	if token.IsExpired(*t) {
		return token.ErrTokenExpired
	}

	if err := v.verifyToken(ctx, t); err != nil {
		return fmt.Errorf("token verification failed: %w", err)
	}

	return nil
}

// verifyToken makes a test API call to verify the token and refresh its metadata
func (v *TokenValidator) verifyToken(ctx context.Context, t *token.Token) error {
	req, err := http.NewRequestWithContext(ctx, "GET", v.baseURL+"/user", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "token "+t.Value)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errorResp struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errorResp); err != nil {
			return fmt.Errorf("invalid token: status %d", resp.StatusCode)
		}
		return fmt.Errorf("invalid token: %s", errorResp.Message)
	}

	if scopes := resp.Header.Get("X-OAuth-Scopes"); scopes != "" {
		t.Scope = scopes
	}

	// GitHub returns time in format "2025-03-04 02:13:04 UTC"
	if expStr := resp.Header.Get("GitHub-Authentication-Token-Expiration"); expStr != "" {
		expTime, err := time.Parse("2006-01-02 15:04:05 MST", expStr)
		if err == nil {
			t.ExpiresAt = expTime
		}
	}

	return nil
}
