package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/UnityEssentials/go-upmtools/internal/token"
)

func TestTokenValidator(t *testing.T) {
	tests := []struct {
		name      string
		token     *token.Token
		mockAPI   func(w http.ResponseWriter, r *http.Request)
		wantError bool
	}{
		{
			name:  "valid token",
			token: &token.Token{Value: "valid_token"},
			mockAPI: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-OAuth-Scopes", "repo")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{"login": "testuser"}`))
			},
			wantError: false,
		},
		{
			name:  "rejected token",
			token: &token.Token{Value: "invalid_token"},
			mockAPI: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"message": "Bad credentials"}`))
			},
			wantError: true,
		},
		{
			name: "expired token never hits the API",
			token: &token.Token{
				Value:     "expired_token",
				ExpiresAt: time.Now().Add(-24 * time.Hour),
			},
			mockAPI: func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("API should not be called for expired token")
			},
			wantError: true,
		},
		{
			name:      "empty token",
			token:     &token.Token{},
			mockAPI:   func(w http.ResponseWriter, r *http.Request) {},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.mockAPI))
			defer server.Close()

			validator := NewTokenValidator()
			validator.SetBaseURL(server.URL)

			err := validator.Validate(context.Background(), tt.token)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTokenValidatorRefreshesScope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-OAuth-Scopes", "repo, workflow")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"login": "testuser"}`))
	}))
	defer server.Close()

	validator := NewTokenValidator()
	validator.SetBaseURL(server.URL)

	tok := &token.Token{Value: "tok"}
	err := validator.Validate(context.Background(), tok)
	assert.NoError(t, err)
	assert.Equal(t, "repo, workflow", tok.Scope)
}
