package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationError(t *testing.T) {
	inner := fmt.Errorf("underlying failure")
	err := New("clone", inner)

	assert.Equal(t, "clone: underlying failure", err.Error())
	assert.Equal(t, inner, stderrors.Unwrap(err))
	assert.True(t, stderrors.Is(err, New("clone", nil)))
	assert.False(t, stderrors.Is(err, New("lfs-pull", nil)))
}

func TestAPIErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		auth    bool
		network bool
		limited bool
	}{
		{
			name: "unauthorized is an auth error",
			err:  NewAPIHTTPError("api-request", http.StatusUnauthorized, "Bad credentials", nil),
			auth: true,
		},
		{
			name: "forbidden is an auth error",
			err:  NewAPIHTTPError("api-request", http.StatusForbidden, "Forbidden", nil),
			auth: true,
		},
		{
			name:    "rate limited still presumes the credential invalid",
			err:     NewAPIHTTPError("api-request", http.StatusTooManyRequests, "rate limit exceeded", nil),
			auth:    true,
			limited: true,
		},
		{
			name: "server error presumes the credential invalid",
			err:  NewAPIHTTPError("api-request", http.StatusInternalServerError, "boom", nil),
			auth: true,
		},
		{
			name: "not found presumes the credential invalid",
			err:  NewAPIHTTPError("api-request", http.StatusNotFound, "Not Found", nil),
			auth: true,
		},
		{
			name:    "transport failure is a network error",
			err:     NewAPIError("api-request", "request failed", &url.Error{Op: "Get", URL: "https://api.github.com", Err: fmt.Errorf("connection refused")}),
			network: true,
		},
		{
			name: "plain error is nothing",
			err:  fmt.Errorf("some error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.auth, IsAuthError(tt.err))
			assert.Equal(t, tt.network, IsNetworkError(tt.err))
			assert.Equal(t, tt.limited, IsRateLimited(tt.err))
		})
	}
}

func TestAPIErrorFormat(t *testing.T) {
	withStatus := NewAPIHTTPError("list-repositories", 401, "Bad credentials", nil)
	assert.Equal(t, "list-repositories: Bad credentials (HTTP 401)", withStatus.Error())

	withoutStatus := NewAPIError("list-repositories", "request failed", nil)
	assert.Equal(t, "list-repositories: request failed", withoutStatus.Error())
}
