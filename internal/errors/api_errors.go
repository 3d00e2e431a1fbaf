package errors

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

// APIError represents a failure reported by the GitHub REST API
type APIError struct {
	Op      string // Operation that failed
	Status  int    // HTTP status code (0 when the request never completed)
	Message string // Error message from the API, if any
	Err     error  // Underlying error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError creates a new APIError without an HTTP status
func NewAPIError(op, message string, err error) *APIError {
	return &APIError{
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewAPIHTTPError creates a new APIError carrying an HTTP status
func NewAPIHTTPError(op string, status int, message string, err error) *APIError {
	return &APIError{
		Op:      op,
		Status:  status,
		Message: message,
		Err:     err,
	}
}

// IsAuthError reports whether the error is an HTTP rejection of the request.
// Any non-success status presumes the credential invalid: the stored token
// must be discarded by the caller. Only transport failures (Status 0) are
// outside this rule, since the credential was never evaluated.
func IsAuthError(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status != 0
	}
	return false
}

// IsNetworkError reports whether the error indicates a transport failure
// (timeout, refused connection, DNS) rather than an API rejection. Network
// failures are transient and the fetch may simply be retried.
func IsNetworkError(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		if ae.Status != 0 {
			return false
		}
		err = ae.Err
	}
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsRateLimited reports whether the error indicates the API rate limit was hit
func IsRateLimited(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status == http.StatusTooManyRequests
	}
	return false
}
