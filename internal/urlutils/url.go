// Package urlutils provides utilities for handling GitHub repository URLs.
// It supports building and validating HTTPS clone URLs, including URLs with
// an embedded credential for token authentication.
package urlutils

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	// ErrInvalidURL indicates that the provided URL is not valid
	ErrInvalidURL = errors.New("invalid URL format")

	// ErrInvalidHost indicates that the host is not a valid GitHub instance
	ErrInvalidHost = errors.New("invalid GitHub host")

	// ErrInvalidPath indicates that the URL path is not a valid repository path
	ErrInvalidPath = errors.New("invalid repository path")

	// ErrEmptyToken indicates that an empty token was provided
	ErrEmptyToken = errors.New("empty token provided")

	// ErrNotHTTPS indicates that the URL does not use HTTPS protocol
	ErrNotHTTPS = errors.New("URL must use HTTPS protocol")

	ownerRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	repoRegex  = regexp.MustCompile(`^[a-zA-Z0-9_.-]{1,100}$`)
)

// CloneURL builds the HTTPS clone URL for a repository named owner/name.
func CloneURL(owner, name string) string {
	return fmt.Sprintf("https://github.com/%s/%s.git", owner, name)
}

// ParseHTTPSURL parses and validates a GitHub HTTPS URL.
// It accepts URLs in the following formats:
//   - https://github.com/owner/repo
//   - https://github.com/owner/repo.git
//
// The function validates the URL format, host, and repository path components.
func ParseHTTPSURL(rawURL string) (*url.URL, error) {
	if strings.HasPrefix(rawURL, "git@") {
		return nil, ErrNotHTTPS
	}
	if !strings.HasPrefix(rawURL, "https://") {
		return nil, ErrInvalidURL
	}

	// Remove .git suffix and sanitize URL
	rawURL = sanitizeURL(strings.TrimSuffix(rawURL, ".git"))

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if !isValidGitHubHost(parsedURL.Host) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHost, parsedURL.Host)
	}

	pathParts := strings.Split(strings.Trim(parsedURL.Path, "/"), "/")
	if len(pathParts) != 2 {
		return nil, fmt.Errorf("%w: URL must include owner and repository", ErrInvalidPath)
	}

	if !ownerRegex.MatchString(pathParts[0]) {
		return nil, fmt.Errorf("%w: invalid owner name format", ErrInvalidPath)
	}

	if !repoRegex.MatchString(pathParts[1]) {
		return nil, fmt.Errorf("%w: invalid repository name format", ErrInvalidPath)
	}

	return parsedURL, nil
}

// FormatTokenURL formats a GitHub URL with the provided token embedded as the
// user info component, per the hosting convention for token-authenticated
// clones. The original URL is not modified.
func FormatTokenURL(parsedURL *url.URL, token string) (*url.URL, error) {
	if parsedURL == nil {
		return nil, fmt.Errorf("%w: nil URL provided", ErrInvalidURL)
	}

	if token == "" {
		return nil, ErrEmptyToken
	}

	tokenURL := *parsedURL
	tokenURL.User = url.User(token)

	return &tokenURL, nil
}

// ValidateURL checks if the provided URL is a valid GitHub repository URL.
func ValidateURL(rawURL string) error {
	_, err := ParseHTTPSURL(rawURL)
	return err
}

// Redact strips any embedded credential from a URL string so it is safe to
// log or attach to an error message.
func Redact(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.User != nil {
		u.User = nil
		return u.String()
	}
	return rawURL
}

// isValidGitHubHost checks if the host is github.com or a GitHub Enterprise
// Cloud subdomain.
func isValidGitHubHost(host string) bool {
	if host == "github.com" {
		return true
	}
	return strings.HasSuffix(host, ".github.com")
}

// sanitizeURL removes any embedded credentials from the URL
func sanitizeURL(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		u.User = nil
		return u.String()
	}
	return rawURL
}
