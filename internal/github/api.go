package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/UnityEssentials/go-upmtools/internal/catalog"
	"github.com/UnityEssentials/go-upmtools/internal/errors"
	"github.com/UnityEssentials/go-upmtools/internal/token"
)

const (
	apiBaseURL = "https://api.github.com"
	userAgent  = "go-upmtools/1.0"

	// repoPageSize is the per_page value sent to the list endpoint. Only the
	// first page is retrieved: catalogs beyond 100 repositories are truncated.
	// Documented limitation, not silently paginated.
	repoPageSize = 100
)

// UserInfo represents GitHub user information
type UserInfo struct {
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Client handles GitHub API operations
type Client struct {
	httpClient *http.Client
	token      string
	baseURL    string // Allow custom base URL for testing
}

// NewClient creates a new GitHub API client for the given credential.
func NewClient(t *token.Token) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		token:      t.Value,
		baseURL:    apiBaseURL,
	}
}

// SetBaseURL overrides the API root. Used by tests and GitHub Enterprise.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// ListRepositories fetches the authenticated user's repositories and returns
// their identifiers in document order. Duplicates in the payload are kept;
// elements without a usable full_name are skipped rather than treated as an
// error. Only the first page (up to 100 entries) is retrieved.
func (c *Client) ListRepositories(ctx context.Context) ([]catalog.Identifier, error) {
	url := fmt.Sprintf("%s/user/repos?per_page=%d", c.baseURL, repoPageSize)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, errors.NewAPIError("list-repositories", "failed to create request", err)
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload []struct {
		FullName string `json:"full_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewAPIError("list-repositories", "failed to decode response", err)
	}

	identifiers := make([]catalog.Identifier, 0, len(payload))
	for _, repo := range payload {
		if repo.FullName == "" {
			continue
		}
		id, err := catalog.ParseIdentifier(repo.FullName)
		if err != nil {
			continue
		}
		identifiers = append(identifiers, id)
	}

	return identifiers, nil
}

// GetUserInfo retrieves authenticated user information
func (c *Client) GetUserInfo(ctx context.Context) (*UserInfo, error) {
	url := fmt.Sprintf("%s/user", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, errors.NewAPIError("get-user", "failed to create request", err)
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var userInfo UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, errors.NewAPIError("get-user", "failed to decode user info", err)
	}

	return &userInfo, nil
}

// sendRequest sends an HTTP request with the necessary headers and maps
// transport and status failures onto the API error taxonomy.
func (c *Client) sendRequest(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewAPIError("api-request", "request failed", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		var errorResp struct {
			Message string `json:"message"`
		}
		message := http.StatusText(resp.StatusCode)
		if err := json.NewDecoder(resp.Body).Decode(&errorResp); err == nil && errorResp.Message != "" {
			message = errorResp.Message
		}
		return nil, errors.NewAPIHTTPError("api-request", resp.StatusCode, message, nil)
	}

	return resp, nil
}
