// Package github wraps the handful of GitHub REST API calls the app makes on
// the user's behalf: list their repositories, fetch one repository by ID,
// and fetch a repository's raw README.
//
// Every call authenticates with the user's stored OAuth access token — the
// client itself is stateless and safe for concurrent use. Nothing is cached;
// repositories are read fresh on every request.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sakif/readme-studio/internal/apperror"
	"github.com/sakif/readme-studio/internal/model"
)

// DefaultBaseURL is the public GitHub REST API endpoint. Tests point the
// client at an httptest server instead.
const DefaultBaseURL = "https://api.github.com"

const (
	acceptJSON      = "application/vnd.github.v3+json"
	acceptRawReadme = "application/vnd.github.v3.raw"
)

// Client calls the GitHub REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client against the public GitHub API.
func NewClient(logger *slog.Logger) *Client {
	return NewClientWithBaseURL(DefaultBaseURL, logger)
}

// NewClientWithBaseURL creates a Client against a custom endpoint.
// Used by tests and would cover GitHub Enterprise installs.
func NewClientWithBaseURL(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// ListRepositories returns the authenticated user's repositories.
//
// GET /user/repos — whatever GitHub returns is what the caller gets,
// including an empty list. A non-success status becomes an Upstream error
// carrying that status, which the HTTP layer passes through.
func (c *Client) ListRepositories(ctx context.Context, token string) ([]model.Repository, error) {
	endpoint := c.baseURL + "/user/repos?per_page=100&sort=updated"

	resp, err := c.get(ctx, endpoint, token, acceptJSON)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("github: list repositories failed",
			slog.Int("status", resp.StatusCode),
		)
		return nil, apperror.Upstream(resp.StatusCode)
	}

	var repos []model.Repository
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("github: decoding repository list: %w", err)
	}

	return repos, nil
}

// GetRepository fetches one repository by its numeric GitHub ID.
//
// GET /repositories/{id} — the ID is treated as an opaque string (it arrives
// that way in the request body) and path-escaped. A non-success status, 404
// included, becomes an Upstream error with that status; the caller decides
// what to do with it.
func (c *Client) GetRepository(ctx context.Context, token, repoID string) (*model.Repository, error) {
	endpoint := c.baseURL + "/repositories/" + url.PathEscape(repoID)

	resp, err := c.get(ctx, endpoint, token, acceptJSON)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("github: repository lookup failed",
			slog.String("repoID", repoID),
			slog.Int("status", resp.StatusCode),
		)
		return nil, apperror.Upstream(resp.StatusCode)
	}

	var repo model.Repository
	if err := json.NewDecoder(resp.Body).Decode(&repo); err != nil {
		return nil, fmt.Errorf("github: decoding repository %s: %w", repoID, err)
	}

	return &repo, nil
}

// GetReadme fetches the raw README content for a repository.
//
// GET /repos/{owner}/{name}/readme with the raw media type, so the body is
// the README text itself, not a JSON envelope.
//
// TOLERANCE POLICY:
// Any non-success status — the common case being 404 for a repository with
// no README — means "no existing README" and returns ("", false, nil).
// Generation proceeds without it. Only a transport-level failure (the call
// itself didn't happen) is an error. This asymmetry with GetRepository is
// deliberate: a missing README degrades gracefully, a missing repository
// aborts the request.
func (c *Client) GetReadme(ctx context.Context, token, fullName string) (string, bool, error) {
	endpoint := c.baseURL + "/repos/" + fullName + "/readme"

	resp, err := c.get(ctx, endpoint, token, acceptRawReadme)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Info("github: no existing readme",
			slog.String("repo", fullName),
			slog.Int("status", resp.StatusCode),
		)
		return "", false, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, fmt.Errorf("github: reading readme for %s: %w", fullName, err)
	}

	return string(body), true, nil
}

// get issues a bearer-authenticated GET. Transport failures come back as
// wrapped errors, never as Upstream — an Upstream error always carries a
// real status code from GitHub.
func (c *Client) get(ctx context.Context, endpoint, token, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("github: building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: calling %s: %w", endpoint, err)
	}
	return resp, nil
}
