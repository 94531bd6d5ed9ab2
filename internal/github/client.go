// Package github fetches public repository listings for developer profiles.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"devconnector/internal/models"
	"devconnector/internal/observability"
)

const apiBaseURL = "https://api.github.com"

// Repo is the subset of the GitHub repository payload exposed to clients.
type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Stars       int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
}

// Client calls the GitHub REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Tests point this at a local server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// NewClient returns a GitHub client. An empty token means unauthenticated
// requests, which GitHub rate-limits more aggressively.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    apiBaseURL,
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Repos returns the user's five most recently created public repositories.
func (c *Client) Repos(ctx context.Context, username string) ([]Repo, error) {
	ctx, span := observability.TraceUpstreamCall(ctx, "github", "list_repos")
	defer span.End()

	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc",
		c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "devconnector")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.GithubRequestsTotal.WithLabelValues("error").Inc()
		return nil, models.NewUpstreamError("GitHub request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		observability.GithubRequestsTotal.WithLabelValues("not_found").Inc()
		return nil, models.NewNotFoundError("GitHub profile", username)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observability.GithubRequestsTotal.WithLabelValues("error").Inc()
		return nil, models.NewUpstreamError("GitHub request failed",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.GithubRequestsTotal.WithLabelValues("error").Inc()
		return nil, models.NewUpstreamError("GitHub response read failed", err)
	}

	var repos []Repo
	if err := json.Unmarshal(body, &repos); err != nil {
		observability.GithubRequestsTotal.WithLabelValues("error").Inc()
		return nil, models.NewUpstreamError("GitHub response decode failed", err)
	}

	observability.GithubRequestsTotal.WithLabelValues("ok").Inc()
	return repos, nil
}
