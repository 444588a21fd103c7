// Package github implements the RepositoryAPI port using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/gitexplorer/internal/domain/model"
	"github.com/ericfisherdev/gitexplorer/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RepositoryAPI = (*Client)(nil)

// Client implements the driven.RepositoryAPI port using the go-github library.
type Client struct {
	gh     *gh.Client
	logger *slog.Logger
}

// NewClient creates an unauthenticated GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github (GitHub REST API client)
//
// baseURL is normally https://api.github.com/; a GitHub Enterprise or proxy root
// also works. Call and rate-limit logs go to logger.
func NewClient(baseURL string, logger *slog.Logger) (*Client, error) {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	return NewClientWithHTTPClient(cacheTransport.Client(), baseURL, logger)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// Tests use it to point the client at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, logger *slog.Logger) (*Client, error) {
	client := gh.NewClient(httpClient)

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client, logger: logger}, nil
}

// GetRepository fetches metadata for a single repository.
func (c *Client) GetRepository(ctx context.Context, fullName string) (*model.RepositoryDetail, error) {
	owner, repo, err := splitRepo(fullName)
	if err != nil {
		return nil, err
	}

	r, resp, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("fetching repository %s: %w", fullName, err)
	}

	c.logRateLimit(resp, fullName, 1)

	detail := mapRepository(r)
	return &detail, nil
}

// ListIssues fetches the issue collection of a repository. It issues one request
// without query parameters and does not follow pagination links, so the result
// is whatever the API returns by default.
func (c *Client) ListIssues(ctx context.Context, fullName string) ([]model.Issue, error) {
	owner, repo, err := splitRepo(fullName)
	if err != nil {
		return nil, err
	}

	issues, resp, err := c.gh.Issues.ListByRepo(ctx, owner, repo, nil)
	if err != nil {
		return nil, fmt.Errorf("listing issues for %s: %w", fullName, err)
	}

	c.logRateLimit(resp, fullName+"/issues", len(issues))

	result := make([]model.Issue, 0, len(issues))
	for _, issue := range issues {
		result = append(result, mapIssue(issue))
	}

	return result, nil
}

// mapRepository converts a go-github Repository to a domain RepositoryDetail.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapRepository(r *gh.Repository) model.RepositoryDetail {
	return model.RepositoryDetail{
		RepositoryRecord: model.RepositoryRecord{
			FullName: r.GetFullName(),
			Owner: model.Owner{
				Login:     r.GetOwner().GetLogin(),
				AvatarURL: r.GetOwner().GetAvatarURL(),
			},
			Description: r.GetDescription(),
		},
		StargazersCount: r.GetStargazersCount(),
		ForksCount:      r.GetForksCount(),
		OpenIssuesCount: r.GetOpenIssuesCount(),
	}
}

// mapIssue converts a go-github Issue to a domain Issue.
func mapIssue(i *gh.Issue) model.Issue {
	return model.Issue{
		ID:      i.GetID(),
		Title:   i.GetTitle(),
		HTMLURL: i.GetHTMLURL(),
		User:    model.IssueAuthor{Login: i.GetUser().GetLogin()},
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func (c *Client) logRateLimit(resp *gh.Response, endpoint string, count int) {
	if resp == nil {
		return
	}

	c.logger.Debug("github api call",
		"endpoint", endpoint,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 10 {
		c.logger.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

// splitRepo splits a "owner/repo" string into its two components.
func splitRepo(fullName string) (string, string, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo name %q: expected owner/repo", fullName)
	}
	return parts[0], parts[1], nil
}
