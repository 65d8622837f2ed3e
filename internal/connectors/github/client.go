package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
	"github.com/custodia-labs/ecotrack/internal/core/ports/driven"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Ensure Client implements the interface.
var _ driven.RepositorySearcher = (*Client)(nil)

// Client wraps the go-github client for repository search.
type Client struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
	categories  domain.CategoryTable
	now         func() time.Time
}

// NewClient creates a GitHub search client authenticated with a static token.
// Without a token requests are sent unauthenticated.
func NewClient(cfg Config) (*Client, error) {
	httpClient := &http.Client{}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.Token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = cfg.timeout()

	return NewClientWithHTTPClient(httpClient, cfg)
}

// NewClientWithHTTPClient creates a GitHub client with a custom http.Client.
// The caller owns authentication and timeouts on httpClient.
func NewClientWithHTTPClient(httpClient *http.Client, cfg Config) (*Client, error) {
	client := gh.NewClient(httpClient)

	if cfg.BaseURL != "" {
		base, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("%w: github base url: %w", domain.ErrInvalidConfig, err)
		}
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		client.BaseURL = base
	}

	categories := cfg.Categories
	if categories == nil {
		categories = domain.CategoryTable{}
	}

	return &Client{
		gh:          client,
		rateLimiter: NewRateLimiter(cfg.SearchDelay),
		categories:  categories,
		now:         time.Now,
	}, nil
}

// GitHub returns the underlying go-github client.
func (c *Client) GitHub() *gh.Client {
	return c.gh
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// Quota returns the remaining budget of the search resource.
func (c *Client) Quota(ctx context.Context) (domain.Quota, error) {
	limits, resp, err := c.gh.RateLimit.Get(ctx)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return domain.Quota{}, c.wrapError(err, "get rate limit")
	}

	search := limits.GetSearch()
	if search == nil {
		return domain.Quota{}, errors.New("github: rate limit response has no search resource")
	}

	return domain.Quota{
		Remaining: search.Remaining,
		Limit:     search.Limit,
		ResetAt:   search.Reset.Time,
	}, nil
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
			Message:   rateLimitErr.Message,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		resetAt := c.rateLimiter.ResetTime()
		if abuseErr.RetryAfter != nil {
			resetAt = c.now().Add(*abuseErr.RetryAfter)
		}
		return &RateLimitError{
			ResetAt:   resetAt,
			Remaining: c.rateLimiter.Remaining(),
			Limit:     c.rateLimiter.Limit(),
			Message:   abuseErr.Message,
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		status := ghErr.Response.StatusCode
		switch status {
		case http.StatusForbidden, http.StatusTooManyRequests:
			return &RateLimitError{
				ResetAt:   c.rateLimiter.ResetTime(),
				Remaining: c.rateLimiter.Remaining(),
				Limit:     c.rateLimiter.Limit(),
				Message:   ghErr.Message,
			}
		case http.StatusUnprocessableEntity:
			query := ""
			if ghErr.Response.Request != nil {
				query = ghErr.Response.Request.URL.Query().Get("q")
			}
			return &InvalidQueryError{Query: query, Message: ghErr.Message}
		}

		apiErr := &APIError{StatusCode: status, Message: ghErr.Message}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
