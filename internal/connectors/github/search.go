package github

import (
	"context"
	"errors"
	"fmt"
	"net"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
	"github.com/custodia-labs/ecotrack/internal/logger"
)

// MaxPerPage is the largest page size the search API accepts.
const MaxPerPage = 100

// Search pages through repository search results for one query.
//
// Pagination stops, in order of priority, when a page comes back empty,
// when MaxResults repositories have been accumulated, or when the pages
// requested so far cover the total count reported by the API.
//
// A rate limit signal stops pagination and returns what was accumulated
// with SearchRateLimited. A rejected query returns no repositories with
// SearchInvalidQuery. A request timeout returns what was accumulated with
// SearchTruncated. Every other failure is returned as an error.
func (c *Client) Search(ctx context.Context, query domain.SearchQuery) (domain.SearchResult, error) {
	result := domain.SearchResult{Status: domain.SearchComplete}
	if query.MaxResults <= 0 {
		return result, nil
	}

	perPage := min(MaxPerPage, query.MaxResults)
	opts := &gh.SearchOptions{
		Sort:        query.Sort,
		Order:       "desc",
		ListOptions: gh.ListOptions{PerPage: perPage},
	}
	fetchedAt := c.now().UTC()

	for page := 1; ; page++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("rate limit wait: %w", err)
		}

		opts.Page = page
		logger.Debug("search %q page %d (per_page=%d)", query.Query, page, perPage)

		res, resp, err := c.gh.Search.Repositories(ctx, query.Query, opts)
		c.updateRateLimitFromResponse(resp)
		result.Pages++

		if err != nil {
			return c.searchFailed(ctx, query, result, err)
		}

		items := res.Repositories
		if len(items) == 0 {
			break
		}

		for _, item := range items {
			if len(result.Repositories) >= query.MaxResults {
				break
			}
			if item.GetFullName() == "" {
				logger.Debug("search %q: skipping hit without full name", query.Query)
				continue
			}
			result.Repositories = append(result.Repositories, c.toRepository(item, query, fetchedAt))
		}

		if len(result.Repositories) >= query.MaxResults {
			break
		}
		if page*perPage >= res.GetTotal() {
			break
		}
	}

	return result, nil
}

// searchFailed turns a failed page request into the search outcome.
func (c *Client) searchFailed(
	ctx context.Context, query domain.SearchQuery, result domain.SearchResult, err error,
) (domain.SearchResult, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}

	wrapped := c.wrapError(err, "search repositories")

	switch {
	case IsRateLimited(wrapped):
		logger.Warn("Rate limit exceeded, stopping search %q after %d results", query.Query, len(result.Repositories))
		result.Status = domain.SearchRateLimited
		result.Warning = wrapped
		return result, nil

	case IsInvalidQuery(wrapped):
		logger.Warn("Search validation failed for %q: %v", query.Query, wrapped)
		result.Repositories = nil
		result.Status = domain.SearchInvalidQuery
		result.Warning = wrapped
		return result, nil

	case isTimeout(err):
		logger.Warn("Search %q timed out, keeping %d results", query.Query, len(result.Repositories))
		result.Status = domain.SearchTruncated
		result.Warning = err
		return result, nil
	}

	return result, wrapped
}

// isTimeout reports whether err is a per-request timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
