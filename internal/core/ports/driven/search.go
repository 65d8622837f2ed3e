package driven

import (
	"context"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
)

// RepositorySearcher runs bounded searches against a repository search API.
type RepositorySearcher interface {
	// Search pages through results until the query's MaxResults is reached
	// or the API runs out of matches.
	//
	// Rate limiting and query rejection are not errors: they are reported
	// through SearchResult.Status with whatever was accumulated so far.
	// Any other failure is returned as an error.
	Search(ctx context.Context, query domain.SearchQuery) (domain.SearchResult, error)

	// Quota reports the remaining search budget. It is informational only.
	Quota(ctx context.Context) (domain.Quota, error)
}
