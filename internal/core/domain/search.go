package domain

import "time"

// SortForks orders search results by fork count.
const SortForks = "forks"

// MaxSearchResults is the most results the search API serves for one query.
// Pages beyond it are rejected as invalid.
const MaxSearchResults = 1000

// SearchQuery is one bounded search against the repository search API.
type SearchQuery struct {
	// Query is the raw search string, e.g. "topic:llm".
	Query string

	// Ecosystem is assigned to every repository in the result.
	Ecosystem Ecosystem

	// MatchedTopic labels the result with the topic that produced it.
	MatchedTopic string

	// Sort is the API sort key. Results are always ordered descending.
	Sort string

	// MaxResults bounds the accumulated result; pagination never over-fetches.
	MaxResults int
}

// SearchStatus describes how a search ended.
type SearchStatus int

const (
	// SearchComplete means pagination ended normally.
	SearchComplete SearchStatus = iota

	// SearchRateLimited means the API signalled quota exhaustion.
	// Repositories holds what was accumulated before the signal.
	SearchRateLimited

	// SearchInvalidQuery means the API rejected the query as malformed.
	// Repositories is empty.
	SearchInvalidQuery

	// SearchTruncated means a request timed out; results are partial.
	SearchTruncated
)

// String returns the string representation.
func (s SearchStatus) String() string {
	switch s {
	case SearchComplete:
		return "complete"
	case SearchRateLimited:
		return "rate_limited"
	case SearchInvalidQuery:
		return "invalid_query"
	case SearchTruncated:
		return "truncated"
	default:
		return "unknown"
	}
}

// IsPartial reports whether the search stopped before pagination finished.
func (s SearchStatus) IsPartial() bool {
	return s == SearchRateLimited || s == SearchTruncated
}

// SearchResult is the outcome of one SearchQuery.
type SearchResult struct {
	// Repositories are in API order.
	Repositories []Repository

	// Status tells complete results apart from partial or rejected ones.
	Status SearchStatus

	// Pages is the number of page requests issued.
	Pages int

	// Warning carries the signal behind a non-complete status.
	Warning error
}

// Quota reports the remaining budget of the search resource.
type Quota struct {
	Remaining int
	Limit     int
	ResetAt   time.Time
}

// TopicFailure records a query whose contribution is missing from a pass.
type TopicFailure struct {
	Ecosystem Ecosystem
	Topic     string
	Err       error
}

// AggregateResult is the outcome of aggregating one ecosystem or keyword pass.
type AggregateResult struct {
	// Ecosystem is the aggregated ecosystem.
	Ecosystem Ecosystem

	// Repositories are deduplicated and ranked by Forks descending.
	Repositories []Repository

	// Queries is the number of searches issued.
	Queries int

	// Failures lists queries that raised an error and were skipped.
	Failures []TopicFailure

	// Warnings lists queries that returned partial or rejected results.
	Warnings []TopicFailure
}

// Failed reports whether every issued query failed, so the pass produced
// no fetch result at all. A pass with no queries has not failed.
func (r AggregateResult) Failed() bool {
	return r.Queries > 0 && len(r.Failures) == r.Queries
}

// DiscoveryResult is the merged outcome of a full fetch pass.
type DiscoveryResult struct {
	// Repositories are globally deduplicated and ranked by Forks descending.
	Repositories []Repository

	// Ecosystems holds the per-ecosystem outcomes in configuration order,
	// followed by the keyword pass when it ran.
	Ecosystems []AggregateResult
}

// Failures returns every failed query across all passes.
func (r DiscoveryResult) Failures() []TopicFailure {
	var out []TopicFailure
	for _, eco := range r.Ecosystems {
		out = append(out, eco.Failures...)
	}
	return out
}
