// Package github implements repository search against the GitHub API.
//
// The Client satisfies [driven.RepositorySearcher]. One call to Search runs a
// single query to completion: it pages through /search/repositories sorted
// descending, converts each hit into a [domain.Repository] (deriving tool
// categories from topics), and stops as soon as the requested number of
// results is reached.
//
// # Authentication
//
// A personal access token is sent as a static bearer token. Authenticated
// clients get 30 search requests per minute.
//
// # Rate Limiting
//
// A token bucket allows one request per configured search delay. This is a
// fixed pace, not a reaction to quota headers. When the API reports the
// quota as exhausted (403 or 429), the search stops and returns the partial
// result with [domain.SearchRateLimited]; there is no retry.
//
// # Errors
//
// Query validation failures (422) yield an empty result with
// [domain.SearchInvalidQuery]. Other API failures are returned as
// [*APIError]; use IsNotFound, IsUnauthorized, IsRateLimited and
// IsInvalidQuery to classify errors.
package github
