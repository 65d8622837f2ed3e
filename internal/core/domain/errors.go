package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates the loaded settings cannot drive a run.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedType indicates an unknown catalog backend.
	ErrUnsupportedType = errors.New("unsupported type")

	// Discovery Errors.

	// ErrRateLimited indicates the search API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrInvalidQuery indicates the search API rejected a query as malformed.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrDiscoveryFailed indicates no ecosystem produced a fetch result.
	// Every ecosystem that issued queries failed on all of its topics.
	ErrDiscoveryFailed = errors.New("discovery failed for all ecosystems")

	// Sync Errors.

	// ErrIndexLoad indicates the persisted catalog could not be read in full.
	// No create/update decision is possible without it, so the run aborts.
	ErrIndexLoad = errors.New("catalog index load failed")

	// ErrCatalogWrite indicates a single create or update was rejected.
	ErrCatalogWrite = errors.New("catalog write failed")
)
