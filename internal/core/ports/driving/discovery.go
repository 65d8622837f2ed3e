package driving

import (
	"context"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
)

// DiscoveryService finds repositories for the configured ecosystems.
type DiscoveryService interface {
	// Aggregate searches every topic of one ecosystem and merges the hits.
	Aggregate(ctx context.Context, spec domain.EcosystemSpec, maxResults int) domain.AggregateResult

	// SearchKeywords runs the keyword cross-topic pass.
	SearchKeywords(ctx context.Context, spec domain.KeywordSpec, maxResults int) domain.AggregateResult

	// FetchAll runs every ecosystem and the keyword pass, then merges
	// the results into one globally deduplicated ranking.
	FetchAll(ctx context.Context) (domain.DiscoveryResult, error)
}
