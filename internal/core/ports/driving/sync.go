package driving

import (
	"context"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
)

// CatalogSyncer reconciles discovered repositories with the catalog store.
type CatalogSyncer interface {
	// LoadIndex reads every persisted record into an identity index.
	LoadIndex(ctx context.Context) (domain.Index, error)

	// Sync loads the index once, then creates, updates or skips each
	// repository in order.
	Sync(ctx context.Context, repos []domain.Repository) (domain.SyncStats, error)

	// Plan is Sync without writes: it loads the index and counts the
	// decisions a Sync would apply.
	Plan(ctx context.Context, repos []domain.Repository) (domain.SyncStats, error)
}
