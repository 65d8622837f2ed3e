package driven

import (
	"context"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
)

// CatalogStore persists repository records.
// Identity is the "Full Name" property; stores do not deduplicate on it,
// the sync engine does.
type CatalogStore interface {
	// List returns one page of records. An empty cursor starts from the
	// beginning; the returned NextCursor continues while HasMore is true.
	List(ctx context.Context, cursor string) (domain.CatalogPage, error)

	// Create inserts a record and returns its store-assigned ID.
	Create(ctx context.Context, props domain.Properties) (string, error)

	// Update overwrites the given properties of an existing record.
	// Properties absent from props are left untouched.
	Update(ctx context.Context, id string, props domain.Properties) error
}
