package driving

import (
	"context"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
)

// RunOptions controls one tracker run.
type RunOptions struct {
	// DryRun decides create/update/skip without writing to the catalog.
	DryRun bool

	// TopN is how many of the highest ranked repositories the report keeps.
	TopN int
}

// Tracker runs the end-to-end fetch and sync pipeline.
type Tracker interface {
	// Run checks quota, fetches all ecosystems and syncs the result.
	Run(ctx context.Context, opts RunOptions) (domain.RunReport, error)
}
