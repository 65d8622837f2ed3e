package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
	"github.com/custodia-labs/ecotrack/internal/core/ports/driven"
	"github.com/custodia-labs/ecotrack/internal/core/ports/driving"
	"github.com/custodia-labs/ecotrack/internal/logger"
)

// DefaultTopN is how many repositories a run report keeps.
const DefaultTopN = 10

// Ensure Tracker implements the interface.
var _ driving.Tracker = (*Tracker)(nil)

// Tracker runs quota check, discovery and sync in sequence.
type Tracker struct {
	searcher  driven.RepositorySearcher
	discovery driving.DiscoveryService
	syncer    driving.CatalogSyncer

	ecosystems int
	topics     int
	now        func() time.Time
}

// NewTracker creates a new tracker.
func NewTracker(
	searcher driven.RepositorySearcher,
	discovery driving.DiscoveryService,
	syncer driving.CatalogSyncer,
	settings domain.Settings,
) *Tracker {
	return &Tracker{
		searcher:   searcher,
		discovery:  discovery,
		syncer:     syncer,
		ecosystems: len(settings.Ecosystems),
		topics:     settings.TopicCount(),
		now:        time.Now,
	}
}

// Run executes one full pass. The quota check is advisory: its failure is
// logged and the run continues. Discovery fails the run only when every
// pass failed, and sync fails it only when the catalog index cannot be
// loaded. Partial failures are reported in the returned RunReport.
func (t *Tracker) Run(ctx context.Context, opts driving.RunOptions) (domain.RunReport, error) {
	start := t.now()
	report := domain.RunReport{
		Ecosystems: t.ecosystems,
		Topics:     t.topics,
		DryRun:     opts.DryRun,
	}

	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	logger.Info("Tracking %d ecosystems, %d topics", t.ecosystems, t.topics)

	quota, err := t.searcher.Quota(ctx)
	if err != nil {
		logger.Warn("Could not check search quota: %v", err)
	} else {
		report.Quota = &quota
		logger.Info("Search quota: %d/%d remaining", quota.Remaining, quota.Limit)
	}

	discovered, err := t.discovery.FetchAll(ctx)
	report.Failures = discovered.Failures()
	if err != nil {
		report.Elapsed = t.now().Sub(start)
		return report, fmt.Errorf("fetch: %w", err)
	}

	report.Fetched = len(discovered.Repositories)
	report.Top = discovered.Repositories
	if len(report.Top) > topN {
		report.Top = report.Top[:topN]
	}

	if report.Fetched == 0 {
		logger.Warn("No repositories found, nothing to sync")
		report.Elapsed = t.now().Sub(start)
		return report, nil
	}

	sync := t.syncer.Sync
	if opts.DryRun {
		logger.Info("Dry run: no catalog writes")
		sync = t.syncer.Plan
	}

	report.Sync, err = sync(ctx, discovered.Repositories)
	report.Elapsed = t.now().Sub(start)
	if err != nil {
		return report, fmt.Errorf("sync: %w", err)
	}
	return report, nil
}
