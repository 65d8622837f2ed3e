package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
	"github.com/custodia-labs/ecotrack/internal/core/ports/driven"
	"github.com/custodia-labs/ecotrack/internal/core/ports/driving"
	"github.com/custodia-labs/ecotrack/internal/logger"
)

// Ensure CatalogSync implements the interface.
var _ driving.CatalogSyncer = (*CatalogSync)(nil)

// CatalogSync reconciles repositories with a catalog store using
// last-write-wins on the upstream update time.
type CatalogSync struct {
	store driven.CatalogStore
}

// NewCatalogSync creates a new catalog sync service.
func NewCatalogSync(store driven.CatalogStore) *CatalogSync {
	return &CatalogSync{store: store}
}

// LoadIndex pages through the whole catalog. Any listing error aborts the
// load with domain.ErrIndexLoad; a partial index is never returned.
// When two records share an identity the later one wins.
func (s *CatalogSync) LoadIndex(ctx context.Context) (domain.Index, error) {
	index := make(domain.Index)
	cursor := ""

	for page := 1; ; page++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", domain.ErrIndexLoad, ctx.Err())
		default:
		}

		result, err := s.store.List(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %w", domain.ErrIndexLoad, page, err)
		}

		for _, rec := range result.Records {
			fullName, entry, ok := domain.IndexEntryFromRecord(rec)
			if !ok {
				logger.Debug("Ignoring catalog record %s without identity", rec.ID)
				continue
			}
			if prev, dup := index[fullName]; dup {
				logger.Warn("Duplicate catalog records for %s: %s and %s", fullName, prev.RecordID, entry.RecordID)
			}
			index[fullName] = entry
		}

		if !result.HasMore {
			break
		}
		if result.NextCursor == "" {
			logger.Warn("Catalog listing reported more pages without a cursor, stopping at page %d", page)
			break
		}
		cursor = result.NextCursor
	}

	logger.Info("Loaded %d catalog records", len(index))
	return index, nil
}

// Sync applies a create, update or skip to each repository in order.
// A failed write is counted in Failed and does not stop the run; only a
// failed index load or a cancelled context returns an error.
func (s *CatalogSync) Sync(ctx context.Context, repos []domain.Repository) (domain.SyncStats, error) {
	return s.reconcile(ctx, repos, false)
}

// Plan counts the decisions Sync would make without writing anything.
func (s *CatalogSync) Plan(ctx context.Context, repos []domain.Repository) (domain.SyncStats, error) {
	return s.reconcile(ctx, repos, true)
}

func (s *CatalogSync) reconcile(ctx context.Context, repos []domain.Repository, dryRun bool) (domain.SyncStats, error) {
	var stats domain.SyncStats

	index, err := s.LoadIndex(ctx)
	if err != nil {
		return stats, err
	}

	for i := range repos {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		repo := repos[i]
		decision := domain.Decide(index, repo)

		if decision.Action == domain.ActionUpdate && decision.Existing.UpdatedAt == nil {
			logger.Debug("%s has no stored update time, rewriting", repo.FullName)
		}

		if dryRun || decision.Action == domain.ActionSkip {
			logger.Debug("%s: %s", repo.FullName, decision.Action)
			stats.Record(decision.Action)
			continue
		}

		if err := s.apply(ctx, repo, decision); err != nil {
			logger.Error("Failed to %s %s: %v", decision.Action, repo.FullName, err)
			stats.Failed++
			continue
		}

		logger.Debug("%s: %s", repo.FullName, decision.Action)
		stats.Record(decision.Action)
	}

	logger.Info("Sync complete: %d created, %d updated, %d skipped, %d failed",
		stats.Created, stats.Updated, stats.Skipped, stats.Failed)
	return stats, nil
}

// apply issues the single write a decision requires.
func (s *CatalogSync) apply(ctx context.Context, repo domain.Repository, decision domain.SyncDecision) error {
	switch decision.Action {
	case domain.ActionCreate:
		if _, err := s.store.Create(ctx, domain.BuildProperties(repo, nil)); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrCatalogWrite, err)
		}
	case domain.ActionUpdate:
		props := domain.BuildProperties(repo, decision.Existing)
		if err := s.store.Update(ctx, decision.Existing.RecordID, props); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrCatalogWrite, err)
		}
	}
	return nil
}
