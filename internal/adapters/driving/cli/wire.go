package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/ecotrack/internal/adapters/driven/catalog/notion"
	"github.com/custodia-labs/ecotrack/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ecotrack/internal/adapters/driven/storage/postgres"
	"github.com/custodia-labs/ecotrack/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ecotrack/internal/connectors/github"
	"github.com/custodia-labs/ecotrack/internal/core/domain"
	"github.com/custodia-labs/ecotrack/internal/core/ports/driven"
	"github.com/custodia-labs/ecotrack/internal/core/ports/driving"
	"github.com/custodia-labs/ecotrack/internal/core/services"
	"github.com/custodia-labs/ecotrack/internal/logger"
)

var errNotConfigured = errors.New("configuration not loaded")

func requireSearcher() (driven.RepositorySearcher, error) {
	if searcher != nil {
		return searcher, nil
	}
	if settings == nil {
		return nil, errNotConfigured
	}

	if settings.GitHub.Token == "" {
		logger.Warn("GITHUB_TOKEN is not set, searching unauthenticated")
	}
	client, err := github.NewClient(github.ConfigFromSettings(*settings))
	if err != nil {
		return nil, fmt.Errorf("creating github client: %w", err)
	}
	searcher = client
	return searcher, nil
}

func requireDiscovery() (driving.DiscoveryService, error) {
	if discoveryService != nil {
		return discoveryService, nil
	}
	s, err := requireSearcher()
	if err != nil {
		return nil, err
	}
	discoveryService = services.NewDiscovery(s, *settings)
	return discoveryService, nil
}

func requireTracker(ctx context.Context) (driving.Tracker, error) {
	if tracker != nil {
		return tracker, nil
	}
	if settings == nil {
		return nil, errNotConfigured
	}
	if missing := settings.MissingSecrets(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrInvalidConfig, strings.Join(missing, ", "))
	}

	s, err := requireSearcher()
	if err != nil {
		return nil, err
	}
	d, err := requireDiscovery()
	if err != nil {
		return nil, err
	}

	store, closeFn, err := openCatalog(ctx, *settings)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	if closeFn != nil {
		closers = append(closers, closeFn)
	}

	tracker = services.NewTracker(s, d, services.NewCatalogSync(store), *settings)
	return tracker, nil
}

// openCatalog creates the catalog store selected by the settings.
// The returned close function is nil when the store holds no resources.
func openCatalog(ctx context.Context, s domain.Settings) (driven.CatalogStore, func() error, error) {
	switch s.Catalog.Backend {
	case domain.BackendNotion:
		store, err := notion.NewStore(notion.Config{
			Token:      s.Catalog.Notion.Token,
			DatabaseID: s.Catalog.Notion.DatabaseID,
			Timeout:    s.RequestTimeout(),
		})
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil

	case domain.BackendSQLite:
		store, err := sqlite.NewStore(s.Catalog.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("Using SQLite catalog at %s", store.Path())
		return store.CatalogStore(), store.Close, nil

	case domain.BackendPostgres:
		store, err := postgres.NewStore(ctx, s.Catalog.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { store.Close(); return nil }, nil

	case domain.BackendMemory:
		logger.Warn("Using the in-memory catalog, records are discarded on exit")
		return memory.NewCatalogStore(), nil, nil

	default:
		return nil, nil, fmt.Errorf("%w: catalog backend %q", domain.ErrUnsupportedType, s.Catalog.Backend)
	}
}
