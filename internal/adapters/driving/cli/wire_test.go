package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ecotrack/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ecotrack/internal/core/domain"
)

func TestOpenCatalog_Memory(t *testing.T) {
	s := domain.DefaultSettings()
	s.Catalog.Backend = domain.BackendMemory

	store, closeFn, err := openCatalog(context.Background(), s)

	require.NoError(t, err)
	assert.IsType(t, &memory.CatalogStore{}, store)
	assert.Nil(t, closeFn)
}

func TestOpenCatalog_SQLite(t *testing.T) {
	s := domain.DefaultSettings()
	s.Catalog.Backend = domain.BackendSQLite
	s.Catalog.SQLitePath = filepath.Join(t.TempDir(), "catalog.db")

	store, closeFn, err := openCatalog(context.Background(), s)

	require.NoError(t, err)
	require.NotNil(t, store)
	require.NotNil(t, closeFn)
	assert.FileExists(t, s.Catalog.SQLitePath)
	assert.NoError(t, closeFn())
}

func TestOpenCatalog_Notion(t *testing.T) {
	s := domain.DefaultSettings()
	s.Catalog.Notion = domain.NotionSettings{Token: "secret", DatabaseID: "db"}

	store, closeFn, err := openCatalog(context.Background(), s)

	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.Nil(t, closeFn)
}

func TestOpenCatalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *domain.Settings)
		wantErr error
	}{
		{
			name:    "notion without credentials",
			mutate:  func(s *domain.Settings) { s.Catalog.Notion = domain.NotionSettings{} },
			wantErr: domain.ErrInvalidConfig,
		},
		{
			name: "postgres without dsn",
			mutate: func(s *domain.Settings) {
				s.Catalog.Backend = domain.BackendPostgres
				s.Catalog.PostgresDSN = ""
			},
			wantErr: domain.ErrInvalidConfig,
		},
		{
			name:    "unknown backend",
			mutate:  func(s *domain.Settings) { s.Catalog.Backend = "mongo" },
			wantErr: domain.ErrUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.DefaultSettings()
			tt.mutate(&s)

			_, _, err := openCatalog(context.Background(), s)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRequireTracker_BuildsFromSettings(t *testing.T) {
	setupCLITest(t)
	settings.GitHub.Token = "ghp_test"
	settings.Catalog.Backend = domain.BackendMemory

	got, err := requireTracker(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.NotNil(t, searcher)
	assert.NotNil(t, discoveryService)

	again, err := requireTracker(context.Background())
	require.NoError(t, err)
	assert.Same(t, got, again)
}

func TestRequireSearcher_NotConfigured(t *testing.T) {
	setupCLITest(t)
	settings = nil

	_, err := requireSearcher()

	assert.ErrorIs(t, err, errNotConfigured)
}
