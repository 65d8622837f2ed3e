package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
	"github.com/custodia-labs/ecotrack/internal/core/ports/driving"
)

// mockTracker implements driving.Tracker for testing.
type mockTracker struct {
	report domain.RunReport
	err    error
	opts   driving.RunOptions
	calls  int
}

func (m *mockTracker) Run(_ context.Context, opts driving.RunOptions) (domain.RunReport, error) {
	m.calls++
	m.opts = opts
	return m.report, m.err
}

// mockDiscoveryService implements driving.DiscoveryService for testing.
type mockDiscoveryService struct {
	result domain.DiscoveryResult
	err    error
}

func (m *mockDiscoveryService) Aggregate(context.Context, domain.EcosystemSpec, int) domain.AggregateResult {
	return domain.AggregateResult{}
}

func (m *mockDiscoveryService) SearchKeywords(context.Context, domain.KeywordSpec, int) domain.AggregateResult {
	return domain.AggregateResult{}
}

func (m *mockDiscoveryService) FetchAll(context.Context) (domain.DiscoveryResult, error) {
	return m.result, m.err
}

// mockSearcher implements driven.RepositorySearcher for testing.
type mockSearcher struct {
	quota domain.Quota
	err   error
}

func (m *mockSearcher) Search(context.Context, domain.SearchQuery) (domain.SearchResult, error) {
	return domain.SearchResult{}, nil
}

func (m *mockSearcher) Quota(context.Context) (domain.Quota, error) {
	return m.quota, m.err
}

// setupCLITest injects default settings, captures output and restores
// package state when the test ends.
func setupCLITest(t *testing.T) *bytes.Buffer {
	t.Helper()

	oldSettings, oldSearcher, oldDiscovery, oldTracker := settings, searcher, discoveryService, tracker
	cfg := domain.DefaultSettings()
	settings = &cfg
	searcher, discoveryService, tracker = nil, nil, nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	t.Cleanup(func() {
		settings, searcher, discoveryService, tracker = oldSettings, oldSearcher, oldDiscovery, oldTracker
		closers = nil
		configPath, verbose, logLevel = "", false, ""
		runDryRun, runTop = false, 10
		fetchJSON, fetchLimit = false, 0
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return buf
}

// execute runs the root command with args.
func execute(args ...string) error {
	rootCmd.SetArgs(args)
	return executeRoot(context.Background())
}

func testRepo(fullName string, forks int, eco domain.Ecosystem) domain.Repository {
	return domain.Repository{
		FullName:  fullName,
		Name:      fullName,
		HTMLURL:   "https://github.com/" + fullName,
		Forks:     forks,
		Stars:     forks * 10,
		Ecosystem: eco,
		Topics:    []string{"llm"},
		UpdatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}
