package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
	"github.com/custodia-labs/ecotrack/internal/core/ports/driving"
)

// mockDiscovery implements driving.DiscoveryService for testing.
type mockDiscovery struct {
	result domain.DiscoveryResult
	err    error
	calls  int
}

func (m *mockDiscovery) Aggregate(context.Context, domain.EcosystemSpec, int) domain.AggregateResult {
	return domain.AggregateResult{}
}

func (m *mockDiscovery) SearchKeywords(context.Context, domain.KeywordSpec, int) domain.AggregateResult {
	return domain.AggregateResult{}
}

func (m *mockDiscovery) FetchAll(context.Context) (domain.DiscoveryResult, error) {
	m.calls++
	return m.result, m.err
}

// mockSyncer implements driving.CatalogSyncer for testing.
type mockSyncer struct {
	stats     domain.SyncStats
	err       error
	synced    []domain.Repository
	planned   []domain.Repository
	syncCalls int
	planCalls int
}

func (m *mockSyncer) LoadIndex(context.Context) (domain.Index, error) {
	return domain.Index{}, m.err
}

func (m *mockSyncer) Sync(_ context.Context, repos []domain.Repository) (domain.SyncStats, error) {
	m.syncCalls++
	m.synced = repos
	return m.stats, m.err
}

func (m *mockSyncer) Plan(_ context.Context, repos []domain.Repository) (domain.SyncStats, error) {
	m.planCalls++
	m.planned = repos
	return m.stats, m.err
}

func ranked(n int) []domain.Repository {
	out := make([]domain.Repository, n)
	for i := range out {
		out[i] = domain.Repository{FullName: string(rune('a'+i)) + "/r", Forks: 100 - i}
	}
	return out
}

func newTestTracker(searcher *mockSearcher, disc *mockDiscovery, syncer *mockSyncer) *Tracker {
	tr := NewTracker(searcher, disc, syncer, domain.DefaultSettings())
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tr.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return tr
}

func TestTracker_Run(t *testing.T) {
	searcher := newMockSearcher()
	searcher.quota = domain.Quota{Remaining: 29, Limit: 30}
	disc := &mockDiscovery{result: domain.DiscoveryResult{Repositories: ranked(15)}}
	syncer := &mockSyncer{stats: domain.SyncStats{Created: 10, Skipped: 5}}

	report, err := newTestTracker(searcher, disc, syncer).Run(context.Background(), driving.RunOptions{})

	require.NoError(t, err)
	assert.Equal(t, 6, report.Ecosystems)
	assert.Equal(t, 36, report.Topics)
	require.NotNil(t, report.Quota)
	assert.Equal(t, 29, report.Quota.Remaining)
	assert.Equal(t, 15, report.Fetched)
	assert.Len(t, report.Top, DefaultTopN)
	assert.Equal(t, "a/r", report.Top[0].FullName)
	assert.Equal(t, domain.SyncStats{Created: 10, Skipped: 5}, report.Sync)
	assert.Positive(t, report.Elapsed)
	assert.Len(t, syncer.synced, 15)
	assert.Zero(t, syncer.planCalls)
}

func TestTracker_QuotaFailureIsAdvisory(t *testing.T) {
	searcher := newMockSearcher()
	searcher.quotaErr = errors.New("bad credentials")
	disc := &mockDiscovery{result: domain.DiscoveryResult{Repositories: ranked(1)}}
	syncer := &mockSyncer{stats: domain.SyncStats{Created: 1}}

	report, err := newTestTracker(searcher, disc, syncer).Run(context.Background(), driving.RunOptions{})

	require.NoError(t, err)
	assert.Nil(t, report.Quota)
	assert.Equal(t, 1, disc.calls)
	assert.Equal(t, 1, report.Sync.Created)
}

func TestTracker_DiscoveryFailureIsFatal(t *testing.T) {
	disc := &mockDiscovery{err: domain.ErrDiscoveryFailed}
	syncer := &mockSyncer{}

	_, err := newTestTracker(newMockSearcher(), disc, syncer).Run(context.Background(), driving.RunOptions{})

	assert.ErrorIs(t, err, domain.ErrDiscoveryFailed)
	assert.Zero(t, syncer.syncCalls)
}

func TestTracker_NothingFoundSkipsSync(t *testing.T) {
	disc := &mockDiscovery{}
	syncer := &mockSyncer{}

	report, err := newTestTracker(newMockSearcher(), disc, syncer).Run(context.Background(), driving.RunOptions{})

	require.NoError(t, err)
	assert.Zero(t, report.Fetched)
	assert.Zero(t, syncer.syncCalls)
}

func TestTracker_DryRunPlans(t *testing.T) {
	disc := &mockDiscovery{result: domain.DiscoveryResult{Repositories: ranked(3)}}
	syncer := &mockSyncer{stats: domain.SyncStats{Created: 3}}

	report, err := newTestTracker(newMockSearcher(), disc, syncer).Run(context.Background(), driving.RunOptions{DryRun: true, TopN: 2})

	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Len(t, report.Top, 2)
	assert.Equal(t, 1, syncer.planCalls)
	assert.Zero(t, syncer.syncCalls)
}

func TestTracker_IndexLoadFailureIsFatal(t *testing.T) {
	disc := &mockDiscovery{result: domain.DiscoveryResult{
		Repositories: ranked(2),
		Ecosystems: []domain.AggregateResult{{
			Failures: []domain.TopicFailure{{Topic: "x", Err: errors.New("timeout")}},
		}},
	}}
	syncer := &mockSyncer{err: domain.ErrIndexLoad}

	report, err := newTestTracker(newMockSearcher(), disc, syncer).Run(context.Background(), driving.RunOptions{})

	assert.ErrorIs(t, err, domain.ErrIndexLoad)
	assert.Len(t, report.Failures, 1)
	assert.Equal(t, 2, report.Fetched)
}
