package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
)

// mockSearcher implements driven.RepositorySearcher for testing.
// Canned results are keyed by query string; hits are stamped with the
// query's ecosystem and label the way the GitHub client does.
type mockSearcher struct {
	results  map[string]domain.SearchResult
	errs     map[string]error
	queries  []domain.SearchQuery
	quota    domain.Quota
	quotaErr error
}

func newMockSearcher() *mockSearcher {
	return &mockSearcher{
		results: make(map[string]domain.SearchResult),
		errs:    make(map[string]error),
	}
}

func (m *mockSearcher) Search(_ context.Context, q domain.SearchQuery) (domain.SearchResult, error) {
	m.queries = append(m.queries, q)
	if err := m.errs[q.Query]; err != nil {
		return domain.SearchResult{}, err
	}

	res := m.results[q.Query]
	repos := make([]domain.Repository, 0, len(res.Repositories))
	for _, r := range res.Repositories {
		r = r.Clone()
		r.Ecosystem = q.Ecosystem
		r.MatchedTopic = q.MatchedTopic
		repos = append(repos, r)
	}
	res.Repositories = repos
	return res, nil
}

func (m *mockSearcher) Quota(_ context.Context) (domain.Quota, error) {
	return m.quota, m.quotaErr
}

func (m *mockSearcher) on(query string, repos ...domain.Repository) {
	m.results[query] = domain.SearchResult{Repositories: repos, Status: domain.SearchComplete, Pages: 1}
}

func repo(fullName string, forks int, categories ...string) domain.Repository {
	return domain.Repository{
		FullName:       fullName,
		Name:           fullName,
		Forks:          forks,
		Topics:         categories,
		ToolCategories: categories,
	}
}

func testSettings(ecosystems ...domain.EcosystemSettings) domain.Settings {
	s := domain.DefaultSettings()
	s.Discovery.SearchDelaySeconds = 0
	s.Ecosystems = ecosystems
	s.Keywords.Enabled = false
	return s
}

func names(repos []domain.Repository) []string {
	out := make([]string, len(repos))
	for i, r := range repos {
		out[i] = r.FullName
	}
	return out
}

func TestDiscovery_Aggregate_UnionsAcrossTopics(t *testing.T) {
	searcher := newMockSearcher()
	searcher.on("topic:x", repo("o/r", 10, "X"))
	searcher.on("topic:y", repo("o/r", 10, "Y"))

	d := NewDiscovery(searcher, testSettings())
	spec := domain.EcosystemSpec{Name: domain.EcosystemAICodingAgents, Topics: []string{"x", "y"}}

	result := d.Aggregate(context.Background(), spec, 50)

	require.Len(t, result.Repositories, 1)
	got := result.Repositories[0]
	assert.Equal(t, "o/r", got.FullName)
	assert.Equal(t, []string{"X", "Y"}, got.ToolCategories)
	assert.Equal(t, []string{"X", "Y"}, got.Topics)
	assert.Equal(t, "x", got.MatchedTopic, "first hit fixes the matched topic")
	assert.Equal(t, 2, result.Queries)
	assert.Empty(t, result.Failures)
}

func TestDiscovery_Aggregate_QueryShape(t *testing.T) {
	searcher := newMockSearcher()
	settings := testSettings()
	settings.Discovery.MaxPerTopic = 77

	d := NewDiscovery(searcher, settings)
	d.Aggregate(context.Background(), domain.EcosystemSpec{
		Name:   domain.EcosystemPDFTools,
		Topics: []string{"ocr", "pdf-parser"},
	}, 50)

	require.Len(t, searcher.queries, 2)
	assert.Equal(t, domain.SearchQuery{
		Query:        "topic:ocr",
		Ecosystem:    domain.EcosystemPDFTools,
		MatchedTopic: "ocr",
		Sort:         domain.SortForks,
		MaxResults:   77,
	}, searcher.queries[0])
	assert.Equal(t, "topic:pdf-parser", searcher.queries[1].Query)
}

func TestDiscovery_Aggregate_RanksStablyAndTruncates(t *testing.T) {
	searcher := newMockSearcher()
	searcher.on("topic:a", repo("o/low", 1), repo("o/tie1", 5), repo("o/high", 9))
	searcher.on("topic:b", repo("o/tie2", 5), repo("o/mid", 3))

	d := NewDiscovery(searcher, testSettings())
	spec := domain.EcosystemSpec{Name: domain.EcosystemNotebookLM, Topics: []string{"a", "b"}}

	all := d.Aggregate(context.Background(), spec, 0)
	assert.Equal(t, []string{"o/high", "o/tie1", "o/tie2", "o/mid", "o/low"}, names(all.Repositories))

	top := d.Aggregate(context.Background(), spec, 2)
	assert.Equal(t, []string{"o/high", "o/tie1"}, names(top.Repositories))
}

func TestDiscovery_Aggregate_EmptyTopicsIssueNoCalls(t *testing.T) {
	searcher := newMockSearcher()
	d := NewDiscovery(searcher, testSettings())

	result := d.Aggregate(context.Background(), domain.EcosystemSpec{Name: domain.EcosystemAntigravity}, 50)

	assert.Empty(t, result.Repositories)
	assert.Zero(t, result.Queries)
	assert.Empty(t, searcher.queries)
	assert.False(t, result.Failed())
}

func TestDiscovery_Aggregate_FailedTopicIsSkipped(t *testing.T) {
	searcher := newMockSearcher()
	boom := errors.New("connection reset")
	searcher.errs["topic:bad"] = boom
	searcher.on("topic:good", repo("o/r", 1))

	d := NewDiscovery(searcher, testSettings())
	spec := domain.EcosystemSpec{Name: domain.EcosystemPDFTools, Topics: []string{"bad", "good"}}

	result := d.Aggregate(context.Background(), spec, 50)

	assert.Equal(t, []string{"o/r"}, names(result.Repositories))
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "bad", result.Failures[0].Topic)
	assert.ErrorIs(t, result.Failures[0].Err, boom)
	assert.False(t, result.Failed())
}

func TestDiscovery_Aggregate_PartialResultsAreKept(t *testing.T) {
	searcher := newMockSearcher()
	searcher.results["topic:hot"] = domain.SearchResult{
		Repositories: []domain.Repository{repo("o/r", 1)},
		Status:       domain.SearchRateLimited,
		Warning:      domain.ErrRateLimited,
	}

	d := NewDiscovery(searcher, testSettings())
	result := d.Aggregate(context.Background(), domain.EcosystemSpec{
		Name: domain.EcosystemVibeCodingIDE, Topics: []string{"hot"},
	}, 50)

	assert.Equal(t, []string{"o/r"}, names(result.Repositories))
	assert.Empty(t, result.Failures)
	require.Len(t, result.Warnings, 1)
	assert.ErrorIs(t, result.Warnings[0].Err, domain.ErrRateLimited)
}

func TestDiscovery_SearchKeywords(t *testing.T) {
	searcher := newMockSearcher()
	searcher.on("台灣 llm in:readme", repo("tw/a", 4))
	searcher.on("台灣 ai in:readme", repo("tw/a", 4), repo("tw/b", 8))

	settings := testSettings()
	settings.Keywords.MaxPerQuery = 30
	d := NewDiscovery(searcher, settings)

	spec := domain.KeywordSpec{
		Ecosystem:        domain.EcosystemChineseTraditional,
		Keywords:         []string{"台灣"},
		Topics:           []string{"llm", "ai", "gpt"},
		TopicsPerKeyword: 2,
		TagPrefix:        "chinese",
	}

	result := d.SearchKeywords(context.Background(), spec, 50)

	require.Len(t, searcher.queries, 2)
	assert.Equal(t, "台灣 llm in:readme", searcher.queries[0].Query)
	assert.Equal(t, "chinese-llm", searcher.queries[0].MatchedTopic)
	assert.Equal(t, 30, searcher.queries[0].MaxResults)
	assert.Equal(t, domain.EcosystemChineseTraditional, searcher.queries[1].Ecosystem)

	assert.Equal(t, []string{"tw/b", "tw/a"}, names(result.Repositories))
	assert.Equal(t, domain.EcosystemChineseTraditional, result.Ecosystem)
}

func TestDiscovery_FetchAll(t *testing.T) {
	searcher := newMockSearcher()
	searcher.on("topic:cursor", repo("o/shared", 10, "Cursor"), repo("o/ide", 3, "Cursor"))
	searcher.on("topic:mcp", repo("o/shared", 10, "MCP"), repo("o/infra", 20, "MCP"))
	searcher.on("中文 llm in:readme", repo("tw/zh", 7))

	settings := testSettings(
		domain.EcosystemSettings{Name: string(domain.EcosystemVibeCodingIDE), Topics: []string{"cursor"}},
		domain.EcosystemSettings{Name: string(domain.EcosystemAIInfrastructure), Topics: []string{"mcp"}},
	)
	settings.Keywords.Enabled = true
	settings.Keywords.Keywords = []string{"中文"}
	settings.Keywords.Topics = []string{"llm"}

	d := NewDiscovery(searcher, settings)
	result, err := d.FetchAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"o/infra", "o/shared", "tw/zh", "o/ide"}, names(result.Repositories))
	require.Len(t, result.Ecosystems, 3)
	assert.Equal(t, domain.EcosystemChineseTraditional, result.Ecosystems[2].Ecosystem)

	shared := result.Repositories[1]
	assert.Equal(t, domain.EcosystemVibeCodingIDE, shared.Ecosystem, "first ecosystem wins")
	assert.Equal(t, []string{"Cursor", "MCP"}, shared.ToolCategories)
}

func TestDiscovery_FetchAll_AllFailed(t *testing.T) {
	searcher := newMockSearcher()
	searcher.errs["topic:a"] = errors.New("down")
	searcher.errs["topic:b"] = errors.New("down")

	settings := testSettings(
		domain.EcosystemSettings{Name: string(domain.EcosystemPDFTools), Topics: []string{"a"}},
		domain.EcosystemSettings{Name: string(domain.EcosystemNotebookLM), Topics: []string{"b"}},
		domain.EcosystemSettings{Name: string(domain.EcosystemAntigravity)},
	)

	result, err := NewDiscovery(searcher, settings).FetchAll(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDiscoveryFailed)
	assert.Len(t, result.Failures(), 2)
}

func TestDiscovery_FetchAll_OneEcosystemSucceeding(t *testing.T) {
	searcher := newMockSearcher()
	searcher.errs["topic:a"] = errors.New("down")
	searcher.on("topic:b")

	settings := testSettings(
		domain.EcosystemSettings{Name: string(domain.EcosystemPDFTools), Topics: []string{"a"}},
		domain.EcosystemSettings{Name: string(domain.EcosystemNotebookLM), Topics: []string{"b"}},
	)

	result, err := NewDiscovery(searcher, settings).FetchAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, result.Repositories)
	assert.Len(t, result.Failures(), 1)
}

func TestDiscovery_FetchAll_Cancelled(t *testing.T) {
	searcher := newMockSearcher()
	settings := testSettings(
		domain.EcosystemSettings{Name: string(domain.EcosystemPDFTools), Topics: []string{"a", "b"}},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDiscovery(searcher, settings).FetchAll(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, len(searcher.queries), 1)
}
