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

// Ensure Discovery implements the interface.
var _ driving.DiscoveryService = (*Discovery)(nil)

// Discovery aggregates repository searches per ecosystem.
type Discovery struct {
	searcher driven.RepositorySearcher

	ecosystems      []domain.EcosystemSpec
	keywords        *domain.KeywordSpec
	maxPerEcosystem int
	maxPerTopic     int
	maxPerQuery     int
	keywordMax      int

	// delay is the pause between two topic queries of one pass.
	delay time.Duration
}

// NewDiscovery creates a discovery service for the configured ecosystems.
// The keyword pass runs only when it is enabled in settings.
func NewDiscovery(searcher driven.RepositorySearcher, settings domain.Settings) *Discovery {
	d := &Discovery{
		searcher:        searcher,
		ecosystems:      settings.EcosystemSpecs(),
		maxPerEcosystem: settings.Discovery.MaxPerEcosystem,
		maxPerTopic:     settings.Discovery.MaxPerTopic,
		maxPerQuery:     settings.Keywords.MaxPerQuery,
		keywordMax:      settings.KeywordMaxResults(),
		delay:           settings.SearchDelay(),
	}
	if settings.Keywords.Enabled {
		spec := settings.KeywordSpec()
		d.keywords = &spec
	}
	return d
}

// Aggregate searches each topic of an ecosystem in order and merges the hits
// by identity. The first hit fixes a repository's fields; later hits only
// add topics and categories. The merged set is ranked by forks and
// truncated to maxResults.
//
// A topic whose search fails is recorded in Failures and skipped.
func (d *Discovery) Aggregate(ctx context.Context, spec domain.EcosystemSpec, maxResults int) domain.AggregateResult {
	result := domain.AggregateResult{Ecosystem: spec.Name}
	set := domain.NewRepositorySet()

	for i, topic := range spec.Topics {
		if i > 0 {
			if err := d.pause(ctx); err != nil {
				break
			}
		}

		d.runQuery(ctx, domain.SearchQuery{
			Query:        "topic:" + topic,
			Ecosystem:    spec.Name,
			MatchedTopic: topic,
			Sort:         domain.SortForks,
			MaxResults:   d.maxPerTopic,
		}, set, &result)

		if ctx.Err() != nil {
			break
		}
	}

	result.Repositories = set.Ranked(maxResults)
	logger.Info("Ecosystem %s: %d unique repositories from %d topics",
		spec.Name.DisplayName(), set.Len(), len(spec.Topics))
	return result
}

// SearchKeywords runs one README search per (keyword, topic) pair.
// Results are merged by identity like Aggregate.
func (d *Discovery) SearchKeywords(ctx context.Context, spec domain.KeywordSpec, maxResults int) domain.AggregateResult {
	result := domain.AggregateResult{Ecosystem: spec.Ecosystem}
	set := domain.NewRepositorySet()

	for i, pair := range spec.Pairs() {
		if i > 0 {
			if err := d.pause(ctx); err != nil {
				break
			}
		}

		keyword, topic := pair[0], pair[1]
		label := topic
		if spec.TagPrefix != "" {
			label = spec.TagPrefix + "-" + topic
		}

		d.runQuery(ctx, domain.SearchQuery{
			Query:        fmt.Sprintf("%s %s in:readme", keyword, topic),
			Ecosystem:    spec.Ecosystem,
			MatchedTopic: label,
			Sort:         domain.SortForks,
			MaxResults:   d.maxPerQuery,
		}, set, &result)

		if ctx.Err() != nil {
			break
		}
	}

	result.Repositories = set.Ranked(maxResults)
	logger.Info("Keyword search (%s): %d unique repositories from %d queries",
		spec.Ecosystem.DisplayName(), set.Len(), result.Queries)
	return result
}

// FetchAll runs every configured ecosystem in order, then the keyword pass,
// and merges all of them into one set ranked by forks. An identity found in
// several ecosystems keeps the first one.
//
// It fails with domain.ErrDiscoveryFailed only when every pass that issued
// queries failed on all of them.
func (d *Discovery) FetchAll(ctx context.Context) (domain.DiscoveryResult, error) {
	var out domain.DiscoveryResult
	global := domain.NewRepositorySet()
	issued, failed := 0, 0

	collect := func(res domain.AggregateResult) {
		out.Ecosystems = append(out.Ecosystems, res)
		global.AddAll(res.Repositories)
		if res.Queries > 0 {
			issued++
			if res.Failed() {
				failed++
				logger.Error("Every search for %s failed", res.Ecosystem.DisplayName())
			}
		}
	}

	for _, spec := range d.ecosystems {
		logger.Section("Ecosystem: " + spec.Name.DisplayName())
		collect(d.Aggregate(ctx, spec, d.maxPerEcosystem))
		if err := ctx.Err(); err != nil {
			return out, err
		}
	}

	if d.keywords != nil {
		logger.Section("Keyword search: " + d.keywords.Ecosystem.DisplayName())
		collect(d.SearchKeywords(ctx, *d.keywords, d.keywordMax))
		if err := ctx.Err(); err != nil {
			return out, err
		}
	}

	if issued > 0 && failed == issued {
		return out, fmt.Errorf("%w: %d passes issued queries", domain.ErrDiscoveryFailed, issued)
	}

	out.Repositories = global.Ranked(0)
	logger.Info("Discovered %d unique repositories", len(out.Repositories))
	return out, nil
}

// runQuery issues one search and merges its hits into set.
func (d *Discovery) runQuery(
	ctx context.Context, query domain.SearchQuery, set *domain.RepositorySet, result *domain.AggregateResult,
) {
	result.Queries++

	res, err := d.searcher.Search(ctx, query)
	if err != nil {
		logger.Error("Search %q failed: %v", query.Query, err)
		result.Failures = append(result.Failures, domain.TopicFailure{
			Ecosystem: query.Ecosystem,
			Topic:     query.MatchedTopic,
			Err:       err,
		})
		return
	}

	if res.Status != domain.SearchComplete {
		result.Warnings = append(result.Warnings, domain.TopicFailure{
			Ecosystem: query.Ecosystem,
			Topic:     query.MatchedTopic,
			Err:       res.Warning,
		})
	}

	added := 0
	for i := range res.Repositories {
		if set.Add(res.Repositories[i]) {
			added++
		}
	}
	logger.Debug("%s: %d results (%d new, status %s)", query.Query, len(res.Repositories), added, res.Status)
}

// pause waits the fixed delay between two queries.
func (d *Discovery) pause(ctx context.Context) error {
	if d.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d.delay):
		return nil
	}
}
