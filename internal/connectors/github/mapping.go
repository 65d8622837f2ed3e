package github

import (
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
)

// toRepository converts a search hit into the catalog entity.
// Optional strings that the API returns empty are left empty, which the
// catalog mapping treats as absent.
func (c *Client) toRepository(item *gh.Repository, query domain.SearchQuery, fetchedAt time.Time) domain.Repository {
	topics := domain.DedupTopics(item.Topics)

	return domain.Repository{
		FullName:       item.GetFullName(),
		Name:           item.GetName(),
		Description:    item.GetDescription(),
		HTMLURL:        item.GetHTMLURL(),
		Homepage:       item.GetHomepage(),
		License:        item.GetLicense().GetName(),
		Language:       item.GetLanguage(),
		Forks:          item.GetForksCount(),
		Stars:          item.GetStargazersCount(),
		OpenIssues:     item.GetOpenIssuesCount(),
		Ecosystem:      query.Ecosystem,
		Topics:         topics,
		ToolCategories: c.categories.Derive(topics),
		MatchedTopic:   query.MatchedTopic,
		CreatedAt:      domain.NormalizeTime(item.GetCreatedAt().Time),
		UpdatedAt:      domain.NormalizeTime(item.GetUpdatedAt().Time),
		FetchedAt:      fetchedAt,
	}
}
