package github

import (
	"time"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
)

// Config holds the settings the search client is constructed with.
type Config struct {
	// Token is a personal access token sent as a bearer token.
	Token string

	// BaseURL overrides the API root, e.g. for GitHub Enterprise.
	// Empty means api.github.com.
	BaseURL string

	// Timeout bounds every HTTP request. Zero means DefaultTimeout.
	Timeout time.Duration

	// SearchDelay is the fixed pause between successive search requests.
	// Zero disables pacing.
	SearchDelay time.Duration

	// Categories derives tool categories from repository topics.
	Categories domain.CategoryTable
}

// ConfigFromSettings extracts the client configuration from settings.
func ConfigFromSettings(s domain.Settings) Config {
	return Config{
		Token:       s.GitHub.Token,
		BaseURL:     s.GitHub.BaseURL,
		Timeout:     s.RequestTimeout(),
		SearchDelay: s.SearchDelay(),
		Categories:  s.CategoryTable(),
	}
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}
