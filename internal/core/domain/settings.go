package domain

import (
	"errors"
	"fmt"
	"time"
)

// Catalog backends.
const (
	BackendNotion   = "notion"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Settings is the typed application configuration.
// Defaults come from DefaultSettings; a config file and the environment
// are layered on top by the config adapter.
type Settings struct {
	GitHub     GitHubSettings      `toml:"github"`
	Catalog    CatalogSettings     `toml:"catalog"`
	Discovery  DiscoverySettings   `toml:"discovery"`
	Keywords   KeywordSettings     `toml:"keywords"`
	Log        LogSettings         `toml:"log"`
	Ecosystems []EcosystemSettings `toml:"ecosystems"`

	// Categories maps topic tags to tool categories.
	// Entries from a config file extend and override the defaults.
	Categories map[string]string `toml:"categories"`
}

// GitHubSettings configures the search API client.
type GitHubSettings struct {
	Token   string `toml:"token"    env:"GITHUB_TOKEN"`
	BaseURL string `toml:"base_url" env:"GITHUB_API_BASE_URL"`
}

// CatalogSettings selects and configures the catalog store.
type CatalogSettings struct {
	Backend     string         `toml:"backend"      env:"ECOTRACK_CATALOG_BACKEND"`
	Notion      NotionSettings `toml:"notion"`
	SQLitePath  string         `toml:"sqlite_path"  env:"ECOTRACK_SQLITE_PATH"`
	PostgresDSN string         `toml:"postgres_dsn" env:"ECOTRACK_POSTGRES_DSN"`
}

// NotionSettings configures the Notion catalog store.
type NotionSettings struct {
	Token      string `toml:"token"       env:"NOTION_TOKEN"`
	DatabaseID string `toml:"database_id" env:"NOTION_DATABASE_ID"`
}

// DiscoverySettings bounds and paces the fetch pass.
type DiscoverySettings struct {
	MaxPerEcosystem       int     `toml:"max_per_ecosystem"       env:"MAX_REPOS_PER_ECOSYSTEM"`
	MaxPerTopic           int     `toml:"max_per_topic"           env:"MAX_REPOS_PER_TOPIC"`
	SearchDelaySeconds    float64 `toml:"search_delay_seconds"    env:"SEARCH_DELAY_SECONDS"`
	RequestTimeoutSeconds int     `toml:"request_timeout_seconds" env:"REQUEST_TIMEOUT"`
}

// KeywordSettings configures the keyword cross-topic pass.
type KeywordSettings struct {
	Enabled          bool     `toml:"enabled"            env:"ECOTRACK_KEYWORDS_ENABLED"`
	Ecosystem        string   `toml:"ecosystem"`
	Keywords         []string `toml:"keywords"`
	Topics           []string `toml:"topics"`
	TopicsPerKeyword int      `toml:"topics_per_keyword"`
	MaxCombinations  int      `toml:"max_combinations"`
	MaxPerQuery      int      `toml:"max_per_query"`
	MaxResults       int      `toml:"max_results"`
	TagPrefix        string   `toml:"tag_prefix"`
}

// LogSettings configures the logger.
type LogSettings struct {
	Level string `toml:"level" env:"LOG_LEVEL"`
}

// EcosystemSettings is one configured ecosystem.
type EcosystemSettings struct {
	Name   string   `toml:"name"`
	Topics []string `toml:"topics"`
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		Catalog: CatalogSettings{
			Backend: BackendNotion,
		},
		Discovery: DiscoverySettings{
			MaxPerEcosystem:       50,
			MaxPerTopic:           100,
			SearchDelaySeconds:    2,
			RequestTimeoutSeconds: 30,
		},
		Keywords: KeywordSettings{
			Enabled:          true,
			Ecosystem:        string(EcosystemChineseTraditional),
			Keywords:         []string{"繁體中文", "台灣", "中文說明", "Chinese README"},
			Topics:           []string{"llm", "ai", "chatgpt", "gpt", "langchain", "ollama"},
			TopicsPerKeyword: 3,
			MaxCombinations:  12,
			MaxPerQuery:      30,
			TagPrefix:        "chinese",
		},
		Log: LogSettings{
			Level: "info",
		},
		Ecosystems: []EcosystemSettings{
			{Name: string(EcosystemVibeCodingIDE), Topics: []string{
				"vibe-coding", "cursor", "cursor-ai", "cursor-rules", "windsurf", "windsurf-ai",
			}},
			{Name: string(EcosystemAntigravity), Topics: []string{
				"antigravity", "antigravity-ide", "antigravity-ai", "gemini-cli",
			}},
			{Name: string(EcosystemAICodingAgents), Topics: []string{
				"ai-agent", "coding-assistant", "claude-code", "cline", "aider", "continue", "copilot",
			}},
			{Name: string(EcosystemNotebookLM), Topics: []string{
				"notebooklm", "pdf-to-pptx", "pdf-text-extraction", "ai-podcast", "open-notebooklm",
			}},
			{Name: string(EcosystemAIInfrastructure), Topics: []string{
				"llm", "ollama", "local-llm", "rag", "ragflow", "mcp", "langchain", "langflow", "vllm",
			}},
			{Name: string(EcosystemPDFTools), Topics: []string{
				"pdf-extract", "pdf-parser", "ocr", "document-ai", "pdf-to-markdown",
			}},
		},
		Categories: DefaultCategoryTable(),
	}
}

// EcosystemSpecs returns the configured ecosystems in configuration order.
func (s Settings) EcosystemSpecs() []EcosystemSpec {
	specs := make([]EcosystemSpec, 0, len(s.Ecosystems))
	for _, e := range s.Ecosystems {
		specs = append(specs, EcosystemSpec{
			Name:   Ecosystem(e.Name),
			Topics: append([]string(nil), e.Topics...),
		})
	}
	return specs
}

// TopicCount returns the number of configured topics across ecosystems.
func (s Settings) TopicCount() int {
	n := 0
	for _, e := range s.Ecosystems {
		n += len(e.Topics)
	}
	return n
}

// KeywordSpec returns the keyword pass configuration.
func (s Settings) KeywordSpec() KeywordSpec {
	return KeywordSpec{
		Ecosystem:        Ecosystem(s.Keywords.Ecosystem),
		Keywords:         append([]string(nil), s.Keywords.Keywords...),
		Topics:           append([]string(nil), s.Keywords.Topics...),
		TopicsPerKeyword: s.Keywords.TopicsPerKeyword,
		MaxCombinations:  s.Keywords.MaxCombinations,
		TagPrefix:        s.Keywords.TagPrefix,
	}
}

// KeywordMaxResults returns the result cap of the keyword pass, falling
// back to the per-ecosystem cap.
func (s Settings) KeywordMaxResults() int {
	if s.Keywords.MaxResults > 0 {
		return s.Keywords.MaxResults
	}
	return s.Discovery.MaxPerEcosystem
}

// CategoryTable returns the topic to category lookup table.
func (s Settings) CategoryTable() CategoryTable {
	return CategoryTable(s.Categories).Normalized()
}

// SearchDelay returns the fixed pause between search requests.
func (s Settings) SearchDelay() time.Duration {
	return time.Duration(s.Discovery.SearchDelaySeconds * float64(time.Second))
}

// RequestTimeout returns the per-request timeout.
func (s Settings) RequestTimeout() time.Duration {
	return time.Duration(s.Discovery.RequestTimeoutSeconds) * time.Second
}

// MissingSecrets lists the settings a run cannot proceed without.
func (s Settings) MissingSecrets() []string {
	var missing []string
	if s.GitHub.Token == "" {
		missing = append(missing, "GITHUB_TOKEN")
	}
	switch s.Catalog.Backend {
	case BackendNotion:
		if s.Catalog.Notion.Token == "" {
			missing = append(missing, "NOTION_TOKEN")
		}
		if s.Catalog.Notion.DatabaseID == "" {
			missing = append(missing, "NOTION_DATABASE_ID")
		}
	case BackendPostgres:
		if s.Catalog.PostgresDSN == "" {
			missing = append(missing, "ECOTRACK_POSTGRES_DSN")
		}
	}
	return missing
}

// Validate checks structural settings. Secrets are checked separately by
// MissingSecrets so read-only commands can run without them.
func (s Settings) Validate() error {
	var errs []error

	switch s.Catalog.Backend {
	case BackendNotion, BackendSQLite, BackendPostgres, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("%w: catalog backend %q", ErrUnsupportedType, s.Catalog.Backend))
	}

	if s.Discovery.MaxPerEcosystem <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_per_ecosystem must be positive", ErrInvalidConfig))
	}
	if s.Discovery.MaxPerTopic <= 0 || s.Discovery.MaxPerTopic > MaxSearchResults {
		errs = append(errs, fmt.Errorf("%w: max_per_topic must be between 1 and %d", ErrInvalidConfig, MaxSearchResults))
	}
	if s.Discovery.SearchDelaySeconds < 0 {
		errs = append(errs, fmt.Errorf("%w: search_delay_seconds must not be negative", ErrInvalidConfig))
	}
	if s.Discovery.RequestTimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("%w: request_timeout_seconds must be positive", ErrInvalidConfig))
	}

	seen := make(map[string]struct{}, len(s.Ecosystems))
	for _, e := range s.Ecosystems {
		if !Ecosystem(e.Name).IsValid() {
			errs = append(errs, fmt.Errorf("%w: unknown ecosystem %q", ErrInvalidConfig, e.Name))
			continue
		}
		if _, dup := seen[e.Name]; dup {
			errs = append(errs, fmt.Errorf("%w: ecosystem %q configured twice", ErrInvalidConfig, e.Name))
		}
		seen[e.Name] = struct{}{}
	}

	if s.Keywords.Enabled {
		if !Ecosystem(s.Keywords.Ecosystem).IsValid() {
			errs = append(errs, fmt.Errorf("%w: unknown keyword ecosystem %q", ErrInvalidConfig, s.Keywords.Ecosystem))
		}
		if s.Keywords.MaxPerQuery <= 0 || s.Keywords.MaxPerQuery > MaxSearchResults {
			errs = append(errs, fmt.Errorf("%w: keywords.max_per_query must be between 1 and %d", ErrInvalidConfig, MaxSearchResults))
		}
	}

	return errors.Join(errs...)
}
