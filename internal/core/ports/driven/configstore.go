package driven

import "github.com/custodia-labs/ecotrack/internal/core/domain"

// ConfigStore provides access to application configuration.
// Implementations layer a persisted file and the environment over
// domain.DefaultSettings.
type ConfigStore interface {
	// Load reads configuration from storage and the environment.
	Load() (domain.Settings, error)

	// Path returns the configuration file path.
	Path() string
}
