package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
	"github.com/custodia-labs/ecotrack/internal/core/ports/driven"
)

// EnvConfigPath names the environment variable that overrides the config path.
const EnvConfigPath = "ECOTRACK_CONFIG"

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore loads settings from a TOML file and the environment.
type ConfigStore struct {
	filePath string
	explicit bool
}

// NewConfigStore creates a config store for path.
// If path is empty, $ECOTRACK_CONFIG is used, then ~/.ecotrack/config.toml.
func NewConfigStore(path string) (*ConfigStore, error) {
	explicit := path != ""
	if !explicit {
		if env := os.Getenv(EnvConfigPath); env != "" {
			path = env
			explicit = true
		}
	}
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".ecotrack", "config.toml")
	}

	return &ConfigStore{filePath: path, explicit: explicit}, nil
}

// Load returns the layered, validated settings.
func (s *ConfigStore) Load() (domain.Settings, error) {
	cfg := domain.DefaultSettings()

	data, err := os.ReadFile(s.filePath)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return domain.Settings{}, fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidConfig, s.filePath, err)
		}
	case errors.Is(err, os.ErrNotExist) && !s.explicit:
		// No config file yet - defaults and environment only
	default:
		return domain.Settings{}, fmt.Errorf("reading config %s: %w", s.filePath, err)
	}

	if err := cleanenv.UpdateEnv(&cfg); err != nil {
		return domain.Settings{}, fmt.Errorf("%w: reading environment: %v", domain.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("config %s: %w", s.filePath, err)
	}
	return cfg, nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Load is a shorthand for NewConfigStore(path) followed by Load.
func Load(path string) (domain.Settings, error) {
	store, err := NewConfigStore(path)
	if err != nil {
		return domain.Settings{}, err
	}
	return store.Load()
}
