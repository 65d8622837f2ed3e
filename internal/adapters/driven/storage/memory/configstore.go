package memory

import (
	"sync"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
	"github.com/custodia-labs/ecotrack/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is an in-memory implementation of driven.ConfigStore for testing.
type ConfigStore struct {
	mu       sync.RWMutex
	settings domain.Settings
	err      error
}

// NewConfigStore creates a config store that always loads settings.
func NewConfigStore(settings domain.Settings) *ConfigStore {
	return &ConfigStore{settings: settings}
}

// Set replaces the stored settings.
func (s *ConfigStore) Set(settings domain.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// SetError makes subsequent loads fail with err.
func (s *ConfigStore) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Load returns the stored settings after validating them.
func (s *ConfigStore) Load() (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return domain.Settings{}, s.err
	}
	if err := s.settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return s.settings, nil
}

// Path returns an empty path; nothing is persisted.
func (s *ConfigStore) Path() string {
	return ""
}
