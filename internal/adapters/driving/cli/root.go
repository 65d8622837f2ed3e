// Package cli provides the ecotrack command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ecotrack/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ecotrack/internal/core/domain"
	"github.com/custodia-labs/ecotrack/internal/core/ports/driven"
	"github.com/custodia-labs/ecotrack/internal/core/ports/driving"
	"github.com/custodia-labs/ecotrack/internal/logger"
)

// version is set at build time via Execute.
var version = "dev"

// annotationNoConfig marks commands that run without loading settings.
const annotationNoConfig = "ecotrack/no-config"

var (
	configPath string
	verbose    bool
	logLevel   string
)

// Services are built on first use by the wire helpers. Tests inject mocks
// by assigning them directly.
var (
	settings         *domain.Settings
	searcher         driven.RepositorySearcher
	discoveryService driving.DiscoveryService
	tracker          driving.Tracker
	closers          []func() error
)

// newConfigStore resolves the config source for --config.
var newConfigStore = func(path string) (driven.ConfigStore, error) {
	return file.NewConfigStore(path)
}

var rootCmd = &cobra.Command{
	Use:   "ecotrack",
	Short: "Track AI tooling ecosystems on GitHub",
	Long: `ecotrack discovers GitHub repositories for a set of AI tooling
ecosystems, ranks them by forks and keeps a catalog of them up to date.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default $ECOTRACK_CONFIG or ~/.ecotrack/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// Execute runs the root command. v overrides the reported version when set.
func Execute(ctx context.Context, v string) error {
	if v != "" {
		version = v
	}
	rootCmd.SetOut(os.Stdout)
	return executeRoot(ctx)
}

// executeRoot runs the command tree and always releases opened resources.
// Cobra skips post-run hooks when a command fails, so teardown runs here.
func executeRoot(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	return errors.Join(err, teardown())
}

// setup loads settings and configures logging before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[annotationNoConfig] == "true" {
		return configureLogger("")
	}

	if settings == nil {
		store, err := newConfigStore(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg, err := store.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logger.Debug("Loaded config from %s", store.Path())
		settings = &cfg
	}

	return configureLogger(settings.Log.Level)
}

// configureLogger applies the configured level; flags take precedence.
func configureLogger(configured string) error {
	level := configured
	if logLevel != "" {
		level = logLevel
	}
	if level != "" {
		l, err := logger.ParseLevel(level)
		if err != nil {
			return err
		}
		logger.SetLevel(l)
	}
	if verbose {
		logger.SetVerbose(true)
	}
	return nil
}

// teardown releases resources opened by the wire helpers.
func teardown() error {
	var errs []error
	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	closers = nil
	return errors.Join(errs...)
}
