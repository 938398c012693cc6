package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ziadkadry99/ui-showcase/internal/catalog"
	"github.com/ziadkadry99/ui-showcase/internal/config"
	"github.com/ziadkadry99/ui-showcase/internal/logging"
	"github.com/ziadkadry99/ui-showcase/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `showcase init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger from the config and --verbose.
func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logging.New(os.Stderr, cfg.LogLevel, verbose)
}

// loadCatalog resolves the catalog: an explicit catalog file wins, then
// discovery over the content directory, then the built-in catalog.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	switch {
	case cfg.CatalogFile != "":
		return catalog.Load(cfg.CatalogFile)
	case cfg.Discover:
		return catalog.Discover(os.DirFS(cfg.ContentDir), catalog.DefaultPattern, site.ContentPrefix)
	default:
		return catalog.Default(), nil
	}
}
