package config

import (
	"github.com/ziadkadry99/ui-showcase/internal/loader"
	"github.com/ziadkadry99/ui-showcase/internal/panel"
)

// DefaultShellTitle is the title of the shell page. The loader treats any
// component response containing it as a masked 404.
const DefaultShellTitle = "UI Components Showcase"

// Preference store backends.
const (
	StoreSQLite = "sqlite" // preferences and load log in data_dir/showcase.db
	StoreFile   = "file"   // one JSON file per client under data_dir/preferences
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:             8080,
		ContentDir:       "public",
		DataDir:          ".showcase",
		Store:            StoreSQLite,
		ShellTitle:       DefaultShellTitle,
		AutoplayInterval: "3s",
		FetchRate:        10,
		LogLevel:         "info",
		Panels:           panel.DefaultDefinitions(),
	}
}

// ShellMarker returns the markup the loader searches component bodies for,
// or "" when masked-404 detection is disabled.
func (c *Config) ShellMarker() string {
	if c.ShellTitle == "" {
		return ""
	}
	if c.ShellTitle == DefaultShellTitle {
		return loader.DefaultShellTitle
	}
	return "<title>" + c.ShellTitle + "</title>"
}
