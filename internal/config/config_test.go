package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ziadkadry99/ui-showcase/internal/loader"
	"github.com/ziadkadry99/ui-showcase/internal/panel"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.ContentDir != "public" {
		t.Errorf("expected default content_dir %q, got %q", "public", cfg.ContentDir)
	}
	if cfg.AutoplayInterval != "3s" {
		t.Errorf("expected default autoplay_interval 3s, got %q", cfg.AutoplayInterval)
	}
	if len(cfg.Panels) != 2 {
		t.Errorf("expected 2 default panels, got %d", len(cfg.Panels))
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.showcase.yml")

	original := DefaultConfig()
	original.Port = 9000
	original.ContentDir = "site"
	original.CatalogFile = "site/catalog.yml"
	original.AutoplayInterval = "5s"
	original.Watch = true
	original.Panels = []panel.Definition{{ID: "notes", Source: "/components/notes.md", ClosedLabel: "Notes", OpenLabel: "Hide Notes"}}

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.ContentDir != original.ContentDir {
		t.Errorf("content_dir: got %q, want %q", loaded.ContentDir, original.ContentDir)
	}
	if loaded.CatalogFile != original.CatalogFile {
		t.Errorf("catalog_file: got %q, want %q", loaded.CatalogFile, original.CatalogFile)
	}
	if !loaded.Watch {
		t.Error("watch: got false, want true")
	}
	if len(loaded.Panels) != 1 || loaded.Panels[0] != original.Panels[0] {
		t.Errorf("panels: got %+v, want %+v", loaded.Panels, original.Panels)
	}
	d, err := loaded.Interval()
	if err != nil || d != 5*time.Second {
		t.Errorf("interval: got %v, %v", d, err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("SHOWCASE_PORT", "9191")
	t.Setenv("SHOWCASE_CONTENT_DIR", "demos")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Port != 9191 {
		t.Errorf("env override failed: got %d, want 9191", loaded.Port)
	}
	if loaded.ContentDir != "demos" {
		t.Errorf("env override failed: got %q, want %q", loaded.ContentDir, "demos")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(path, []byte("port: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Port = 0 }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"empty content dir", func(c *Config) { c.ContentDir = "" }},
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"unknown store", func(c *Config) { c.Store = "redis" }},
		{"bad interval", func(c *Config) { c.AutoplayInterval = "soon" }},
		{"zero interval", func(c *Config) { c.AutoplayInterval = "0s" }},
		{"negative fetch rate", func(c *Config) { c.FetchRate = -1 }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"panel without source", func(c *Config) { c.Panels = []panel.Definition{{ID: "x"}} }},
		{"duplicate panel", func(c *Config) {
			c.Panels = []panel.Definition{{ID: "x", Source: "/a"}, {ID: "x", Source: "/b"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}

func TestShellMarker(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.ShellMarker(); got != loader.DefaultShellTitle {
		t.Errorf("default marker = %q, want %q", got, loader.DefaultShellTitle)
	}

	cfg.ShellTitle = "Demo Gallery"
	if got := cfg.ShellMarker(); got != "<title>Demo Gallery</title>" {
		t.Errorf("custom marker = %q", got)
	}

	cfg.ShellTitle = ""
	if got := cfg.ShellMarker(); got != "" {
		t.Errorf("disabled marker = %q, want empty", got)
	}
}

func TestValidatePort(t *testing.T) {
	for _, s := range []string{"80", "8080", "65535"} {
		if err := validatePort(s); err != nil {
			t.Errorf("validatePort(%q) = %v", s, err)
		}
	}
	for _, s := range []string{"", "abc", "0", "65536"} {
		if err := validatePort(s); err == nil {
			t.Errorf("validatePort(%q) should fail", s)
		}
	}
}
