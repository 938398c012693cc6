package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/manifoldco/promptui"
)

// contentDirCandidates are directories checked, in order, for existing demos.
var contentDirCandidates = []string{"public", "components", "static", "site"}

// detectContentDir returns the first candidate directory that exists.
func detectContentDir() string {
	for _, dir := range contentDirCandidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "public"
}

const (
	catalogBuiltIn  = "built-in catalog"
	catalogDiscover = "discover components in the content directory"
	catalogFile     = "catalog file (YAML)"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to showcase! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Content directory.
	contentPrompt := promptui.Prompt{
		Label:   "Directory holding the component demos",
		Default: detectContentDir(),
	}
	contentDir, err := contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	cfg.ContentDir = contentDir

	// 2. Catalog source.
	sourcePrompt := promptui.Select{
		Label: "Where should the component catalog come from",
		Items: []string{catalogBuiltIn, catalogDiscover, catalogFile},
	}
	_, source, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("catalog source: %w", err)
	}
	switch source {
	case catalogDiscover:
		cfg.Discover = true
	case catalogFile:
		filePrompt := promptui.Prompt{
			Label:   "Catalog file",
			Default: filepath.Join(contentDir, "catalog.yml"),
		}
		cfg.CatalogFile, err = filePrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("catalog file: %w", err)
		}
	}

	// 3. Port.
	portPrompt := promptui.Prompt{
		Label:    "Port",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 4. Autoplay interval.
	intervalPrompt := promptui.Prompt{
		Label:   "Autoplay interval",
		Default: cfg.AutoplayInterval,
		Validate: func(s string) error {
			d, err := time.ParseDuration(s)
			if err != nil || d <= 0 {
				return errors.New("enter a positive duration such as 3s")
			}
			return nil
		},
	}
	cfg.AutoplayInterval, err = intervalPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("autoplay interval: %w", err)
	}

	if _, err := os.Stat(cfg.ContentDir); os.IsNotExist(err) {
		fmt.Printf("\nNote: %s does not exist yet. Create it before running showcase serve.\n", cfg.ContentDir)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	p, err := strconv.Atoi(s)
	if err != nil || p <= 0 || p > 65535 {
		return errors.New("enter a port between 1 and 65535")
	}
	return nil
}
