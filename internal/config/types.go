package config

import "github.com/ziadkadry99/ui-showcase/internal/panel"

// DefaultFile is the config file read when --config is not given.
const DefaultFile = ".showcase.yml"

// Config is the top-level showcase configuration, corresponding to .showcase.yml.
type Config struct {
	Port             int                `yaml:"port" koanf:"port"`
	ContentDir       string             `yaml:"content_dir" koanf:"content_dir"`
	CatalogFile      string             `yaml:"catalog_file" koanf:"catalog_file"`
	Discover         bool               `yaml:"discover" koanf:"discover"`
	DataDir          string             `yaml:"data_dir" koanf:"data_dir"`
	Store            string             `yaml:"store" koanf:"store"`
	ShellTitle       string             `yaml:"shell_title" koanf:"shell_title"`
	AutoplayInterval string             `yaml:"autoplay_interval" koanf:"autoplay_interval"`
	FetchRate        float64            `yaml:"fetch_rate" koanf:"fetch_rate"`
	AllowAllOrigins  bool               `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	LogLevel         string             `yaml:"log_level" koanf:"log_level"`
	Watch            bool               `yaml:"watch" koanf:"watch"`
	Panels           []panel.Definition `yaml:"panels" koanf:"panels"`
}
