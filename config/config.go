// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Library string        `yaml:"library"`
	Source  SourceConfig  `yaml:"source"`
	Docs    DocsConfig    `yaml:"docs"`
	Cache   CacheConfig   `yaml:"cache"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// SourceConfig configures the descriptor source.
type SourceConfig struct {
	ManifestDir string `yaml:"manifest_dir"`
}

// DocsConfig configures the scraped documentation pages.
type DocsConfig struct {
	ModelsURL string        `yaml:"models_url"`
	LlmsURL   string        `yaml:"llms_url"`
	Timeout   time.Duration `yaml:"timeout"`
}

// CacheConfig configures the on-disk document cache.
type CacheConfig struct {
	Dir   string `yaml:"dir"`
	Force bool   `yaml:"force"` // refetch even when a cached file exists
}

// OutputConfig configures where tables are written.
type OutputConfig struct {
	Dir  string     `yaml:"dir"`
	Tree TreeConfig `yaml:"tree"`
}

// TreeConfig configures the grouped catalog tree.
type TreeConfig struct {
	GroupBy []string `yaml:"group_by"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv creates configuration entirely from environment
// variables. Useful for container runs where no config file is
// mounted.
//
// Environment variables:
//
//	MODELCAT_MANIFEST_DIR  - Descriptor manifest directory (required)
//	MODELCAT_LIBRARY       - Target library name
//	MODELCAT_MODELS_URL    - Documentation models page URL
//	MODELCAT_LLMS_URL      - Documentation plaintext index URL
//	MODELCAT_DOCS_TIMEOUT  - Fetch timeout (default: 30s)
//	MODELCAT_CACHE_DIR     - Document cache directory
//	MODELCAT_FORCE_REFRESH - Refetch cached documents (default: false)
//	MODELCAT_OUTPUT_DIR    - Output directory (default: out)
//	MODELCAT_LOG_LEVEL     - Log level (default: info)
//	MODELCAT_LOG_FORMAT    - Log format: json or console (default: console)
func LoadFromEnv() (*Config, error) {
	var cfg Config

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadWithFallback tries to load from file, falls back to environment
// variables.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	if os.Getenv("MODELCAT_MANIFEST_DIR") != "" {
		return LoadFromEnv()
	}

	return nil, fmt.Errorf("no configuration found: provide config file or set MODELCAT_MANIFEST_DIR")
}

// applyEnvOverrides applies MODELCAT_* environment variables to the
// config. Environment variables always override file-based
// configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MODELCAT_LIBRARY"); v != "" {
		cfg.Library = v
	}
	if v := os.Getenv("MODELCAT_MANIFEST_DIR"); v != "" {
		cfg.Source.ManifestDir = v
	}
	if v := os.Getenv("MODELCAT_MODELS_URL"); v != "" {
		cfg.Docs.ModelsURL = v
	}
	if v := os.Getenv("MODELCAT_LLMS_URL"); v != "" {
		cfg.Docs.LlmsURL = v
	}
	if v := os.Getenv("MODELCAT_DOCS_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Docs.Timeout = d
		}
	}
	if v := os.Getenv("MODELCAT_CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("MODELCAT_FORCE_REFRESH"); v != "" {
		cfg.Cache.Force = parseBool(v)
	}
	if v := os.Getenv("MODELCAT_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("MODELCAT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MODELCAT_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Library == "" {
		cfg.Library = "neuralforecast"
	}
	if cfg.Docs.ModelsURL == "" {
		cfg.Docs.ModelsURL = "https://nixtlaverse.nixtla.io/neuralforecast/models.html"
	}
	if cfg.Docs.LlmsURL == "" {
		cfg.Docs.LlmsURL = "https://nixtlaverse.nixtla.io/llms.txt"
	}
	if cfg.Docs.Timeout == 0 {
		cfg.Docs.Timeout = 30 * time.Second
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = ".modelcat-cache"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "out"
	}
	if len(cfg.Output.Tree.GroupBy) == 0 {
		cfg.Output.Tree.GroupBy = []string{"library", "namespace", "kind", "family"}
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validate(cfg *Config) error {
	var errs []string

	if cfg.Source.ManifestDir == "" {
		errs = append(errs, "source.manifest_dir is required")
	}
	if cfg.Docs.ModelsURL == "" {
		errs = append(errs, "docs.models_url is required")
	}
	if cfg.Docs.LlmsURL == "" {
		errs = append(errs, "docs.llms_url is required")
	}
	if cfg.Docs.Timeout < 0 {
		errs = append(errs, "docs.timeout must not be negative")
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level %q must be debug, info, warn, or error", cfg.Logging.Level))
	}
	switch cfg.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("logging.format %q must be json or console", cfg.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
