package config

import (
	"fmt"
	"os"
	"path/filepath"

	"imgbrowse/internal/errors"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Fallback window bounds used when neither flags nor the config file set
// them. Screen-metric queries are the toolkit's business; these defaults fit
// comfortably on any modern display.
const (
	DefaultMaxCols = 1600
	DefaultMaxRows = 1000
)

// Config represents the application configuration structure.
type Config struct {
	Window struct {
		Cols uint `yaml:"cols"` // Maximum display width in pixels (0 = fallback)
		Rows uint `yaml:"rows"` // Maximum display height in pixels (0 = fallback)
	} `yaml:"window"`
	Viewer struct {
		AllowUpscale bool   `yaml:"allow_upscale"` // Enlarge images smaller than the window
		Filter       string `yaml:"filter"`        // Resample filter: nearest, bilinear, bicubic, lanczos2, lanczos3
	} `yaml:"viewer"`
	Scan struct {
		Match string `yaml:"match"` // Glob applied to file base names ("" = all files)
	} `yaml:"scan"`
	WatchMode struct {
		Enabled bool `yaml:"enabled"` // Pick up files created while browsing
	} `yaml:"watch_mode"`
	Settings struct {
		Debug bool `yaml:"debug"` // Debug logging
	} `yaml:"settings"`
}

// validFilters are the resample filter names Validate accepts.
var validFilters = map[string]bool{
	"nearest":  true,
	"bilinear": true,
	"bicubic":  true,
	"lanczos2": true,
	"lanczos3": true,
}

// New creates a configuration with default values.
func New() *Config {
	cfg := &Config{}
	cfg.Viewer.AllowUpscale = true // Matches the historic fit behavior
	cfg.Viewer.Filter = "lanczos3"
	return cfg
}

// LoadConfig loads configuration from the default location
// (~/.config/imgbrowse/config.yaml). A missing file yields defaults; only
// an explicitly requested file is required to exist.
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "imgbrowse", "config.yaml")
	cfg, err := LoadConfigFile(configPath)
	if errors.IsConfigNotFound(err) {
		return New(), nil
	}
	return cfg, err
}

// LoadConfigFile loads configuration from a specific file path.
func LoadConfigFile(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError("config file not found", path, errors.ConfigNotFound, err)
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	if !validFilters[c.Viewer.Filter] {
		return fmt.Errorf("invalid resample filter: %s", c.Viewer.Filter)
	}

	if c.Scan.Match != "" {
		if _, err := glob.Compile(c.Scan.Match); err != nil {
			return fmt.Errorf("invalid scan match pattern %q: %w", c.Scan.Match, err)
		}
	}

	return nil
}

// Bounds resolves the maximum display width and height. Explicit flag values
// win over the config file; zero anywhere falls back to the fixed defaults.
func (c *Config) Bounds(cols, rows uint) (maxCols, maxRows int) {
	if cols == 0 {
		cols = c.Window.Cols
	}
	if rows == 0 {
		rows = c.Window.Rows
	}
	if cols == 0 {
		cols = DefaultMaxCols
	}
	if rows == 0 {
		rows = DefaultMaxRows
	}
	return int(cols), int(rows)
}
