// Package config provides configuration loading for seamcarve-mcp.
// Values come from built-in defaults, then an optional YAML file, then
// SEAMCARVE_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/seamcarve-mcp/internal/carve"
	"github.com/ironsheep/seamcarve-mcp/internal/imaging"
)

// Environment variables read by ApplyEnv.
const (
	EnvConfigPath = "SEAMCARVE_CONFIG"
	EnvLogLevel   = "SEAMCARVE_LOG_LEVEL"
	EnvWorkers    = "SEAMCARVE_WORKERS"
	EnvBands      = "SEAMCARVE_BANDS"
	EnvStrategy   = "SEAMCARVE_STRATEGY"
)

// DefaultBands is the number of seams removed per pass when neither the
// caller nor the configuration picks one.
const DefaultBands = 8

// Config represents the application configuration loaded from YAML
type Config struct {
	// Carving defaults, used when a request or command line leaves them out
	Carve struct {
		// Bands is the number of seams removed per pass (K)
		Bands int `yaml:"bands"`

		// Strategy schedules the cost pass: "rows" or "tiled"
		Strategy string `yaml:"strategy"`

		// StripHeight is the strip height of the tiled strategy
		StripHeight int `yaml:"stripHeight"`
	} `yaml:"carve"`

	// Processing parameters
	Processing struct {
		// Workers is the size of the shared worker pool
		Workers int `yaml:"workers"`

		// MaxConcurrentFiles bounds how many inputs the CLI carves at once
		MaxConcurrentFiles int `yaml:"maxConcurrentFiles"`
	} `yaml:"processing"`

	// Output parameters
	Output struct {
		// SeamColor is the "#RRGGBB" highlight of seam overlays
		SeamColor string `yaml:"seamColor"`
	} `yaml:"output"`

	Log struct {
		// Level is "info" or "debug"
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Carve.Bands = DefaultBands
	cfg.Carve.Strategy = carve.RowSequential.String()
	cfg.Carve.StripHeight = carve.DefaultStripHeight

	cfg.Processing.Workers = runtime.GOMAXPROCS(0)
	cfg.Processing.MaxConcurrentFiles = 2

	cfg.Output.SeamColor = imaging.DefaultSeamColor

	cfg.Log.Level = "info"

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the path is empty or the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if configPath == "" {
		return cfg, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}

// ApplyEnv overrides fields from SEAMCARVE_* variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvStrategy); ok && v != "" {
		c.Carve.Strategy = v
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvWorkers, err)
		}
		c.Processing.Workers = n
	}
	if v, ok := lookup(EnvBands); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvBands, err)
		}
		c.Carve.Bands = n
	}
	return nil
}

// Validate checks value ranges. Workers of zero or less mean GOMAXPROCS.
func (c *Config) Validate() error {
	if _, err := carve.ParseStrategy(c.Carve.Strategy); err != nil {
		return fmt.Errorf("carve.strategy: %w", err)
	}
	if c.Carve.Bands < 1 {
		return fmt.Errorf("carve.bands must be at least 1, got %d", c.Carve.Bands)
	}
	if c.Carve.StripHeight < 1 {
		return fmt.Errorf("carve.stripHeight must be at least 1, got %d", c.Carve.StripHeight)
	}
	if c.Processing.MaxConcurrentFiles < 1 {
		return fmt.Errorf("processing.maxConcurrentFiles must be at least 1, got %d", c.Processing.MaxConcurrentFiles)
	}
	if _, err := imaging.ParseSeamColor(c.Output.SeamColor); err != nil {
		return fmt.Errorf("output.seamColor: %w", err)
	}
	switch strings.ToLower(c.Log.Level) {
	case "info", "debug":
	default:
		return fmt.Errorf("log.level must be info or debug, got %q", c.Log.Level)
	}
	return nil
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return strings.EqualFold(c.Log.Level, "debug")
}

// Strategy returns the parsed carve strategy. Call Validate first.
func (c *Config) Strategy() carve.Strategy {
	s, _ := carve.ParseStrategy(c.Carve.Strategy)
	return s
}

// Load reads configPath (which may be empty), applies the environment and
// validates the result.
func Load(configPath string) (*Config, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
