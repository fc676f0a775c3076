// Package config holds the session configuration: defaults, the optional
// yaml config file, and validation. Flag values are applied on top by the
// command layer, and the resulting value is passed explicitly into the
// session (no ambient globals).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Config represents the declutter session configuration.
type Config struct {
	History struct {
		Path     string `yaml:"path"`     // History file location
		Disabled bool   `yaml:"disabled"` // Skip history load and save entirely
		NoSave   bool   `yaml:"no_save"`  // Load history but never write it back
	} `yaml:"history"`
	Output struct {
		Quiet   bool `yaml:"quiet"`   // Suppress non-essential output
		Verbose bool `yaml:"verbose"` // Enable debug logging
	} `yaml:"output"`
	Scan struct {
		Recursive bool     `yaml:"recursive"` // Descend into input directories
		Depth     int      `yaml:"depth"`     // Depth bound for descent (0 = unlimited)
		Exclude   []string `yaml:"exclude"`   // Glob patterns filtered during expansion
	} `yaml:"scan"`
	SkipSetup bool `yaml:"skip_setup"` // Skip the initial shortcut dialog
}

// DefaultHistoryPath returns the dotfile used when no history path is
// configured (~/.declutter.json).
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".declutter.json"
	}
	return filepath.Join(home, ".declutter.json")
}

// LoadConfig loads configuration from the default location
// (~/.config/declutter/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(filepath.Join(home, ".config", "declutter", "config.yaml"))
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Merge the loaded config with defaults
	if tempCfg.History.Path != "" {
		cfg.History.Path = tempCfg.History.Path
	}
	cfg.History.Disabled = tempCfg.History.Disabled
	cfg.History.NoSave = tempCfg.History.NoSave
	cfg.Output.Quiet = tempCfg.Output.Quiet
	cfg.Output.Verbose = tempCfg.Output.Verbose
	cfg.Scan.Recursive = tempCfg.Scan.Recursive
	if tempCfg.Scan.Depth > 0 {
		cfg.Scan.Depth = tempCfg.Scan.Depth
	}
	if len(tempCfg.Scan.Exclude) > 0 {
		cfg.Scan.Exclude = tempCfg.Scan.Exclude
	}
	cfg.SkipSetup = tempCfg.SkipSetup

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.History.Path = DefaultHistoryPath()
	cfg.Scan.Exclude = []string{}
	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
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
	if c.History.Path == "" && !c.History.Disabled {
		return fmt.Errorf("history path is required unless history is disabled")
	}
	if c.Scan.Depth < 0 {
		return fmt.Errorf("scan depth must be >= 0")
	}
	for _, pattern := range c.Scan.Exclude {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}
