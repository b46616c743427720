// Package config loads the aide configuration file and resolves the Gemini
// API key from the environment or the OS keyring.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file is absent or partial.
const (
	DefaultModel          = "gemini-2.0-flash"
	DefaultContextWindow  = 262144
	DefaultCommandTimeout = 300
	DefaultMaxSteps       = 20
)

// Config holds all aide configuration.
type Config struct {
	// Model is the Gemini model used for every call.
	Model string `yaml:"model"`

	// Theme selects the console personality (default, mono, sakura).
	Theme string `yaml:"theme"`

	// ContextWindow is the model context size in tokens, used by the
	// budget allocator.
	ContextWindow int `yaml:"context_window"`

	// CommandTimeoutSeconds bounds each shell command run by the agent.
	CommandTimeoutSeconds int `yaml:"command_timeout_seconds"`

	// MaxSteps bounds the agent loop per task.
	MaxSteps int `yaml:"max_steps"`

	// APIKey is only ever read for migration into the keyring; Save
	// scrubs it from the file.
	APIKey string `yaml:"api_key,omitempty"`
}

// Default returns a fully populated default configuration.
func Default() *Config {
	return &Config{
		Model:                 DefaultModel,
		Theme:                 "default",
		ContextWindow:         DefaultContextWindow,
		CommandTimeoutSeconds: DefaultCommandTimeout,
		MaxSteps:              DefaultMaxSteps,
	}
}

// Dir returns the aide config directory, creating it if needed.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	dir := filepath.Join(base, "aide")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating config dir: %w", err)
	}
	return dir, nil
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config at path, layering file values over defaults.
// A missing file yields the defaults without error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config to path. The API key never lands on disk.
func (c *Config) Save(path string) error {
	clean := *c
	clean.APIKey = ""

	data, err := yaml.Marshal(&clean)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Theme == "" {
		c.Theme = "default"
	}
	if c.ContextWindow <= 0 {
		c.ContextWindow = DefaultContextWindow
	}
	if c.CommandTimeoutSeconds <= 0 {
		c.CommandTimeoutSeconds = DefaultCommandTimeout
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = DefaultMaxSteps
	}
}
