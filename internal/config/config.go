// Package config loads hive configuration: defaults, then ~/.hive/config.yaml,
// then HIVE_* environment variables, highest precedence last.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the flat hive configuration.
type Config struct {
	// DBPath is the SQLite database location shared by all agent processes.
	DBPath string `yaml:"db_path" env:"HIVE_DB_PATH"`

	// Agent is this process's participant identifier.
	Agent string `yaml:"agent" env:"HIVE_AGENT"`

	// DefaultPriority is used when a send omits --priority.
	DefaultPriority string `yaml:"default_priority" env:"HIVE_PRIORITY"`

	// DeskInterval is the desk-mode polling interval, as a duration string
	// ("30s", "2m"). Kept as text so the yaml form stays human-editable.
	DeskInterval string `yaml:"desk_interval" env:"HIVE_DESK_INTERVAL"`
}

// DeskEvery parses the desk polling interval.
func (c *Config) DeskEvery() (time.Duration, error) {
	d, err := time.ParseDuration(c.DeskInterval)
	if err != nil {
		return 0, fmt.Errorf("desk_interval %q: %w", c.DeskInterval, err)
	}
	return d, nil
}

// Dir returns the hive data directory (~/.hive).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".hive"), nil
}

// Load resolves the effective configuration. A missing config file is not
// an error; defaults and environment still apply.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DBPath:          filepath.Join(dir, "hive.db"),
		DefaultPriority: "medium",
		DeskInterval:    "30s",
	}

	if data, err := os.ReadFile(filepath.Join(dir, "config.yaml")); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config.yaml: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to dir/config.yaml.
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
