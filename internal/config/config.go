// Package config holds all worldvault configuration.
// Configuration lives in a single YAML file under the user config directory
// (~/.config/worldvault/config.yaml on Linux) and is the single source of
// truth for provider toggles, custom save locations, and backup behavior.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all worldvault configuration.
type Config struct {
	// World provider toggles
	Providers ProvidersConfig `yaml:"providers"`

	// Extra save locations scanned in addition to the standard ones
	CustomPaths CustomPathsConfig `yaml:"custom_paths"`

	// UI settings
	Appearance AppearanceConfig `yaml:"appearance"`

	// Backup behavior
	Backups BackupsConfig `yaml:"backups"`

	// Release update checks
	Updates UpdatesConfig `yaml:"updates"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ProvidersConfig enables or disables world discovery per platform.
type ProvidersConfig struct {
	Java    bool `yaml:"java"`
	Bedrock bool `yaml:"bedrock"`
}

// CustomPathsConfig lists user-supplied saves directories per platform.
type CustomPathsConfig struct {
	Java    []string `yaml:"java"`
	Bedrock []string `yaml:"bedrock"`
}

// AppearanceConfig configures the TUI.
type AppearanceConfig struct {
	Theme    string `yaml:"theme"`    // light, dark
	Language string `yaml:"language"` // en, es
}

// BackupsConfig configures archive creation and retention.
type BackupsConfig struct {
	// Where archives are written when no destination is given explicitly
	DefaultDestination string `yaml:"default_destination"`

	// Deflate level passed to the ZIP writer (0 = store, 9 = max)
	CompressLevel int `yaml:"compress_level"`

	// Archives to keep in the destination; oldest pruned first (0 = unlimited)
	MaxBackups int `yaml:"max_backups"`

	// Also stage the screenshots folder next to the worlds
	IncludeScreenshots bool `yaml:"include_screenshots"`

	// Days without a backup before the history listing warns (0 = never)
	AutoBackupIntervalDays int `yaml:"auto_backup_interval_days"`
}

// UpdatesConfig configures the GitHub release check.
type UpdatesConfig struct {
	CheckUpdates bool   `yaml:"check_updates"`
	LastCheck    string `yaml:"last_check"` // RFC3339, empty when never checked
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
	File   string `yaml:"file"`   // empty = stderr only
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Providers: ProvidersConfig{
			Java:    true,
			Bedrock: true,
		},
		CustomPaths: CustomPathsConfig{
			Java:    []string{},
			Bedrock: []string{},
		},
		Appearance: AppearanceConfig{
			Theme:    "dark",
			Language: "en",
		},
		Backups: BackupsConfig{
			DefaultDestination:     "",
			CompressLevel:          6,
			MaxBackups:             10,
			IncludeScreenshots:     false,
			AutoBackupIntervalDays: 30,
		},
		Updates: UpdatesConfig{
			CheckUpdates: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "worldvault.log",
		},
	}
}

// DefaultPath returns the standard config file location for this user.
// WORLDVAULT_CONFIG overrides it.
func DefaultPath() (string, error) {
	if p := os.Getenv("WORLDVAULT_CONFIG"); p != "" {
		return p, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(base, "worldvault", "config.yaml"), nil
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults. A file that fails to parse is moved
// aside to <path>.bak and defaults are returned, so a corrupt config never
// blocks the tool from starting.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		_ = os.Rename(path, path+".bak")
		cfg = DefaultConfig()
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dest := os.Getenv("WORLDVAULT_DEST"); dest != "" {
		c.Backups.DefaultDestination = dest
	}
	if level := os.Getenv("WORLDVAULT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Get returns the value at a dotted key path, e.g. "backups.max_backups".
func (c *Config) Get(key string) (any, error) {
	node, err := c.asMap()
	if err != nil {
		return nil, err
	}

	var value any = node
	for _, part := range strings.Split(key, ".") {
		m, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unknown config key: %s", key)
		}
		value, ok = m[part]
		if !ok {
			return nil, fmt.Errorf("unknown config key: %s", key)
		}
	}
	return value, nil
}

// Set stores a value at a dotted key path. The string value is coerced to
// the existing field's type (bool, int, string, or string list).
func (c *Config) Set(key, value string) error {
	current, err := c.Get(key)
	if err != nil {
		return err
	}

	var coerced any
	switch current.(type) {
	case bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects a boolean: %w", key, err)
		}
		coerced = b
	case int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s expects an integer: %w", key, err)
		}
		coerced = n
	case []any:
		parts := strings.Split(value, ",")
		list := make([]any, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, p)
			}
		}
		coerced = list
	default:
		coerced = value
	}

	node, err := c.asMap()
	if err != nil {
		return err
	}

	parts := strings.Split(key, ".")
	m := node
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			return fmt.Errorf("unknown config key: %s", key)
		}
		m = next
	}
	m[parts[len(parts)-1]] = coerced

	data, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Errorf("failed to re-encode config: %w", err)
	}
	return yaml.Unmarshal(data, c)
}

// asMap round-trips the config through YAML into a generic map so dotted
// key access matches the on-disk key names exactly.
func (c *Config) asMap() (map[string]any, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	node := map[string]any{}
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return node, nil
}
