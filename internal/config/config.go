package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigDir  = ".config/traytoggle"
	DefaultConfigFile = "config.json"
)

// Config holds the merged application records, keyed by the name used on
// the command line.
type Config struct {
	Apps map[string]AppConfig
}

// Load loads configuration from the specified path or the default location.
// User entries override built-in defaults by key; new keys extend the set.
// An empty path with no config file present yields the defaults alone.
// Supports both .json and .yaml extensions.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		// Try JSON first, then YAML
		jsonPath := filepath.Join(home, DefaultConfigDir, "config.json")
		yamlPath := filepath.Join(home, DefaultConfigDir, "config.yaml")

		if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		} else if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		}
	}

	cfg := &Config{Apps: DefaultApps()}
	if path == "" {
		cfg.finalize()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			cfg.finalize()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	user, err := parse(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, err
	}
	for key, app := range user {
		cfg.Apps[key] = app
	}

	cfg.finalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// parse decodes a flat key-to-record mapping in the given format.
func parse(data []byte, ext string) (map[string]AppConfig, error) {
	apps := make(map[string]AppConfig)
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &apps); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &apps); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	return apps, nil
}

// finalize applies pattern defaulting to every record.
func (c *Config) finalize() {
	for key, app := range c.Apps {
		app.applyDefaults()
		c.Apps[key] = app
	}
}

// Validate checks every application record.
func (c *Config) Validate() error {
	if len(c.Apps) == 0 {
		return fmt.Errorf("no applications configured")
	}
	for key, app := range c.Apps {
		if err := app.Validate(); err != nil {
			return fmt.Errorf("entry %q: %w", key, err)
		}
	}
	return nil
}

// Get returns the record for an application key.
func (c *Config) Get(key string) (AppConfig, bool) {
	app, ok := c.Apps[key]
	return app, ok
}

// Keys returns the application keys in sorted order.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.Apps))
	for k := range c.Apps {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// WriteDefault writes the built-in defaults as an indented JSON config file.
func WriteDefault(path string) error {
	data, err := json.MarshalIndent(DefaultApps(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode default config: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
