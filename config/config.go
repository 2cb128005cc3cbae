package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Config holds all configuration parameters of the heap store and its tools
type Config struct {
	HeapFile struct {
		Path string `json:"path"`
	} `json:"heap_file"`

	Cache struct {
		CapacityPages int  `json:"capacity_pages"` // 0 disables the page cache
		Metrics       bool `json:"metrics"`
	} `json:"cache"`

	Log struct {
		Level  string `json:"level"`  // trace, debug, info, warn, error
		Format string `json:"format"` // "console" or "json"
		Output string `json:"output"` // empty for stderr, or a file path
	} `json:"log"`
}

// Default returns the default configuration values
func Default() *Config {
	cfg := &Config{}

	cfg.HeapFile.Path = "heap.db"

	// cache is opt-in; pages are read straight from the file unless configured
	cfg.Cache.CapacityPages = 0
	cfg.Cache.Metrics = true

	cfg.Log.Level = "info"
	cfg.Log.Format = "console"
	cfg.Log.Output = ""

	return cfg
}

// Load reads a JSON config file on top of the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as indented JSON, creating the parent directory if needed
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate performs basic validation on config values
func (c *Config) Validate() error {
	if c.HeapFile.Path == "" {
		return fmt.Errorf("heap_file.path cannot be empty")
	}
	if c.Cache.CapacityPages < 0 {
		return fmt.Errorf("cache.capacity_pages must not be negative")
	}

	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of: trace, debug, info, warn, error")
	}

	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be either 'console' or 'json'")
	}

	return nil
}
