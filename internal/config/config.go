// Package config provides configuration for vibe-search.
// Configuration is layered: built-in defaults, then an optional
// .vibe-search.yaml in the project root, then VIBESEARCH_* environment
// variables (highest priority).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the per-project configuration file.
const ConfigFileName = ".vibe-search.yaml"

// Config represents the complete vibe-search configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Index   IndexConfig   `yaml:"index" json:"index"`
	Search  SearchConfig  `yaml:"search" json:"search"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Watcher WatcherConfig `yaml:"watcher" json:"watcher"`
}

// IndexConfig configures snapshot placement.
type IndexConfig struct {
	// Dir is the project-relative directory holding the snapshot (default: .vibe).
	Dir string `yaml:"dir" json:"dir"`

	// SnapshotFile is the snapshot file name inside Dir (default: search.index).
	SnapshotFile string `yaml:"snapshot_file" json:"snapshot_file"`
}

// SearchConfig configures query defaults and the response cache.
// Scoring weights are fixed by the engine and deliberately not configurable:
// exact 1.0 / partial 0.3 must stay stable across installs for result parity.
type SearchConfig struct {
	// DefaultLimit is the page size when the caller passes none (default: 10).
	DefaultLimit int `yaml:"default_limit" json:"default_limit"`

	// MaxLimit caps the page size (default: 100).
	MaxLimit int `yaml:"max_limit" json:"max_limit"`

	// CacheSize is the number of query responses kept in the LRU cache.
	// 0 disables caching (default: 256).
	CacheSize int `yaml:"cache_size" json:"cache_size"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level         string `yaml:"level" json:"level"`
	File          string `yaml:"file" json:"file"`
	MaxSizeMB     int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxFiles      int    `yaml:"max_files" json:"max_files"`
	WriteToStderr bool   `yaml:"write_to_stderr" json:"write_to_stderr"`
}

// WatcherConfig configures the external snapshot-change watcher.
type WatcherConfig struct {
	// Enabled turns on fsnotify-based snapshot reloading (default: false;
	// single-writer processes don't need it).
	Enabled bool `yaml:"enabled" json:"enabled"`

	// DebounceMS coalesces rapid snapshot rewrites (default: 250).
	DebounceMS int `yaml:"debounce_ms" json:"debounce_ms"`
}

// Default returns the built-in configuration defaults.
func Default() *Config {
	return &Config{
		Version: 1,
		Index: IndexConfig{
			Dir:          ".vibe",
			SnapshotFile: "search.index",
		},
		Search: SearchConfig{
			DefaultLimit: 10,
			MaxLimit:     100,
			CacheSize:    256,
		},
		Logging: LoggingConfig{
			Level:         "info",
			MaxSizeMB:     10,
			MaxFiles:      5,
			WriteToStderr: true,
		},
		Watcher: WatcherConfig{
			Enabled:    false,
			DebounceMS: 250,
		},
	}
}

// Load builds the effective configuration for a project root.
// A missing config file is not an error; defaults apply.
func Load(projectRoot string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(projectRoot, ConfigFileName)
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies VIBESEARCH_* environment variables.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("VIBESEARCH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("VIBESEARCH_INDEX_DIR"); v != "" {
		c.Index.Dir = v
	}
	if v := os.Getenv("VIBESEARCH_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Search.MaxLimit = n
		}
	}
	if v := os.Getenv("VIBESEARCH_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Search.CacheSize = n
		}
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Index.Dir == "" {
		return fmt.Errorf("index.dir must not be empty")
	}
	if filepath.IsAbs(c.Index.Dir) {
		return fmt.Errorf("index.dir must be project-relative, got %q", c.Index.Dir)
	}
	if c.Index.SnapshotFile == "" {
		return fmt.Errorf("index.snapshot_file must not be empty")
	}
	if c.Search.DefaultLimit <= 0 {
		return fmt.Errorf("search.default_limit must be positive, got %d", c.Search.DefaultLimit)
	}
	if c.Search.MaxLimit < c.Search.DefaultLimit {
		return fmt.Errorf("search.max_limit (%d) must be >= search.default_limit (%d)",
			c.Search.MaxLimit, c.Search.DefaultLimit)
	}
	if c.Search.CacheSize < 0 {
		return fmt.Errorf("search.cache_size must not be negative, got %d", c.Search.CacheSize)
	}
	if c.Watcher.DebounceMS < 0 {
		return fmt.Errorf("watcher.debounce_ms must not be negative, got %d", c.Watcher.DebounceMS)
	}
	return nil
}

// SnapshotPath returns the snapshot file path for a project root.
func (c *Config) SnapshotPath(projectRoot string) string {
	return filepath.Join(projectRoot, c.Index.Dir, c.Index.SnapshotFile)
}

// Save writes the configuration to the project's config file.
func (c *Config) Save(projectRoot string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	path := filepath.Join(projectRoot, ConfigFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
