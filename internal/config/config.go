// Package config loads the lazytree configuration from a YAML file with
// environment-variable overrides, and owns the global zerolog logger.
//
// Precedence, highest first: CLI flags (applied by the caller), environment
// variables, config file, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/lazytree/internal/cache"
	"github.com/rshade/lazytree/internal/engine"
)

// Environment variables recognized as overrides.
const (
	// EnvCacheTTL overrides cache.ttl (a Go duration string, e.g. "5m").
	EnvCacheTTL = "LAZYTREE_CACHE_TTL"

	// EnvStaleWindow overrides tree.stale_window.
	EnvStaleWindow = "LAZYTREE_STALE_WINDOW"

	// EnvLogLevel overrides logging.level.
	EnvLogLevel = "LAZYTREE_LOG_LEVEL"
)

// configDirName is the per-user directory holding the config file.
const configDirName = ".lazytree"

// configFileName is the default config file name inside configDirName.
const configFileName = "config.yaml"

// CacheConfig configures the children cache.
type CacheConfig struct {
	// TTL is the default entry lifetime as a Go duration string.
	TTL string `yaml:"ttl,omitempty"`
}

// TreeConfig configures the expansion-decision layer.
type TreeConfig struct {
	// StaleWindow is how long a successful fetch stays fresh, as a Go
	// duration string.
	StaleWindow string `yaml:"stale_window,omitempty"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	// Level is a zerolog level name (trace, debug, info, warn, error).
	Level string `yaml:"level,omitempty"`

	// File, when set, receives logs in addition to stderr.
	File string `yaml:"file,omitempty"`
}

// Config is the full lazytree configuration.
type Config struct {
	Cache   CacheConfig   `yaml:"cache,omitempty"`
	Tree    TreeConfig    `yaml:"tree,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache:   CacheConfig{TTL: cache.DefaultTTL.String()},
		Tree:    TreeConfig{StaleWindow: engine.DefaultStaleWindow.String()},
		Logging: LoggingConfig{Level: "info"},
	}
}

// DefaultPath returns the default config file location
// ($HOME/.lazytree/config.yaml), or empty when no home directory is known.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDirName, configFileName)
}

// Load reads the config file at path (DefaultPath when empty), applies
// environment overrides, and validates duration fields. A missing file is
// not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Defaults apply.
		case err != nil:
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %q: %w", path, err)
			}
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvCacheTTL); v != "" {
		cfg.Cache.TTL = v
	}
	if v := os.Getenv(EnvStaleWindow); v != "" {
		cfg.Tree.StaleWindow = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
}

func (c Config) validate() error {
	if c.Cache.TTL != "" {
		if d, err := time.ParseDuration(c.Cache.TTL); err != nil || d <= 0 {
			return fmt.Errorf("invalid cache.ttl %q", c.Cache.TTL)
		}
	}
	if c.Tree.StaleWindow != "" {
		if d, err := time.ParseDuration(c.Tree.StaleWindow); err != nil || d <= 0 {
			return fmt.Errorf("invalid tree.stale_window %q", c.Tree.StaleWindow)
		}
	}
	return nil
}

// CacheTTL returns the configured cache TTL, falling back to the cache
// package default when unset.
func (c Config) CacheTTL() time.Duration {
	if c.Cache.TTL == "" {
		return cache.DefaultTTL
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return cache.DefaultTTL
	}
	return d
}

// StaleWindow returns the configured stale window, falling back to the
// engine default when unset.
func (c Config) StaleWindow() time.Duration {
	if c.Tree.StaleWindow == "" {
		return engine.DefaultStaleWindow
	}
	d, err := time.ParseDuration(c.Tree.StaleWindow)
	if err != nil {
		return engine.DefaultStaleWindow
	}
	return d
}
