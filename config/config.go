// Package config loads the relperf configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/relperf"
	"gopkg.in/yaml.v3"
)

// Config is the top level configuration.
type Config struct {
	Provider  string           `yaml:"provider"`
	Yahoo     YahooConfig      `yaml:"yahoo"`
	EODHD     EODHDConfig      `yaml:"eodhd"`
	Cache     CacheConfig      `yaml:"cache"`
	Dashboard DashboardConfig  `yaml:"dashboard"`
	Universe  relperf.Universe `yaml:"universe"`
}

// YahooConfig configures the Yahoo Finance provider.
type YahooConfig struct {
	BaseURL string `yaml:"base_url"`
}

// EODHDConfig configures the eodhd.com provider.
type EODHDConfig struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Exchange string `yaml:"exchange"`
}

// CacheConfig configures the on disk cache of provider responses.
type CacheConfig struct {
	Enabled *bool  `yaml:"enabled"` // nil means enabled
	Dir     string `yaml:"dir"`
}

// DashboardConfig configures the web dashboard.
type DashboardConfig struct {
	Addr     string `yaml:"addr"`
	TailRows int    `yaml:"tail_rows"`
}

// Providers are the accepted values of the provider key.
var Providers = []string{"yahoo", "eodhd"}

// Default values for optional configuration fields.
const (
	DefaultProvider  = "yahoo"
	DefaultAddr      = ":8080"
	DefaultTailRows  = 5
	DefaultCacheName = "relperf"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return &cfg, nil
}

// LoadWithDefaults loads config and applies default values.
//
// An empty path returns Default().
func LoadWithDefaults(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// CacheEnabled reports whether provider responses are cached on disk.
func (c *Config) CacheEnabled() bool { return c.Cache.Enabled == nil || *c.Cache.Enabled }

func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = defaultCacheDir()
	}
	if c.Dashboard.Addr == "" {
		c.Dashboard.Addr = DefaultAddr
	}
	if c.Dashboard.TailRows == 0 {
		c.Dashboard.TailRows = DefaultTailRows
	}

	// an empty universe is the built-in one, a partial universe only gets missing defaults
	u := &c.Universe
	if len(u.References) == 0 && len(u.Comparisons) == 0 {
		*u = relperf.DefaultUniverse()
		return
	}
	if u.DefaultReference == "" && len(u.References) > 0 {
		u.DefaultReference = u.References[0]
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, DefaultCacheName)
}

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	switch c.Provider {
	case "yahoo":
	case "eodhd":
		if c.EODHD.APIKey == "" {
			return errors.New("eodhd.api_key is required with provider eodhd")
		}
	default:
		return fmt.Errorf("provider must be one of %v, got %q", Providers, c.Provider)
	}
	if c.Dashboard.TailRows < 1 {
		return fmt.Errorf("dashboard.tail_rows must be >= 1, got %d", c.Dashboard.TailRows)
	}
	if err := c.Universe.Validate(); err != nil {
		return fmt.Errorf("universe: %w", err)
	}
	return nil
}
