package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/relperf"
	"github.com/google/go-cmp/cmp"
)

func TestLoad(t *testing.T) {
	yaml := `
provider: eodhd
eodhd:
  api_key: abc
  base_url: http://localhost:1234/api
dashboard:
  addr: 127.0.0.1:9000
universe:
  references: [SPY, QQQ]
  comparisons: [GLD]
  default_reference: QQQ
  default_comparisons: [GLD]
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Provider != "eodhd" {
		t.Errorf("Provider = %q, want %q", cfg.Provider, "eodhd")
	}
	if cfg.EODHD.BaseURL != "http://localhost:1234/api" {
		t.Errorf("EODHD.BaseURL = %q, want %q", cfg.EODHD.BaseURL, "http://localhost:1234/api")
	}
	if cfg.Dashboard.Addr != "127.0.0.1:9000" {
		t.Errorf("Dashboard.Addr = %q, want %q", cfg.Dashboard.Addr, "127.0.0.1:9000")
	}
	want := relperf.Universe{
		References:         []relperf.Ticker{"SPY", "QQQ"},
		Comparisons:        []relperf.Ticker{"GLD"},
		DefaultReference:   "QQQ",
		DefaultComparisons: []relperf.Ticker{"GLD"},
	}
	if diff := cmp.Diff(want, cfg.Universe); diff != "" {
		t.Errorf("Universe mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_EODHD_KEY", "secret123")

	path := writeTempFile(t, "provider: eodhd\neodhd:\n  api_key: ${TEST_EODHD_KEY}\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.EODHD.APIKey != "secret123" {
		t.Errorf("EODHD.APIKey = %q, want %q", cfg.EODHD.APIKey, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, "cache:\n  enabled: false\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}
	if cfg.Provider != DefaultProvider {
		t.Errorf("Provider = %q, want %q", cfg.Provider, DefaultProvider)
	}
	if cfg.Dashboard.Addr != DefaultAddr {
		t.Errorf("Dashboard.Addr = %q, want %q", cfg.Dashboard.Addr, DefaultAddr)
	}
	if cfg.Dashboard.TailRows != DefaultTailRows {
		t.Errorf("Dashboard.TailRows = %d, want %d", cfg.Dashboard.TailRows, DefaultTailRows)
	}
	if cfg.CacheEnabled() {
		t.Errorf("CacheEnabled() = true, want false")
	}
	if !strings.HasSuffix(cfg.Cache.Dir, DefaultCacheName) {
		t.Errorf("Cache.Dir = %q, want a %q folder", cfg.Cache.Dir, DefaultCacheName)
	}
	if diff := cmp.Diff(relperf.DefaultUniverse(), cfg.Universe); diff != "" {
		t.Errorf("Universe mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWithDefaultsNoFile(t *testing.T) {
	cfg, err := LoadWithDefaults("")
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}
	if !cfg.CacheEnabled() {
		t.Errorf("CacheEnabled() = false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeTempFile(t, "provider: [yahoo\n")
	if _, err := Load(path); err == nil {
		t.Error("Load() of invalid yaml should fail")
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unknown provider", func(c *Config) { c.Provider = "bloomberg" }, "provider must be one of"},
		{"eodhd without key", func(c *Config) { c.Provider = "eodhd" }, "eodhd.api_key is required"},
		{"eodhd with key", func(c *Config) { c.Provider = "eodhd"; c.EODHD.APIKey = "k" }, ""},
		{"tail rows", func(c *Config) { c.Dashboard.TailRows = -1 }, "dashboard.tail_rows"},
		{"default reference", func(c *Config) { c.Universe.DefaultReference = "FOO" }, "universe"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)
			err := cfg.Validate()
			switch {
			case tc.wantErr == "" && err != nil:
				t.Errorf("Validate() unexpected error: %v", err)
			case tc.wantErr != "" && err == nil:
				t.Errorf("Validate() = nil, want error containing %q", tc.wantErr)
			case tc.wantErr != "" && !strings.Contains(err.Error(), tc.wantErr):
				t.Errorf("Validate() = %v, want error containing %q", err, tc.wantErr)
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
