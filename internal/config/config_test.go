package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
search:
  num_results: 5
  recency_days: 3
  timeout: 10s
io:
  log_file: "history.json"
  seeds:
    - "https://example.com/a"
    - "https://example.com/b"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Search.NumResults != 5 || cfg.Search.RecencyDays != 3 {
		t.Errorf("unexpected search config: %+v", cfg.Search)
	}
	if cfg.Search.Timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", cfg.Search.Timeout)
	}
	if cfg.IO.LogFile != "history.json" {
		t.Errorf("log_file = %q", cfg.IO.LogFile)
	}
	if len(cfg.IO.Seeds) != 2 {
		t.Errorf("seeds = %v, want 2 entries", cfg.IO.Seeds)
	}
	if cfg.Search.BaseURL != DefaultBaseURL {
		t.Errorf("base_url should default to %q, got %q", DefaultBaseURL, cfg.Search.BaseURL)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_missingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_invalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("search: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Search.NumResults != 10 {
		t.Errorf("num_results = %d, want 10", cfg.Search.NumResults)
	}
	if cfg.Search.RecencyDays != 7 {
		t.Errorf("recency_days = %d, want 7", cfg.Search.RecencyDays)
	}
	if got := cfg.Search.PublishedWithinDaysOrDefault(); got != 30 {
		t.Errorf("published_within_days = %d, want 30", got)
	}
	if !cfg.Search.ExcludeSourceDomainOrDefault() {
		t.Error("exclude_source_domain should default to true")
	}
	if !cfg.Browser.HeadlessOrDefault() {
		t.Error("headless should default to true")
	}
	if cfg.IO.LogFile != "similar_pages_log.json" {
		t.Errorf("log_file = %q", cfg.IO.LogFile)
	}
	if len(cfg.Titles.Selectors) == 0 {
		t.Error("title selectors should have defaults")
	}
}

func TestPublishedWithinDays_zeroDisables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("search:\n  published_within_days: 0\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Search.PublishedWithinDaysOrDefault(); got != 0 {
		t.Errorf("published_within_days = %d, want 0", got)
	}
}

func TestAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Search.APIKeyEnv = "SIMILAR_PAGES_TEST_KEY"

	t.Run("missing key is an error", func(t *testing.T) {
		t.Setenv("SIMILAR_PAGES_TEST_KEY", "")
		_, err := cfg.APIKey()
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Fatalf("APIKey() error = %v, want ErrMissingAPIKey", err)
		}
	})

	t.Run("present key is returned", func(t *testing.T) {
		t.Setenv("SIMILAR_PAGES_TEST_KEY", "secret")
		key, err := cfg.APIKey()
		if err != nil {
			t.Fatal(err)
		}
		if key != "secret" {
			t.Errorf("APIKey() = %q, want secret", key)
		}
	})
}
