package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey is returned when the search API key is not in the environment
var ErrMissingAPIKey = errors.New("api key not found in environment variables")

// AppConfig holds the complete application configuration
type AppConfig struct {
	Debug   bool          `yaml:"debug"`
	Search  SearchConfig  `yaml:"search"`
	IO      IOConfig      `yaml:"io"`
	Titles  TitleConfig   `yaml:"titles"`
	Proxies ProxyConfig   `yaml:"proxies"`
	Browser BrowserConfig `yaml:"browser"`
}

// SearchConfig holds the similarity search configuration
type SearchConfig struct {
	BaseURL             string        `yaml:"base_url"`
	APIKeyEnv           string        `yaml:"api_key_env"`
	NumResults          int           `yaml:"num_results"`
	RecencyDays         int           `yaml:"recency_days"`
	PublishedWithinDays *int          `yaml:"published_within_days"`
	ExcludeSourceDomain *bool         `yaml:"exclude_source_domain"`
	Timeout             time.Duration `yaml:"timeout"`
}

// ExcludeSourceDomainOrDefault returns whether same-domain results are dropped; defaults to true when unset.
func (s *SearchConfig) ExcludeSourceDomainOrDefault() bool {
	if s.ExcludeSourceDomain != nil {
		return *s.ExcludeSourceDomain
	}
	return true
}

// PublishedWithinDaysOrDefault returns the publication window in days; 0 disables the filter.
func (s *SearchConfig) PublishedWithinDaysOrDefault() int {
	if s.PublishedWithinDays != nil && *s.PublishedWithinDays >= 0 {
		return *s.PublishedWithinDays
	}
	return DefaultPublishedWithinDays
}

// IOConfig holds the input/output configuration
type IOConfig struct {
	Seeds    []string `yaml:"seeds"`
	SeedFile string   `yaml:"seed_file"`
	LogFile  string   `yaml:"log_file"`
}

// TitleConfig controls filling in empty result titles from the result page
type TitleConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Selectors []string      `yaml:"selectors"`
	Timeout   time.Duration `yaml:"timeout"`
}

// ProxyConfig holds the proxy configuration
type ProxyConfig struct {
	Enabled bool     `yaml:"enabled"`
	Rotate  bool     `yaml:"rotate"`
	List    []string `yaml:"list"`
	Auth    struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"auth"`
}

// BrowserConfig holds the browser configuration used for title resolution
type BrowserConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Headless  *bool         `yaml:"headless"`
	UserAgent string        `yaml:"user_agent"`
	WaitTime  time.Duration `yaml:"wait_time"`
}

// HeadlessOrDefault returns whether the browser runs headless; defaults to true when unset.
func (b *BrowserConfig) HeadlessOrDefault() bool {
	if b.Headless != nil {
		return *b.Headless
	}
	return true
}

// Load loads the configuration from a YAML file and fills unset fields with defaults
func Load(filename string) (*AppConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config AppConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

// Default creates the configuration used when no config file is given
func Default() *AppConfig {
	config := &AppConfig{}
	config.applyDefaults()
	return config
}

func (c *AppConfig) applyDefaults() {
	if c.Search.BaseURL == "" {
		c.Search.BaseURL = DefaultBaseURL
	}
	if c.Search.APIKeyEnv == "" {
		c.Search.APIKeyEnv = DefaultAPIKeyEnv
	}
	if c.Search.NumResults <= 0 {
		c.Search.NumResults = DefaultNumResults
	}
	if c.Search.RecencyDays <= 0 {
		c.Search.RecencyDays = DefaultRecencyDays
	}
	if c.Search.Timeout <= 0 {
		c.Search.Timeout = DefaultSearchTimeout
	}
	if c.IO.LogFile == "" {
		c.IO.LogFile = DefaultLogFile
	}
	if len(c.Titles.Selectors) == 0 {
		c.Titles.Selectors = DefaultTitleSelectors
	}
	if c.Titles.Timeout <= 0 {
		c.Titles.Timeout = DefaultTitleTimeout
	}
	if c.Browser.UserAgent == "" {
		c.Browser.UserAgent = DefaultUserAgents[0]
	}
	if c.Browser.WaitTime <= 0 {
		c.Browser.WaitTime = DefaultBrowserWait
	}
}

// APIKey reads the search API key from the environment
func (c *AppConfig) APIKey() (string, error) {
	key := strings.TrimSpace(os.Getenv(c.Search.APIKeyEnv))
	if key == "" {
		return "", fmt.Errorf("%s not found in environment variables: %w", c.Search.APIKeyEnv, ErrMissingAPIKey)
	}
	return key, nil
}
