package store

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Data source names accepted by news.source / earnings.source
const (
	SourceFinnhub = "FINNHUB"
	SourceRSS     = "RSS"
	SourceScrape  = "SCRAPE"
	SourceMock    = "MOCK"
)

type Config struct {
	News struct {
		Source                string   `yaml:"source"`
		Fallback              []string `yaml:"fallback"`
		LookbackDays          int      `yaml:"lookback_days"`
		MaxArticles           int      `yaml:"max_articles"`
		RSSFeeds              []string `yaml:"rss_feeds"`
		ScraperTimeoutSeconds int      `yaml:"scraper_timeout_seconds"`
	} `yaml:"news"`
	Earnings struct {
		Source     string `yaml:"source"`
		WindowDays int    `yaml:"window_days"`
	} `yaml:"earnings"`
	Finnhub struct {
		BaseURL            string `yaml:"base_url"`
		APIKeyEnv          string `yaml:"api_key_env"`
		TimeoutSeconds     int    `yaml:"timeout_seconds"`
		RateLimitPerSecond int    `yaml:"rate_limit_per_second"`
		Retry              struct {
			MaxAttempts   int `yaml:"max_attempts"`
			InitialWaitMs int `yaml:"initial_wait_ms"`
			MaxWaitMs     int `yaml:"max_wait_ms"`
		} `yaml:"retry"`
	} `yaml:"finnhub"`
	Cache struct {
		Enabled    bool `yaml:"enabled"`
		TTLMinutes int  `yaml:"ttl_minutes"`
	} `yaml:"cache"`
	Server struct {
		Addr string `yaml:"addr"`
		Mode string `yaml:"mode"`
	} `yaml:"server"`
}

// APIKey resolves the Finnhub key from the configured environment variable.
func (c *Config) APIKey() string {
	return os.Getenv(c.Finnhub.APIKeyEnv)
}

func (c *Config) FinnhubTimeout() time.Duration {
	return time.Duration(c.Finnhub.TimeoutSeconds) * time.Second
}

func (c *Config) ScraperTimeout() time.Duration {
	return time.Duration(c.News.ScraperTimeoutSeconds) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}

func validSource(s string, allowed ...string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

func (c *Config) Validate() error {
	newsSources := []string{SourceFinnhub, SourceRSS, SourceScrape, SourceMock}
	if !validSource(c.News.Source, newsSources...) {
		return fmt.Errorf("invalid news.source '%s': must be one of %s", c.News.Source, strings.Join(newsSources, ", "))
	}
	for _, fb := range c.News.Fallback {
		if !validSource(fb, newsSources...) {
			return fmt.Errorf("invalid news.fallback entry '%s'", fb)
		}
	}
	if !validSource(c.Earnings.Source, SourceFinnhub, SourceMock) {
		return fmt.Errorf("invalid earnings.source '%s': must be 'FINNHUB' or 'MOCK'", c.Earnings.Source)
	}
	if c.News.LookbackDays <= 0 {
		return fmt.Errorf("news.lookback_days must be positive, got %d", c.News.LookbackDays)
	}
	if c.Earnings.WindowDays <= 0 {
		return fmt.Errorf("earnings.window_days must be positive, got %d", c.Earnings.WindowDays)
	}
	if c.News.Source == SourceRSS && len(c.News.RSSFeeds) == 0 {
		return fmt.Errorf("news.rss_feeds cannot be empty when news.source is RSS")
	}
	if c.Finnhub.Retry.MaxAttempts < 1 {
		return fmt.Errorf("finnhub.retry.max_attempts must be at least 1, got %d", c.Finnhub.Retry.MaxAttempts)
	}
	return nil
}

// Default returns a config with every default applied, as if loaded from an
// empty file.
func Default() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.News.Source == "" {
		c.News.Source = SourceFinnhub
	}
	if c.News.LookbackDays == 0 {
		c.News.LookbackDays = 7
	}
	if c.News.MaxArticles == 0 {
		c.News.MaxArticles = 15
	}
	if c.News.ScraperTimeoutSeconds == 0 {
		c.News.ScraperTimeoutSeconds = 30
	}
	if len(c.News.RSSFeeds) == 0 {
		c.News.RSSFeeds = []string{"https://feeds.finance.yahoo.com/rss/2.0/headline?s={symbol}&region=US&lang=en-US"}
	}
	if c.Earnings.Source == "" {
		c.Earnings.Source = SourceFinnhub
	}
	if c.Earnings.WindowDays == 0 {
		c.Earnings.WindowDays = 30
	}
	if c.Finnhub.BaseURL == "" {
		c.Finnhub.BaseURL = "https://finnhub.io/api/v1"
	}
	if c.Finnhub.APIKeyEnv == "" {
		c.Finnhub.APIKeyEnv = "FINNHUB_API_KEY"
	}
	if c.Finnhub.TimeoutSeconds == 0 {
		c.Finnhub.TimeoutSeconds = 10
	}
	if c.Finnhub.RateLimitPerSecond == 0 {
		c.Finnhub.RateLimitPerSecond = 1
	}
	if c.Finnhub.Retry.MaxAttempts == 0 {
		c.Finnhub.Retry.MaxAttempts = 3
	}
	if c.Finnhub.Retry.InitialWaitMs == 0 {
		c.Finnhub.Retry.InitialWaitMs = 2000
	}
	if c.Finnhub.Retry.MaxWaitMs == 0 {
		c.Finnhub.Retry.MaxWaitMs = 10000
	}
	if c.Cache.TTLMinutes == 0 {
		c.Cache.TTLMinutes = 5
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(b)
}

// ParseConfig decodes YAML bytes, applies defaults and validates.
func ParseConfig(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	c.News.Source = strings.ToUpper(c.News.Source)
	c.Earnings.Source = strings.ToUpper(c.Earnings.Source)
	for i := range c.News.Fallback {
		c.News.Fallback[i] = strings.ToUpper(c.News.Fallback[i])
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
