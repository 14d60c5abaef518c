package search

import (
	"context"
	"time"
)

// SearchEngine resolves a free-text query to result URLs in ranked order.
// The slice may be shorter than limit.
type SearchEngine interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

type Config struct {
	URLTemplate    string        `yaml:"url_template"`
	ResultSelector string        `yaml:"result_selector"`
	UserAgent      string        `yaml:"user_agent"`
	Timeout        time.Duration `yaml:"timeout"`
	ProxyURL       string        `yaml:"proxy_url"`
}

// DefaultConfig returns a configuration for scraping the Bing result page.
func DefaultConfig() *Config {
	return &Config{
		URLTemplate:    "https://www.bing.com/search?q=%s",
		ResultSelector: "li.b_algo",
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
		Timeout:        10 * time.Second,
	}
}
