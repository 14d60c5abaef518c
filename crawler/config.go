package crawler

import (
	"time"
)

type FetcherConfig struct {
	NavigationTimeout time.Duration     `yaml:"navigation_timeout"`
	DOMReadyTimeout   time.Duration     `yaml:"dom_ready_timeout"`
	SettleDelay       time.Duration     `yaml:"settle_delay"`
	CaptureTimeout    time.Duration     `yaml:"capture_timeout"`
	UserAgent         string            `yaml:"user_agent"`
	Headless          bool              `yaml:"headless"`
	ProxyURL          string            `yaml:"proxy_url"`
	ExtraHeaders      map[string]string `yaml:"extra_headers"`
}

// DefaultConfig returns a default page fetcher configuration
func DefaultConfig() *FetcherConfig {
	return &FetcherConfig{
		NavigationTimeout: 60 * time.Second,
		DOMReadyTimeout:   15 * time.Second,
		SettleDelay:       2 * time.Second,
		CaptureTimeout:    10 * time.Second,
		UserAgent:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		Headless:          true,
		ExtraHeaders: map[string]string{
			"Accept-Language": "en-US,en;q=0.9",
		},
	}
}
