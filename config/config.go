package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"websnippet/crawler"
	"websnippet/search"
	"websnippet/snippet"
	"websnippet/text"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel string                `yaml:"log_level"`
	ProxyURL string                `yaml:"proxy_url"`
	Search   search.Config         `yaml:"search"`
	Fetch    crawler.FetcherConfig `yaml:"fetch"`
	Extract  ExtractConfig         `yaml:"extract"`
	Snippet  snippet.Config        `yaml:"snippet"`
}

type ExtractConfig struct {
	Mode      string   `yaml:"mode"`
	Blocklist []string `yaml:"blocklist"`
}

// Default returns the configuration used when neither a config file nor
// environment overrides are present.
func Default() *Config {
	blocklist := make([]string, len(text.DefaultBlocklist))
	copy(blocklist, text.DefaultBlocklist)

	return &Config{
		LogLevel: "info",
		Search:   *search.DefaultConfig(),
		Fetch:    *crawler.DefaultConfig(),
		Extract: ExtractConfig{
			Mode:      text.ModeBlocklist,
			Blocklist: blocklist,
		},
		Snippet: *snippet.DefaultConfig(),
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// SNIPPET_CONFIG (if set), then environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := getEnv("SNIPPET_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.ProxyURL != "" {
		if cfg.Search.ProxyURL == "" {
			cfg.Search.ProxyURL = cfg.ProxyURL
		}
		if cfg.Fetch.ProxyURL == "" {
			cfg.Fetch.ProxyURL = cfg.ProxyURL
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := getEnv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getEnv("PROXY_URL"); v != "" {
		c.ProxyURL = v
	}
	if v := getEnv("SEARCH_URL_TEMPLATE"); v != "" {
		c.Search.URLTemplate = v
	}
	if v := getEnv("EXTRACT_MODE"); v != "" {
		c.Extract.Mode = v
	}
	if v := getEnv("SNIPPET_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SNIPPET_LIMIT %q: %w", v, err)
		}
		c.Snippet.Limit = limit
	}
	if v := getEnv("CHROME_HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid CHROME_HEADLESS %q: %w", v, err)
		}
		c.Fetch.Headless = headless
	}
	return nil
}

var tagName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

func (c *Config) Validate() error {
	var errs []error

	if strings.Count(c.Search.URLTemplate, "%s") != 1 {
		errs = append(errs, fmt.Errorf("search.url_template must contain exactly one %%s: %q", c.Search.URLTemplate))
	}
	if strings.TrimSpace(c.Search.ResultSelector) == "" {
		errs = append(errs, errors.New("search.result_selector is required"))
	}
	if c.Search.Timeout <= 0 {
		errs = append(errs, errors.New("search.timeout must be positive"))
	}

	if c.Fetch.NavigationTimeout <= 0 || c.Fetch.DOMReadyTimeout <= 0 || c.Fetch.CaptureTimeout <= 0 {
		errs = append(errs, errors.New("fetch timeouts must be positive"))
	}
	if c.Fetch.SettleDelay < 0 {
		errs = append(errs, errors.New("fetch.settle_delay must not be negative"))
	}

	switch text.NormalizeMode(c.Extract.Mode) {
	case text.ModeBlocklist, text.ModeReadability, text.ModeTrafilatura:
	default:
		errs = append(errs, fmt.Errorf("extract.mode: %w: %q", text.ErrUnknownMode, c.Extract.Mode))
	}
	for _, tag := range c.Extract.Blocklist {
		if !tagName.MatchString(strings.TrimSpace(tag)) {
			errs = append(errs, fmt.Errorf("extract.blocklist: invalid tag name %q", tag))
		}
	}

	if c.Snippet.Limit <= 0 {
		errs = append(errs, errors.New("snippet.limit must be positive"))
	}
	if c.Snippet.AbstractLength < 0 || c.Snippet.SummaryLength < 0 {
		errs = append(errs, errors.New("snippet lengths must not be negative"))
	}
	if c.Snippet.AbstractLength > c.Snippet.SummaryLength {
		errs = append(errs, errors.New("snippet.abstract_length must not exceed snippet.summary_length"))
	}
	if c.Snippet.MaxTags < 0 {
		errs = append(errs, errors.New("snippet.max_tags must not be negative"))
	}
	if strings.TrimSpace(c.Snippet.FallbackQuery) == "" {
		errs = append(errs, errors.New("snippet.fallback_query is required"))
	}

	return errors.Join(errs...)
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
