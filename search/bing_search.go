package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// ErrUnexpectedStatus is returned for any non-2xx result page. Such a page
// is treated as a failed search rather than parsed as an empty result list,
// so a rate-limited run exits with an error instead of printing [].
var ErrUnexpectedStatus = errors.New("search engine returned unexpected status")

// BingSearchEngine scrapes organic results from an HTML result page.
type BingSearchEngine struct {
	config *Config
	logger *zap.Logger
}

func NewBingSearchEngine(config *Config, logger *zap.Logger) *BingSearchEngine {
	if config == nil {
		config = DefaultConfig()
	}
	return &BingSearchEngine{
		config: config,
		logger: logger,
	}
}

// Search fetches the result page once and reads the first anchor of each of
// the first limit result containers. Containers without a usable link still
// count toward limit. Relative hrefs are resolved against the result page; a
// fragment-only href ("#...") resolves to nothing and the container counts as
// linkless.
func (b *BingSearchEngine) Search(ctx context.Context, query string, limit int) ([]string, error) {
	results := []string{}
	if limit <= 0 {
		return results, nil
	}

	searchURL := strings.Replace(b.config.URLTemplate, "%s", url.QueryEscape(query), 1)

	c := colly.NewCollector(
		colly.UserAgent(b.config.UserAgent),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(b.config.Timeout)
	if b.config.ProxyURL != "" {
		if err := c.SetProxy(b.config.ProxyURL); err != nil {
			return nil, fmt.Errorf("failed to set proxy: %w", err)
		}
	}

	scanned := 0
	c.OnHTML(b.config.ResultSelector, func(e *colly.HTMLElement) {
		if scanned >= limit {
			return
		}
		scanned++

		href, ok := e.DOM.Find("a").First().Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			b.logger.Debug("result container without link", zap.Int("position", scanned))
			return
		}
		link := e.Request.AbsoluteURL(href)
		if link == "" {
			return
		}
		results = append(results, link)
	})

	var statusCode int
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			statusCode = r.StatusCode
		}
	})

	b.logger.Info("Navigating to search",
		zap.String("url", searchURL),
		zap.Int("limit", limit))

	if err := c.Visit(searchURL); err != nil {
		if statusCode != 0 {
			return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, statusCode)
		}
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	b.logger.Info("Successfully extracted links",
		zap.Int("containers_scanned", scanned),
		zap.Int("total_links", len(results)),
		zap.String("selector_used", b.config.ResultSelector))

	return results, nil
}
