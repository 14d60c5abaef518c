package snippet

import (
	"context"
	"fmt"

	"websnippet/relevance"
	"websnippet/text"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SearchEngine interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL string) (string, error)
}

// Builder runs search, fetch and extraction for one query. Pages are handled
// one at a time and a failing page never aborts the run.
type Builder struct {
	search    SearchEngine
	fetcher   PageFetcher
	extractor text.TextExtractor
	config    *Config
	logger    *zap.Logger

	// OnSkip, if set, is called for every result that was dropped.
	OnSkip func(Outcome)
}

func NewBuilder(
	search SearchEngine,
	fetcher PageFetcher,
	extractor text.TextExtractor,
	config *Config,
	logger *zap.Logger,
) *Builder {
	if config == nil {
		config = DefaultConfig()
	}
	return &Builder{
		search:    search,
		fetcher:   fetcher,
		extractor: extractor,
		config:    config,
		logger:    logger,
	}
}

// Build returns the snippets of every page that was fetched and extracted,
// in search rank order. A search failure is returned as is.
func (b *Builder) Build(ctx context.Context, query string, limit int) ([]Snippet, error) {
	outcomes, err := b.Collect(ctx, query, limit)
	if outcomes == nil {
		return nil, err
	}

	snippets := make([]Snippet, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Snippet != nil {
			snippets = append(snippets, *o.Snippet)
		}
	}
	return snippets, err
}

// Collect is Build with the per-result outcomes, including the reason each
// skipped result was dropped. A non-positive limit uses the configured one.
func (b *Builder) Collect(ctx context.Context, query string, limit int) ([]Outcome, error) {
	if limit <= 0 {
		limit = b.config.Limit
	}
	logger := b.logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("query", query),
	)

	urls, err := b.search.Search(ctx, query, limit)
	if err != nil {
		logger.Error("search failed", zap.Error(err))
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if len(urls) > limit {
		urls = urls[:limit]
	}
	logger.Info("search resolved", zap.Int("urls", len(urls)), zap.Int("limit", limit))

	tags := Tags(query, b.config.MaxTags)
	var scorer *relevance.KeywordRelevanceFilter
	if b.config.ScoreRelevance {
		scorer, err = relevance.NewKeywordRelevanceFilter(tags)
		if err != nil {
			return nil, fmt.Errorf("relevance filter: %w", err)
		}
	}

	outcomes := make([]Outcome, 0, len(urls))
	seq := 0
	for i, pageURL := range urls {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		outcome := Outcome{Rank: i + 1, URL: pageURL}
		pageText, err := b.scrape(ctx, pageURL)
		if err != nil {
			outcome.Err = err
			logger.Warn("skipping result",
				zap.Int("rank", outcome.Rank),
				zap.String("url", pageURL),
				zap.Error(err))
			if b.OnSkip != nil {
				b.OnSkip(outcome)
			}
			outcomes = append(outcomes, outcome)
			continue
		}

		seq++
		s := b.config.newSnippet(seq, query, pageURL, pageText, tags)
		if scorer != nil {
			_, score, err := scorer.IsContentRelevant(pageText)
			if err == nil {
				s.RelevanceScore = &score
			}
		}
		outcome.Snippet = &s
		outcomes = append(outcomes, outcome)

		logger.Info("snippet built",
			zap.String("id", s.ID),
			zap.Int("rank", outcome.Rank),
			zap.String("url", pageURL),
			zap.Int("text_length", len(pageText)))
	}

	logger.Info("run completed",
		zap.Int("snippets", seq),
		zap.Int("skipped", len(outcomes)-seq))

	return outcomes, nil
}

func (b *Builder) scrape(ctx context.Context, pageURL string) (string, error) {
	markup, err := b.fetcher.FetchPage(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	pageText, err := b.extractor.ExtractText(markup, pageURL)
	if err != nil {
		return "", fmt.Errorf("extract: %w", err)
	}
	return pageText, nil
}
