package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"websnippet/config"
	"websnippet/crawler"
	"websnippet/search"
	"websnippet/snippet"
	"websnippet/text"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// =========
	// Config
	// =========
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Args[1:], os.Stdout); err != nil {
		logger.Error("run failed", zap.Error(err))
		logger.Sync()
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, args []string, out io.Writer) error {
	// =========
	// Search
	// =========
	engine := search.NewBingSearchEngine(&cfg.Search, logger)

	// =========
	// Chromedp
	// =========
	browser := crawler.NewBrowser(logger, &cfg.Fetch)

	// =========
	// Extractor
	// =========
	extractor, err := text.New(cfg.Extract.Mode, cfg.Extract.Blocklist, logger)
	if err != nil {
		return err
	}

	builder := snippet.NewBuilder(engine, browser, extractor, &cfg.Snippet, logger)

	query := snippet.QueryFromArgs(args, cfg.Snippet.FallbackQuery)
	snippets, err := builder.Build(ctx, query, cfg.Snippet.Limit)
	if err != nil {
		return err
	}

	return writeSnippets(out, snippets)
}

// writeSnippets emits the snippets as a single JSON array without a
// trailing newline.
func writeSnippets(out io.Writer, snippets []snippet.Snippet) error {
	if snippets == nil {
		snippets = []snippet.Snippet{}
	}
	data, err := json.Marshal(snippets)
	if err != nil {
		return fmt.Errorf("failed to encode snippets: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("failed to write snippets: %w", err)
	}
	return nil
}

// NewLogger returns a production logger writing to stderr, keeping stdout
// for the JSON result.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}
