package crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

type Browser struct {
	logger          *zap.Logger
	config          *FetcherConfig
	ChromedpOptions []chromedp.ExecAllocatorOption
}

func NewBrowser(logger *zap.Logger, config *FetcherConfig) *Browser {
	if config == nil {
		config = DefaultConfig()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("headless", config.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-extensions", true),
	)
	if config.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(config.UserAgent))
	}
	if config.ProxyURL != "" {
		opts = append(opts, chromedp.ProxyServer(config.ProxyURL))
	}

	return &Browser{
		logger:          logger,
		config:          config,
		ChromedpOptions: opts,
	}
}

// FetchPage renders pageURL in a browser process owned by this call and
// returns the document markup. Navigation and readiness failures are logged
// and ignored so that whatever has rendered is still captured; only a browser
// that cannot start or a failed capture is an error.
func (b *Browser) FetchPage(ctx context.Context, pageURL string) (string, error) {
	// ================
	// Browser Context
	// ================
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, b.ChromedpOptions...)
	defer allocCancel()
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	// The first Run starts the browser. It must use the untimed context:
	// cancelling the context of the first Run closes the browser.
	if err := chromedp.Run(taskCtx, b.setupActions()...); err != nil {
		return "", fmt.Errorf("failed to start browser: %w", err)
	}

	start := time.Now()

	// ================
	// Load page
	// ================
	if err := b.runWithTimeout(taskCtx, b.config.NavigationTimeout, chromedp.Navigate(pageURL)); err != nil {
		b.logger.Warn("navigation did not complete",
			zap.String("url", pageURL),
			zap.Duration("timeout", b.config.NavigationTimeout),
			zap.Error(err))
	}
	if err := b.runWithTimeout(taskCtx, b.config.DOMReadyTimeout, chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		b.logger.Warn("dom ready wait did not complete",
			zap.String("url", pageURL),
			zap.Duration("timeout", b.config.DOMReadyTimeout),
			zap.Error(err))
	}
	if err := chromedp.Run(taskCtx, chromedp.Sleep(b.config.SettleDelay)); err != nil {
		b.logger.Debug("settle delay interrupted", zap.String("url", pageURL), zap.Error(err))
	}

	// ================
	// Capture markup
	// ================
	var markup string
	capture := chromedp.Evaluate(`document.documentElement ? document.documentElement.outerHTML : ""`, &markup)
	if err := b.runWithTimeout(taskCtx, b.config.CaptureTimeout, capture); err != nil {
		return "", fmt.Errorf("failed to capture page markup: %w", err)
	}

	b.logger.Info("page fetched",
		zap.String("url", pageURL),
		zap.Int("dom_length", len(markup)),
		zap.Duration("elapsed", time.Since(start)))

	return markup, nil
}

func (b *Browser) setupActions() []chromedp.Action {
	if len(b.config.ExtraHeaders) == 0 {
		return nil
	}
	headers := make(network.Headers, len(b.config.ExtraHeaders))
	for k, v := range b.config.ExtraHeaders {
		headers[k] = v
	}
	return []chromedp.Action{
		network.Enable(),
		network.SetExtraHTTPHeaders(headers),
	}
}

func (b *Browser) runWithTimeout(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if timeout <= 0 {
		return chromedp.Run(ctx, actions...)
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := chromedp.Run(runCtx, actions...)
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return fmt.Errorf("timed out after %s: %w", timeout, context.DeadlineExceeded)
	}
	return err
}
