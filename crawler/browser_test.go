package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func requireChrome(t *testing.T) {
	t.Helper()
	if os.Getenv("CHROME_TESTS") != "1" {
		t.Skip("set CHROME_TESTS=1 to run tests that launch Chrome")
	}
}

func TestNewBrowser_Defaults(t *testing.T) {
	b := NewBrowser(zap.NewNop(), nil)
	if b.config.NavigationTimeout != 60*time.Second {
		t.Errorf("unexpected navigation timeout %s", b.config.NavigationTimeout)
	}
	if b.config.DOMReadyTimeout != 15*time.Second {
		t.Errorf("unexpected dom ready timeout %s", b.config.DOMReadyTimeout)
	}
	if b.config.SettleDelay != 2*time.Second {
		t.Errorf("unexpected settle delay %s", b.config.SettleDelay)
	}
	if len(b.ChromedpOptions) == 0 {
		t.Fatal("expected allocator options")
	}
	if got := len(b.setupActions()); got != 2 {
		t.Errorf("expected header setup actions, got %d", got)
	}
}

func TestBrowser_NoExtraHeaders(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExtraHeaders = nil
	b := NewBrowser(zap.NewNop(), cfg)
	if actions := b.setupActions(); actions != nil {
		t.Fatalf("expected no setup actions, got %d", len(actions))
	}
}

func TestBrowser_FetchPage(t *testing.T) {
	requireChrome(t)

	var gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLang = r.Header.Get("Accept-Language")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p id="static">static</p>
<script>document.body.insertAdjacentHTML("beforeend", "<p>dynamic</p>")</script></body></html>`))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.SettleDelay = 200 * time.Millisecond
	b := NewBrowser(zap.NewNop(), cfg)

	markup, err := b.FetchPage(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(markup, "static") || !strings.Contains(markup, "dynamic") {
		t.Fatalf("rendered markup missing content: %s", markup)
	}
	if !strings.HasPrefix(gotLang, "en-US") {
		t.Errorf("extra header not sent, got %q", gotLang)
	}
}

func TestBrowser_FetchPageUnreachable(t *testing.T) {
	requireChrome(t)

	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	cfg := DefaultConfig()
	cfg.NavigationTimeout = 5 * time.Second
	cfg.DOMReadyTimeout = time.Second
	cfg.SettleDelay = 0
	b := NewBrowser(zap.NewNop(), cfg)

	// Navigation errors are swallowed; the error page markup is still returned.
	if _, err := b.FetchPage(context.Background(), addr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
