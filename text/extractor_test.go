package text

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestExtract_RemovesChrome(t *testing.T) {
	markup := `<!DOCTYPE html>
<html>
<head><title>Page</title><style>body { color: red; }</style></head>
<body>
	<header>Site Header</header>
	<nav><a href="/">Home</a> <a href="/about">About</a></nav>
	<script>var secret = "hidden";</script>
	<main>
		<h1>Behavior in class</h1>
		<p>Children   learn
		routines	early.</p>
	</main>
	<aside>Related links</aside>
	<footer>Copyright footer</footer>
</body>
</html>`

	got := Extract(markup)
	want := "Page Behavior in class Children learn routines early."
	if got != want {
		t.Fatalf("unexpected text\n got: %q\nwant: %q", got, want)
	}

	for _, hidden := range []string{"Site Header", "Home", "About", "secret", "color", "Related links", "Copyright footer"} {
		if strings.Contains(got, hidden) {
			t.Errorf("output contains chrome text %q", hidden)
		}
	}
}

func TestExtract_NestedChromeRemovedWithSubtree(t *testing.T) {
	markup := `<div>Before<footer><div><p>deep footer text</p></div></footer>After</div>`
	if got := Extract(markup); got != "Before After" {
		t.Fatalf("got %q", got)
	}
}

func TestExtract_Total(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"Empty", "", ""},
		{"OnlySpaces", " \n\t ", ""},
		{"PlainText", "just some words", "just some words"},
		{"Unclosed", "<div><p>open <b>tags", "open tags"},
		{"OnlyScript", "<script>alert(1)</script>", ""},
		{"CommentsIgnored", "<p>a<!-- note -->b</p>", "a b"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Extract(tc.input); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtract_NoscriptChildrenAreText(t *testing.T) {
	markup := `<html><body><noscript><p>Please enable <b>JavaScript</b></p></noscript>` +
		`<noscript><iframe src="https://www.googletagmanager.com/ns.html?id=GTM-X"></iframe></noscript>` +
		`<p>Body</p></body></html>`

	got := Extract(markup)
	if got != "Please enable JavaScript Body" {
		t.Fatalf("got %q", got)
	}
	if strings.ContainsAny(got, "<>") {
		t.Errorf("output %q contains markup", got)
	}
}

func TestExtract_InvalidBytes(t *testing.T) {
	got := Extract("\x00\xff\xfe<p>ok</p>")
	if !strings.HasSuffix(got, "ok") {
		t.Fatalf("got %q", got)
	}
}

func TestExtract_WhitespaceInvariant(t *testing.T) {
	inputs := []string{
		"<p>a\n\n\nb</p><p>\tc\t</p>",
		"<ul><li> one </li>\n<li>two  three</li></ul>",
		"<pre>keep\n   nothing\r\n  special</pre>",
		"<div>   </div><span>x</span>   <span>y</span>",
	}

	for _, in := range inputs {
		got := Extract(in)
		if strings.ContainsAny(got, "\t\n\r") {
			t.Errorf("output %q contains tab or newline", got)
		}
		if strings.Contains(got, "  ") {
			t.Errorf("output %q contains consecutive spaces", got)
		}
		if got != strings.TrimSpace(got) {
			t.Errorf("output %q has surrounding whitespace", got)
		}
	}
}

func TestBlocklistExtractor_CustomTags(t *testing.T) {
	e := NewBlocklistExtractor([]string{" FORM ", ""})
	got := e.Extract(`<nav>menu</nav><form>login</form><p>body</p>`)
	if got != "menu body" {
		t.Fatalf("got %q", got)
	}
}

func TestBlocklistExtractor_EmptyBlocklist(t *testing.T) {
	e := NewBlocklistExtractor([]string{})
	got, err := e.ExtractText(`<nav>menu</nav><p>body</p>`, "https://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "menu body" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  a \t b\n\nc d  "); got != "a b c d" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeMode(t *testing.T) {
	testCases := map[string]string{
		"":                ModeBlocklist,
		"   ":             ModeBlocklist,
		" blocklist":      ModeBlocklist,
		"READABILITY \t": ModeReadability,
		"trafilatura":     ModeTrafilatura,
	}
	for in, want := range testCases {
		if got := NormalizeMode(in); got != want {
			t.Errorf("NormalizeMode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNew(t *testing.T) {
	logger := zap.NewNop()

	testCases := []struct {
		mode    string
		wantErr bool
	}{
		{"", false},
		{" Blocklist ", false},
		{"blocklist", false},
		{"Readability", false},
		{"trafilatura", false},
		{"markdown", true},
	}

	for _, tc := range testCases {
		t.Run(tc.mode, func(t *testing.T) {
			ex, err := New(tc.mode, nil, logger)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownMode) {
					t.Fatalf("expected ErrUnknownMode, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ex == nil {
				t.Fatal("expected extractor")
			}
		})
	}
}
