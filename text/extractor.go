package text

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const (
	ModeBlocklist   = "blocklist"
	ModeReadability = "readability"
	ModeTrafilatura = "trafilatura"
)

var ErrUnknownMode = errors.New("unknown extraction mode")

// DefaultBlocklist lists the elements treated as page chrome. Layouts built
// from plain divs keep their navigation and footer text.
var DefaultBlocklist = []string{"script", "style", "nav", "header", "footer", "aside"}

// TextExtractor turns rendered markup into normalized plain text.
type TextExtractor interface {
	ExtractText(markup, pageURL string) (string, error)
}

// New returns the extractor for the given mode. An empty mode selects the
// blocklist extractor.
func New(mode string, blocklist []string, logger *zap.Logger) (TextExtractor, error) {
	switch NormalizeMode(mode) {
	case ModeBlocklist:
		return NewBlocklistExtractor(blocklist), nil
	case ModeReadability:
		return NewReadabilityExtractor(logger), nil
	case ModeTrafilatura:
		return NewTrafilaturaExtractor(logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// NormalizeMode maps a configured mode name to its canonical form. Blank
// names select ModeBlocklist.
func NormalizeMode(mode string) string {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		return ModeBlocklist
	}
	return mode
}

type BlocklistExtractor struct {
	selector string
}

func NewBlocklistExtractor(tags []string) *BlocklistExtractor {
	if tags == nil {
		tags = DefaultBlocklist
	}
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			names = append(names, t)
		}
	}
	return &BlocklistExtractor{selector: strings.Join(names, ", ")}
}

func (e *BlocklistExtractor) ExtractText(markup, _ string) (string, error) {
	return e.Extract(markup), nil
}

// Extract removes blocklisted elements with their subtrees, then joins the
// trimmed text nodes in document order. It never fails: input that does not
// parse into any text yields "".
func (e *BlocklistExtractor) Extract(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}
	// With scripting disabled, <noscript> children parse as elements
	// instead of one raw markup string.
	root, err := html.ParseWithOptions(strings.NewReader(markup), html.ParseOptionEnableScripting(false))
	if err != nil {
		return ""
	}
	doc := goquery.NewDocumentFromNode(root)
	if e.selector != "" {
		doc.Find(e.selector).Remove()
	}

	var parts []string
	for _, n := range doc.Nodes {
		collectText(n, &parts)
	}
	return Normalize(strings.Join(parts, " "))
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if s := strings.TrimSpace(n.Data); s != "" {
			*parts = append(*parts, s)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// Extract runs the default blocklist extractor.
func Extract(markup string) string {
	return NewBlocklistExtractor(DefaultBlocklist).Extract(markup)
}

// Normalize collapses every whitespace run into a single space and trims the
// ends, so positional truncation behaves the same for every page.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
