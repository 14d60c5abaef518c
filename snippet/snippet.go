package snippet

import (
	"fmt"
	"strings"
)

// Snippet is one scraped page, truncated and tagged for downstream display.
type Snippet struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Source         string   `json:"source"`
	URL            string   `json:"url"`
	Abstract       string   `json:"abstract"`
	Summary        string   `json:"summary"`
	Tags           []string `json:"tags"`
	RelevanceScore *float64 `json:"relevanceScore,omitempty"`
}

// Outcome records what happened to one search result. Exactly one of
// Snippet and Err is set.
type Outcome struct {
	Rank    int
	URL     string
	Snippet *Snippet
	Err     error
}

func (o Outcome) Skipped() bool {
	return o.Err != nil
}

type Config struct {
	Limit          int    `yaml:"limit"`
	AbstractLength int    `yaml:"abstract_length"`
	SummaryLength  int    `yaml:"summary_length"`
	MaxTags        int    `yaml:"max_tags"`
	Source         string `yaml:"source"`
	IDPrefix       string `yaml:"id_prefix"`
	FallbackQuery  string `yaml:"fallback_query"`
	ScoreRelevance bool   `yaml:"score_relevance"`
}

func DefaultConfig() *Config {
	return &Config{
		Limit:          5,
		AbstractLength: 400,
		SummaryLength:  1600,
		MaxTags:        8,
		Source:         "web",
		IDPrefix:       "scraped-",
		FallbackQuery:  "behavioral problems children",
	}
}

// QueryFromArgs joins command line arguments into a query, substituting
// fallback when nothing but whitespace was given.
func QueryFromArgs(args []string, fallback string) string {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fallback
	}
	return query
}

// Tags returns the first n whitespace-separated tokens of query in order.
func Tags(query string, n int) []string {
	tokens := strings.Fields(query)
	if n < 0 {
		n = 0
	}
	if len(tokens) > n {
		tokens = tokens[:n]
	}
	tags := make([]string, len(tokens))
	copy(tags, tokens)
	return tags
}

// Truncate returns the first n characters of s, counted in runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func (c *Config) newSnippet(seq int, query, pageURL, text string, tags []string) Snippet {
	t := make([]string, len(tags))
	copy(t, tags)
	return Snippet{
		ID:       fmt.Sprintf("%s%d", c.IDPrefix, seq),
		Title:    fmt.Sprintf("Web result %d for \"%s\"", seq, query),
		Source:   c.Source,
		URL:      pageURL,
		Abstract: Truncate(text, c.AbstractLength),
		Summary:  Truncate(text, c.SummaryLength),
		Tags:     t,
	}
}
