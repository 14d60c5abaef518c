package text

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"go.uber.org/zap"
)

type ReadabilityExtractor struct {
	logger *zap.Logger
}

func NewReadabilityExtractor(logger *zap.Logger) *ReadabilityExtractor {
	return &ReadabilityExtractor{logger: logger}
}

func (re *ReadabilityExtractor) ExtractText(markup, pageURL string) (string, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("readability: parse url: %w", err)
	}

	article, err := readability.FromReader(strings.NewReader(markup), parsedURL)
	if err != nil {
		return "", fmt.Errorf("readability: %w", err)
	}

	text := Normalize(article.TextContent)
	re.logger.Debug("readability_extraction_result",
		zap.String("url", pageURL),
		zap.String("title", article.Title),
		zap.Int("text_length", len(text)),
	)
	return text, nil
}
