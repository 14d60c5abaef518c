package text

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"go.uber.org/zap"
)

type TrafilaturaExtractor struct {
	logger *zap.Logger
}

func NewTrafilaturaExtractor(logger *zap.Logger) *TrafilaturaExtractor {
	return &TrafilaturaExtractor{logger: logger}
}

func (te *TrafilaturaExtractor) ExtractText(markup, pageURL string) (string, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("trafilatura: parse url: %w", err)
	}

	result, err := trafilatura.Extract(strings.NewReader(markup), trafilatura.Options{
		OriginalURL: parsedURL,
	})
	if err != nil {
		return "", fmt.Errorf("trafilatura: %w", err)
	}
	if result == nil {
		return "", nil
	}

	text := Normalize(result.ContentText)
	te.logger.Debug("trafilatura_extraction_result",
		zap.String("url", pageURL),
		zap.String("title", result.Metadata.Title),
		zap.String("language", result.Metadata.Language),
		zap.Int("text_length", len(text)),
	)
	return text, nil
}
