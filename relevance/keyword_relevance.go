package relevance

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
)

// KeywordRelevanceFilter scores content against a list of keywords/phrases.
// Words are compared by their English stems, so "behavioral" matches "behavior".
type KeywordRelevanceFilter struct {
	keywords []string
	stems    [][]string
}

// NewKeywordRelevanceFilter initializes the filter with the given keywords/phrases.
// Blank entries are dropped.
func NewKeywordRelevanceFilter(keywords []string) (*KeywordRelevanceFilter, error) {
	f := &KeywordRelevanceFilter{}
	for _, k := range keywords {
		stems := stemWords(k)
		if len(stems) == 0 {
			continue
		}
		f.keywords = append(f.keywords, strings.ToLower(strings.TrimSpace(k)))
		f.stems = append(f.stems, stems)
	}
	return f, nil
}

// IsContentRelevant checks if at least one keyword/phrase is in the content.
// Returns true if at least one keyword matches, along with a score (fraction of keywords found).
func (f *KeywordRelevanceFilter) IsContentRelevant(content string) (bool, float64, error) {
	if content == "" || len(f.stems) == 0 {
		return false, 0.0, nil
	}

	words := stemWords(content)
	found := 0
	for _, phrase := range f.stems {
		if containsSequence(words, phrase) {
			found++
		}
	}
	if found == 0 {
		return false, 0.0, nil
	}

	// Score: fraction of keywords found
	return true, float64(found) / float64(len(f.stems)), nil
}

func (f *KeywordRelevanceFilter) Keywords() []string {
	return f.keywords
}

func stemWords(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for i, w := range words {
		words[i] = stemWord(w)
	}
	return words
}

func stemWord(word string) string {
	stem, err := snowball.Stem(word, "english", true)
	if err != nil || stem == "" {
		return word
	}
	return stem
}

func containsSequence(words, phrase []string) bool {
	for i := 0; i+len(phrase) <= len(words); i++ {
		match := true
		for j := range phrase {
			if words[i+j] != phrase[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
