// Package keywords extracts skill and technology keywords from résumé and job
// description text using a curated dictionary.
package keywords

import (
	"strings"

	"github.com/spigell/careercompass/internal/textnorm"
)

// Extractor pulls dictionary skills out of free text.
type Extractor struct {
	dict *Dictionary
}

// NewExtractor creates an extractor backed by dict. A nil dict selects the
// built-in dictionary.
func NewExtractor(dict *Dictionary) *Extractor {
	if dict == nil {
		dict = DefaultDictionary()
	}
	return &Extractor{dict: dict}
}

// Dictionary returns the dictionary the extractor matches against.
func (e *Extractor) Dictionary() *Dictionary {
	return e.dict
}

// Extract normalizes text and returns the recognized skills in first-seen order.
// Multi-word skills win over their parts: "machine learning" is matched before
// "learning" is considered on its own. Text without any known skill yields an
// empty Set. Phrases never span a sentence or clause break, nor a dropped
// stopword.
func (e *Extractor) Extract(text string) Set {
	found := make([]string, 0)
	for _, tokens := range textnorm.Segments(text) {
		for i := 0; i < len(tokens); {
			n, canonical := e.longestMatch(tokens[i:])
			if n == 0 {
				i++
				continue
			}
			found = append(found, canonical)
			i += n
		}
	}

	return NewSet(found...)
}

func (e *Extractor) longestMatch(tokens []string) (int, string) {
	limit := e.dict.maxLen
	if limit > len(tokens) {
		limit = len(tokens)
	}
	for n := limit; n > 0; n-- {
		phrase := strings.Join(tokens[:n], " ")
		if canonical, ok := e.dict.Lookup(phrase); ok {
			return n, canonical
		}
		// ".python" is a stray dot, ".net" is a name.
		if strings.HasPrefix(phrase, ".") {
			if canonical, ok := e.dict.Lookup(phrase[1:]); ok {
				return n, canonical
			}
		}
	}
	return 0, ""
}
