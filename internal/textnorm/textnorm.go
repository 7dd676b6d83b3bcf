// Package textnorm turns raw document text into a lowercase token stream with
// punctuation and common English stopwords removed.
package textnorm

import (
	"strings"
	"unicode"
)

// stopwords filters common English words that add noise to keyword matching.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"if": true, "then": true, "than": true, "so": true, "as": true, "at": true,
	"by": true, "for": true, "from": true, "in": true, "into": true, "of": true,
	"on": true, "to": true, "with": true, "about": true, "up": true, "out": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true,
	"being": true, "do": true, "does": true, "did": true, "have": true, "has": true,
	"had": true, "will": true, "would": true, "could": true, "should": true,
	"may": true, "might": true, "can": true, "shall": true, "must": true,
	"not": true, "no": true, "it": true, "its": true, "this": true, "that": true,
	"these": true, "those": true, "what": true, "which": true, "who": true,
	"whom": true, "how": true, "when": true, "where": true, "why": true,
	"i": true, "me": true, "my": true, "we": true, "our": true, "us": true,
	"you": true, "your": true, "he": true, "she": true, "him": true, "her": true,
	"they": true, "them": true, "their": true, "all": true, "also": true,
	"more": true, "each": true, "such": true, "other": true, "any": true,
	"some": true, "very": true, "just": true, "over": true, "via": true,
	"etc": true, "e.g": true, "i.e": true,
}

// Normalize lowercases text and splits it into tokens, dropping punctuation and
// stopwords. Letters, digits and the glyphs '+', '#' and '.' form words so that
// names like "c++", "c#" and "node.js" survive. Empty input yields an empty slice.
func Normalize(text string) []string {
	tokens := make([]string, 0)
	scan(text, func(w string) { tokens = append(tokens, w) }, func() {})
	return tokens
}

// Segments is Normalize split into runs of adjacent words. A run ends at clause
// punctuation, at a sentence-ending dot and wherever a stopword was dropped, so
// words joined in a run were next to each other in the same clause.
func Segments(text string) [][]string {
	segments := make([][]string, 0)
	var current []string

	cut := func() {
		if len(current) > 0 {
			segments = append(segments, current)
			current = nil
		}
	}
	scan(text, func(w string) { current = append(current, w) }, cut)
	cut()

	return segments
}

// Phrase normalizes a short phrase (a dictionary entry, an alias, a catalog
// keyword) into the space-joined form Normalize would produce for it.
func Phrase(s string) string {
	return strings.Join(Normalize(s), " ")
}

// scan calls word for every kept token and cut at every clause boundary.
func scan(text string, word func(string), cut func()) {
	runes := []rune(strings.ToLower(text))

	var b strings.Builder
	flush := func() {
		raw := b.String()
		b.Reset()
		if raw == "" {
			return
		}

		w := trimDots(raw)
		switch {
		case !hasAlnum(w):
		case stopwords[w]:
			cut()
		default:
			word(w)
		}

		// "data. Science": the dot closed a sentence.
		if strings.HasSuffix(raw, ".") {
			cut()
		}
	}

	for i, r := range runes {
		if isWordRune(r) {
			b.WriteRune(r)
			continue
		}
		flush()
		if isClauseBreak(runes, i) {
			cut()
		}
	}
	flush()
}

// trimDots drops trailing dots and an ellipsis glued to the front of a word.
// A single leading dot is kept for names like ".net".
func trimDots(w string) string {
	w = strings.TrimRight(w, ".")
	if strings.HasPrefix(w, "..") {
		w = strings.TrimLeft(w, ".")
	}
	return w
}

func isClauseBreak(runes []rune, i int) bool {
	switch runes[i] {
	case ',', ';', ':', '(', ')', '[', ']', '!', '?', '|', '•':
		return true
	case '/':
		// "ci/cd" and "a/b" join two words; "python / sql" separates them.
		return i == 0 || i == len(runes)-1 || unicode.IsSpace(runes[i-1]) || unicode.IsSpace(runes[i+1])
	default:
		return false
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.'
}

func hasAlnum(w string) bool {
	for _, r := range w {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
