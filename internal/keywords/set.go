package keywords

import "github.com/spigell/careercompass/internal/textnorm"

// Set is an ordered, deduplicated collection of normalized keywords extracted
// from one document. The zero value is an empty set. A Set never changes after
// construction; Items returns a copy.
type Set struct {
	items []string
	index map[string]int
}

// NewSet builds a Set from raw keywords. Each keyword is normalized, empty
// results are dropped and duplicates keep their first position.
func NewSet(keywords ...string) Set {
	s := Set{
		items: make([]string, 0, len(keywords)),
		index: make(map[string]int, len(keywords)),
	}
	for _, kw := range keywords {
		s.add(textnorm.Phrase(kw))
	}
	return s
}

func (s *Set) add(kw string) {
	if kw == "" {
		return
	}
	if _, ok := s.index[kw]; ok {
		return
	}
	s.index[kw] = len(s.items)
	s.items = append(s.items, kw)
}

// Len returns the number of keywords.
func (s Set) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the set has no keywords.
func (s Set) IsEmpty() bool {
	return len(s.items) == 0
}

// Items returns the keywords in first-seen order.
func (s Set) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Contains reports whether kw, already normalized, is in the set.
func (s Set) Contains(kw string) bool {
	_, ok := s.index[kw]
	return ok
}

// Intersect returns the keywords of s that are also in other, in the order of s.
func (s Set) Intersect(other Set) []string {
	out := make([]string, 0)
	for _, kw := range s.items {
		if other.Contains(kw) {
			out = append(out, kw)
		}
	}
	return out
}

// Subtract returns the keywords of s that are not in other, in the order of s.
func (s Set) Subtract(other Set) []string {
	out := make([]string, 0)
	for _, kw := range s.items {
		if !other.Contains(kw) {
			out = append(out, kw)
		}
	}
	return out
}

// With returns a new Set holding the keywords of s followed by kws.
func (s Set) With(kws ...string) Set {
	return NewSet(append(s.Items(), kws...)...)
}
