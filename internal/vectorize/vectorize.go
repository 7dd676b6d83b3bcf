// Package vectorize projects a résumé/job description keyword pair into one
// shared TF-IDF vector space.
package vectorize

import (
	"math"

	"github.com/spigell/careercompass/internal/keywords"
)

// corpusSize is fixed: one résumé and one job description.
const corpusSize = 2

// Vocabulary assigns every term of a keyword pair to a vector dimension.
// Terms are numbered in order of first appearance, résumé first, so the
// assignment is identical for identical inputs.
type Vocabulary struct {
	terms []string
	index map[string]int
}

func newVocabulary(sets ...keywords.Set) *Vocabulary {
	v := &Vocabulary{index: make(map[string]int)}
	for _, set := range sets {
		for _, term := range set.Items() {
			if _, ok := v.index[term]; ok {
				continue
			}
			v.index[term] = len(v.terms)
			v.terms = append(v.terms, term)
		}
	}
	return v
}

// Len returns the number of dimensions.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Terms returns the terms ordered by dimension.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Index returns the dimension of term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Vector holds one weight per vocabulary dimension.
type Vector []float64

// Fit builds the shared vocabulary for a résumé/job description pair and returns
// the L2-normalized TF-IDF vector of each document.
//
// TF is the count of a term in its own keyword set, which is at most one since
// sets are deduplicated. IDF is the smoothed ln((1+n)/(1+df)) + 1 with n = 2, so
// a term shared by both documents keeps weight 1 instead of dropping to zero.
// When both sets are empty the vectors have zero length.
func Fit(resume, jd keywords.Set) (*Vocabulary, Vector, Vector) {
	vocab := newVocabulary(resume, jd)
	docs := []keywords.Set{resume, jd}

	idf := make([]float64, vocab.Len())
	for i, term := range vocab.terms {
		df := 0
		for _, doc := range docs {
			if doc.Contains(term) {
				df++
			}
		}
		idf[i] = math.Log(float64(1+corpusSize)/float64(1+df)) + 1
	}

	return vocab, weigh(vocab, resume, idf), weigh(vocab, jd, idf)
}

func weigh(vocab *Vocabulary, doc keywords.Set, idf []float64) Vector {
	vec := make(Vector, vocab.Len())
	for _, term := range doc.Items() {
		i := vocab.index[term]
		vec[i] += idf[i]
	}
	return vec.normalized()
}

// Norm returns the Euclidean length of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

func (v Vector) normalized() Vector {
	norm := v.Norm()
	if norm == 0 {
		return v
	}
	for i := range v {
		v[i] /= norm
	}
	return v
}

// Cosine returns the cosine similarity of a and b. Vectors of different length,
// zero length or zero norm have similarity 0.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}

	denom := a.Norm() * b.Norm()
	if denom == 0 {
		return 0
	}

	sim := dot / denom
	if sim > 1 {
		sim = 1
	}
	if sim < 0 {
		sim = 0
	}
	return sim
}
