// Package matching scores how well a résumé covers a job description.
package matching

import (
	"fmt"
	"math"

	"github.com/spigell/careercompass/internal/keywords"
	"github.com/spigell/careercompass/internal/vectorize"
)

// DefaultCosineWeight balances vector similarity and skill coverage equally.
const DefaultCosineWeight = 0.5

// Result is the outcome of comparing one résumé with one job description.
// Matched and Missing partition the job description keywords and keep their order.
type Result struct {
	MatchPercent float64  `json:"match_percent"`
	Matched      []string `json:"matched_skills"`
	Missing      []string `json:"missing_skills"`
	// Similarity is the raw cosine similarity in [0,1].
	Similarity float64 `json:"similarity"`
	// Coverage is |Matched| / |job description keywords| in [0,1].
	Coverage float64 `json:"coverage"`
}

// Matcher blends cosine similarity and keyword coverage into a match percentage:
//
//	percent = round1(100 * (w*cosine + (1-w)*coverage))
//
// Both terms are non-decreasing when a required skill is added to the résumé, so
// the score never drops when the candidate gains a required skill.
type Matcher struct {
	cosineWeight float64
}

// NewMatcher creates a matcher with the given cosine weight in [0,1].
func NewMatcher(cosineWeight float64) (*Matcher, error) {
	if math.IsNaN(cosineWeight) || cosineWeight < 0 || cosineWeight > 1 {
		return nil, fmt.Errorf("cosine weight must be within [0,1], got %v", cosineWeight)
	}
	return &Matcher{cosineWeight: cosineWeight}, nil
}

// CosineWeight returns the weight given to vector similarity.
func (m *Matcher) CosineWeight() float64 {
	return m.cosineWeight
}

// Compare scores the résumé against the job description. An empty job description
// requires nothing and scores 100; an empty résumé against a non-empty one scores 0.
func (m *Matcher) Compare(resumeKW keywords.Set, resumeVec vectorize.Vector, jdKW keywords.Set, jdVec vectorize.Vector) Result {
	if jdKW.IsEmpty() {
		return Result{
			MatchPercent: 100,
			Matched:      []string{},
			Missing:      []string{},
			Similarity:   vectorize.Cosine(resumeVec, jdVec),
			Coverage:     1,
		}
	}

	matched := jdKW.Intersect(resumeKW)
	missing := jdKW.Subtract(resumeKW)

	similarity := vectorize.Cosine(resumeVec, jdVec)
	coverage := float64(len(matched)) / float64(jdKW.Len())

	score := 100 * (m.cosineWeight*similarity + (1-m.cosineWeight)*coverage)

	return Result{
		MatchPercent: roundTenth(clamp(score, 0, 100)),
		Matched:      matched,
		Missing:      missing,
		Similarity:   similarity,
		Coverage:     coverage,
	}
}

// Compare fits vectors for the pair and scores it with the default weights.
func Compare(resumeKW, jdKW keywords.Set) Result {
	_, resumeVec, jdVec := vectorize.Fit(resumeKW, jdKW)
	m := &Matcher{cosineWeight: DefaultCosineWeight}
	return m.Compare(resumeKW, resumeVec, jdKW, jdVec)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
