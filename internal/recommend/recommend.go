// Package recommend ranks catalog project ideas by how many missing job
// description skills each one exercises.
package recommend

import (
	"sort"

	"github.com/spigell/careercompass/internal/keywords"
)

// Result is the ranked list of suggested projects.
type Result struct {
	Suggested []ProjectIdea `json:"suggested"`
	// Missing is the skill gap the suggestions were ranked against.
	Missing []string `json:"missing"`
}

type candidate struct {
	idea      ProjectIdea
	relevance int
}

// Recommend returns the catalog projects covering at least one skill the job
// description asks for and the résumé lacks. Projects are ordered by descending
// relevance and ties keep catalog order. A positive limit caps the result.
func Recommend(jdKW, resumeKW keywords.Set, catalog *Catalog, limit int) Result {
	missing := jdKW.Subtract(resumeKW)
	result := Result{Suggested: []ProjectIdea{}, Missing: missing}
	if len(missing) == 0 || catalog.Len() == 0 {
		return result
	}

	gap := keywords.NewSet(missing...)
	candidates := make([]candidate, 0, catalog.Len())
	for i, idea := range catalog.ideas {
		relevance := len(catalog.keywords[i].Intersect(gap))
		if relevance == 0 {
			continue
		}
		candidates = append(candidates, candidate{idea: idea, relevance: relevance})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].relevance > candidates[j].relevance
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	for _, c := range candidates {
		result.Suggested = append(result.Suggested, c.idea.clone())
	}
	return result
}

// Covers lists the missing skills idea exercises, in missing order.
func Covers(idea ProjectIdea, missing keywords.Set) []string {
	return missing.Intersect(keywords.NewSet(idea.Keywords...))
}
