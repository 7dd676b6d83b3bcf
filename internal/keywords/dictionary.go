package keywords

import (
	"bufio"
	"maps"
	"slices"
	"strings"

	_ "embed"

	"github.com/spigell/careercompass/internal/textnorm"
)

//go:embed skills.txt
var defaultSkills string

// defaultAliases maps common spelling variants to the canonical dictionary entry.
var defaultAliases = map[string]string{
	"go lang":                     "golang",
	"js":                          "javascript",
	"ts":                          "typescript",
	"k8s":                         "kubernetes",
	"postgres":                    "postgresql",
	"sklearn":                     "scikit learn",
	"ml":                          "machine learning",
	"dl":                          "deep learning",
	"natural language processing": "nlp",
	"large language models":       "llm",
	"llms":                        "llm",
	"reactjs":                     "react",
	"react.js":                    "react",
	"nodejs":                      "node.js",
	"vue.js":                      "vue",
	"vuejs":                       "vue",
	"nextjs":                      "next.js",
	"amazon web services":         "aws",
	"google cloud":                "gcp",
	"google cloud platform":       "gcp",
	"microsoft azure":             "azure",
	"restful api":                 "rest api",
	"restful apis":                "rest api",
	"rest apis":                   "rest api",
	"continuous integration":      "ci cd",
	"powerbi":                     "power bi",
	"ms excel":                    "excel",
	"microsoft excel":             "excel",
	"elastic search":              "elasticsearch",
	"mongo":                       "mongodb",
	"tf":                          "tensorflow",
	"gen ai":                      "generative ai",
	"genai":                       "generative ai",
	"a/b testing":                 "ab testing",
	"split testing":               "ab testing",
}

// Dictionary resolves normalized token phrases to canonical skill keywords.
// A Dictionary is read-only once built.
type Dictionary struct {
	phrases map[string]string
	maxLen  int
}

// DefaultDictionary returns the built-in skills dictionary with its aliases.
func DefaultDictionary() *Dictionary {
	return NewDictionary(parseSkills(defaultSkills), defaultAliases)
}

// NewDictionary builds a dictionary from canonical skills and alias → canonical
// pairs. Every entry is normalized; entries that normalize to nothing are skipped.
// Alias chains such as psql → postgres → postgresql resolve to their final
// target; a cycle resolves to its lexically smallest member.
func NewDictionary(skills []string, aliases map[string]string) *Dictionary {
	d := &Dictionary{phrases: make(map[string]string, len(skills)+len(aliases))}
	d.add(skills, aliases)
	return d
}

// With returns a copy of the dictionary extended with more skills and aliases.
func (d *Dictionary) With(skills []string, aliases map[string]string) *Dictionary {
	ext := &Dictionary{
		phrases: make(map[string]string, len(d.phrases)+len(skills)+len(aliases)),
		maxLen:  d.maxLen,
	}
	for phrase, canonical := range d.phrases {
		ext.phrases[phrase] = canonical
	}
	ext.add(skills, aliases)
	return ext
}

// Len returns the number of phrases the dictionary recognizes, aliases included.
func (d *Dictionary) Len() int {
	return len(d.phrases)
}

// Lookup returns the canonical keyword for a normalized phrase.
func (d *Dictionary) Lookup(phrase string) (string, bool) {
	canonical, ok := d.phrases[phrase]
	return canonical, ok
}

// Canonical normalizes a free-form keyword and maps it through the alias table.
// Unknown keywords are returned normalized but otherwise unchanged.
func (d *Dictionary) Canonical(keyword string) string {
	phrase := textnorm.Phrase(keyword)
	if canonical, ok := d.phrases[phrase]; ok {
		return canonical
	}
	return phrase
}

func (d *Dictionary) add(skills []string, aliases map[string]string) {
	for _, skill := range skills {
		phrase := textnorm.Phrase(skill)
		if phrase == "" {
			continue
		}
		d.put(phrase, phrase)
	}

	for _, alias := range slices.Sorted(maps.Keys(aliases)) {
		phrase := textnorm.Phrase(alias)
		target := textnorm.Phrase(aliases[alias])
		if phrase == "" || target == "" {
			continue
		}
		d.put(phrase, target)
		if _, ok := d.phrases[target]; !ok {
			d.put(target, target)
		}
	}

	d.settle()
}

// settle points every phrase at the end of its alias chain.
func (d *Dictionary) settle() {
	snapshot := maps.Clone(d.phrases)
	for phrase := range snapshot {
		d.phrases[phrase] = resolve(snapshot, phrase)
	}
}

func resolve(phrases map[string]string, phrase string) string {
	seen := make(map[string]bool)
	current := phrase
	for !seen[current] {
		seen[current] = true
		next, ok := phrases[current]
		if !ok || next == current {
			return current
		}
		current = next
	}

	// current sits on a cycle.
	smallest := current
	for next := phrases[current]; next != current; next = phrases[next] {
		if next < smallest {
			smallest = next
		}
	}
	return smallest
}

func (d *Dictionary) put(phrase, canonical string) {
	d.phrases[phrase] = canonical
	if n := len(strings.Fields(phrase)); n > d.maxLen {
		d.maxLen = n
	}
}

func parseSkills(raw string) []string {
	var skills []string
	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		skills = append(skills, line)
	}
	return skills
}
