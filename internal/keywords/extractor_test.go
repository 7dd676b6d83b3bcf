package keywords

import (
	"reflect"
	"testing"
)

func TestExtractorExtract(t *testing.T) {
	t.Parallel()

	extractor := NewExtractor(nil)

	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{
			name:   "empty text",
			input:  "",
			expect: []string{},
		},
		{
			name:   "no recognizable skills",
			input:  "I enjoy long walks on the beach and good coffee.",
			expect: []string{},
		},
		{
			name:   "resume paragraph with aliases",
			input:  "Experienced in Python, Pandas and SQL. Built ML pipelines on AWS with Docker/K8s.",
			expect: []string{"python", "pandas", "sql", "machine learning", "aws", "docker", "kubernetes"},
		},
		{
			name:   "multi word skills win over their parts",
			input:  "Machine learning and deep learning with scikit-learn",
			expect: []string{"machine learning", "deep learning", "scikit learn"},
		},
		{
			name:   "deduplicates keeping first position",
			input:  "sql, Python, PYTHON, SQL, docker",
			expect: []string{"sql", "python", "docker"},
		},
		{
			name:   "tech glyphs",
			input:  "Strong C++ and C# background, some Node.js.",
			expect: []string{"c++", "c#", "node.js"},
		},
		{
			name:   "phrase does not cross a sentence end",
			input:  "We process big data. Science teams rely on Tableau.",
			expect: []string{"tableau"},
		},
		{
			name:   "phrase does not cross a dropped stopword",
			input:  "Owned the data and analysis of churn.",
			expect: []string{},
		},
		{
			name:   "phrase does not cross a semicolon",
			input:  "Handled customer data; engineering managers reviewed it.",
			expect: []string{},
		},
		{
			name:   "phrase inside one clause still matches",
			input:  "Five years of data science, then data engineering.",
			expect: []string{"data science", "data engineering"},
		},
		{
			name:   "stray dots around words",
			input:  "Skills: ...python, sql..., .python and .NET",
			expect: []string{"python", "sql", ".net"},
		},
		{
			name:   "a/b testing keeps a readable form",
			input:  "Ran A/B testing and split testing on checkout.",
			expect: []string{"ab testing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := extractor.Extract(tt.input).Items()
			if !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestExtractorWithExtendedDictionary(t *testing.T) {
	dict := DefaultDictionary().With(
		[]string{"Apache Airflow"},
		map[string]string{"tf": "terraform"},
	)
	extractor := NewExtractor(dict)

	got := extractor.Extract("Apache Airflow DAGs and TF modules").Items()
	expect := []string{"apache airflow", "terraform"}
	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected %q, got %q", expect, got)
	}

	// The base dictionary keeps its own alias.
	base := NewExtractor(nil).Extract("TF models").Items()
	if !reflect.DeepEqual(base, []string{"tensorflow"}) {
		t.Fatalf("expected base dictionary to be untouched, got %q", base)
	}

	if dict.Len() <= DefaultDictionary().Len() {
		t.Fatalf("expected extended dictionary to be larger")
	}
}

func TestDictionaryCanonical(t *testing.T) {
	t.Parallel()

	dict := DefaultDictionary()
	cases := map[string]string{
		"K8s":           "kubernetes",
		"  PostgreSQL ": "postgresql",
		"Unknown Thing": "unknown thing",
		"REST APIs":     "rest api",
	}

	for input, expect := range cases {
		if got := dict.Canonical(input); got != expect {
			t.Fatalf("Canonical(%q): expected %q, got %q", input, expect, got)
		}
	}
}

func TestDictionaryAliasChains(t *testing.T) {
	t.Parallel()

	aliases := map[string]string{"psql": "postgres", "postgres": "postgresql"}
	for i := 0; i < 100; i++ {
		dict := NewDictionary([]string{"sql"}, aliases)
		for _, input := range []string{"psql", "postgres", "postgresql"} {
			if got := dict.Canonical(input); got != "postgresql" {
				t.Fatalf("run %d: Canonical(%q): expected %q, got %q", i, input, "postgresql", got)
			}
		}
	}

	extended := DefaultDictionary().With(nil, map[string]string{"pg": "postgres"})
	if got := extended.Canonical("pg"); got != "postgresql" {
		t.Fatalf("expected extended alias to reach %q, got %q", "postgresql", got)
	}
}

func TestDictionaryAliasCycle(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		dict := NewDictionary(nil, map[string]string{"beta": "alpha", "alpha": "beta"})
		for _, input := range []string{"alpha", "beta"} {
			if got := dict.Canonical(input); got != "alpha" {
				t.Fatalf("run %d: Canonical(%q): expected %q, got %q", i, input, "alpha", got)
			}
		}
	}
}

func TestExtractBasicInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect ContactInfo
	}{
		{
			name:   "email and phone",
			input:  "Jane Doe\njane.doe@example.com | +1 (555) 123-4567\nExperience 2019 - 2021",
			expect: ContactInfo{Email: "jane.doe@example.com", Phone: "+1 (555) 123-4567"},
		},
		{
			name:   "parenthesized area code",
			input:  "Phone: (555) 123-4567",
			expect: ContactInfo{Phone: "(555) 123-4567"},
		},
		{
			name:   "parenthesized number mid sentence",
			input:  "Call (415) 555-0199 today or mail jo@example.org",
			expect: ContactInfo{Email: "jo@example.org", Phone: "(415) 555-0199"},
		},
		{
			name:   "nothing to find",
			input:  "no contact details here",
			expect: ContactInfo{},
		},
		{
			name:   "date range is not a phone",
			input:  "Acme Corp 2019 - 2021",
			expect: ContactInfo{},
		},
		{
			name:   "empty text",
			input:  "",
			expect: ContactInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractBasicInfo(tt.input); got != tt.expect {
				t.Fatalf("expected %+v, got %+v", tt.expect, got)
			}
		})
	}
}
