package analysis

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/careercompass/internal/logger"
	"github.com/spigell/careercompass/internal/recommend"
)

const resumeText = `Jane Doe
jane@example.com | +1 (555) 123-4567
Skills: Python, Pandas, SQL`

const jdText = "We are hiring a data engineer with Python, SQL and AWS experience."

func testCatalog(t *testing.T) *recommend.Catalog {
	t.Helper()
	c, err := recommend.NewCatalog([]recommend.ProjectIdea{
		{
			Title: "Local ETL", Domain: "Data", Level: recommend.LevelBeginner,
			Description: "Load CSV files into SQL.", Tools: []string{"Python"}, Keywords: []string{"python", "sql"},
		},
		{
			Title: "Serverless Pipeline", Domain: "Cloud", Level: recommend.LevelIntermediate,
			Description: "Move the ETL to the cloud.", Tools: []string{"AWS Lambda"}, Keywords: []string{"aws", "python"},
		},
	}, nil)
	require.NoError(t, err)
	return c
}

func newAnalyzer(t *testing.T, log *zap.Logger) *Analyzer {
	t.Helper()
	a, err := New(Options{
		Catalog: testCatalog(t),
		Logger:  log,
		newID:   func() string { return "analysis-1" },
		now:     func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return a
}

func TestAnalyze(t *testing.T) {
	a := newAnalyzer(t, zap.NewNop())

	report, err := a.Analyze(Input{ResumeFile: "resume.txt", ResumeData: []byte(resumeText), JDText: jdText})
	require.NoError(t, err)

	assert.Equal(t, "analysis-1", report.ID)
	assert.Equal(t, "jane@example.com", report.Contact.Email)
	assert.Equal(t, "+1 (555) 123-4567", report.Contact.Phone)
	assert.Equal(t, []string{"python", "pandas", "sql"}, report.ResumeKeywords)
	assert.Equal(t, []string{"python", "sql", "aws"}, report.JDKeywords)

	assert.InDelta(t, 58.5, report.Match.MatchPercent, 1e-9)
	assert.Equal(t, []string{"python", "sql"}, report.Match.Matched)
	assert.Equal(t, []string{"aws"}, report.Match.Missing)
	assert.InDelta(t, -16.5, report.TargetDelta, 1e-9)
	assert.Equal(t, DefaultTargetPercent, report.TargetPercent)

	require.Len(t, report.Recommendations.Suggested, 1)
	assert.Equal(t, "Serverless Pipeline", report.Recommendations.Suggested[0].Title)
	assert.Empty(t, report.Warnings)
}

func TestAnalyzeEmptyJobDescription(t *testing.T) {
	a := newAnalyzer(t, zap.NewNop())

	report, err := a.Analyze(Input{ResumeFile: "resume.txt", ResumeData: []byte(resumeText)})
	require.NoError(t, err)

	assert.Equal(t, 100.0, report.Match.MatchPercent)
	assert.Empty(t, report.Match.Matched)
	assert.Empty(t, report.Match.Missing)
	assert.Empty(t, report.Recommendations.Suggested)
	assert.NotNil(t, report.JDKeywords)
}

func TestAnalyzeUnreadableResume(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	a := newAnalyzer(t, zap.New(core))

	report, err := a.Analyze(Input{ResumeFile: "resume.pdf", ResumeData: []byte("garbage"), JDText: jdText})
	require.NoError(t, err)

	assert.Empty(t, report.ResumeKeywords)
	assert.Equal(t, 0.0, report.Match.MatchPercent)
	assert.Equal(t, []string{"python", "sql", "aws"}, report.Match.Missing)
	require.Len(t, report.Warnings, 1)

	warnings := observed.FilterLevelExact(zapcore.WarnLevel).FilterMessageSnippet("extraction failed").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "analysis-1", warnings[0].ContextMap()[logger.FieldAnalysisID])
	assert.Equal(t, "resume.pdf", warnings[0].ContextMap()[logger.FieldResumeFile])

	require.Len(t, report.Recommendations.Suggested, 2)
	assert.Equal(t, "Local ETL", report.Recommendations.Suggested[0].Title)
}

func TestAnalyzeLogsRecommendStep(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	a := newAnalyzer(t, zap.New(core))

	_, err := a.Analyze(Input{ResumeFile: "resume.txt", ResumeData: []byte(resumeText), JDText: jdText})
	require.NoError(t, err)

	steps := observed.FilterMessage("recommend step").All()
	require.Len(t, steps, 1)

	ctx := steps[0].ContextMap()
	assert.Equal(t, int64(2), ctx["initial"])
	assert.Equal(t, int64(1), ctx["dropped"])
	assert.Equal(t, int64(1), ctx["left"])
}

func TestAnalyzeRequiresResume(t *testing.T) {
	a := newAnalyzer(t, nil)

	_, err := a.Analyze(Input{JDText: jdText})
	assert.True(t, errors.Is(err, ErrNoResume))
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := New(Options{MaxSuggestions: -1})
	assert.Error(t, err)

	_, err = New(Options{TargetPercent: 120})
	assert.Error(t, err)
}

func TestNewWarnsOnEmptyCatalog(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	_, err := New(Options{Logger: zap.New(core)})
	require.NoError(t, err)
	assert.Equal(t, 1, observed.FilterMessageSnippet("catalog is empty").Len())
}
