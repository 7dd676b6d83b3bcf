// Package analysis runs the résumé against job description pipeline and
// collects its outputs into a Report.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/careercompass/internal/extract"
	"github.com/spigell/careercompass/internal/keywords"
	"github.com/spigell/careercompass/internal/logger"
	"github.com/spigell/careercompass/internal/matching"
	"github.com/spigell/careercompass/internal/recommend"
	"github.com/spigell/careercompass/internal/utils"
	"github.com/spigell/careercompass/internal/vectorize"
)

// DefaultTargetPercent is the match score a résumé is measured against.
const DefaultTargetPercent = 75.0

const previewLength = 120

// ErrNoResume is returned when no résumé file was named.
var ErrNoResume = errors.New("a résumé file is required")

// Options configures an Analyzer. Zero values select defaults.
type Options struct {
	Extractor      *keywords.Extractor
	Matcher        *matching.Matcher
	Catalog        *recommend.Catalog
	MaxSuggestions int
	TargetPercent  float64
	Logger         *zap.Logger

	newID func() string
	now   func() time.Time
}

// Input is one résumé and job description pair.
type Input struct {
	ResumeFile string
	ResumeData []byte
	JDText     string
}

// Report bundles everything one analysis produced.
type Report struct {
	ID              string               `json:"id"`
	CreatedAt       time.Time            `json:"created_at"`
	ResumeFile      string               `json:"resume_file"`
	Contact         keywords.ContactInfo `json:"contact"`
	ResumeKeywords  []string             `json:"resume_keywords"`
	JDKeywords      []string             `json:"jd_keywords"`
	Match           matching.Result      `json:"match"`
	Recommendations recommend.Result     `json:"recommendations"`
	TargetPercent   float64              `json:"target_percent"`
	TargetDelta     float64              `json:"target_delta"`
	Warnings        []string             `json:"warnings,omitempty"`
}

// Analyzer is safe for concurrent use; it holds no per-analysis state.
type Analyzer struct {
	extractor *keywords.Extractor
	matcher   *matching.Matcher
	catalog   *recommend.Catalog
	limit     int
	target    float64
	logger    *zap.Logger
	newID     func() string
	now       func() time.Time
}

// New validates opts and builds an Analyzer.
func New(opts Options) (*Analyzer, error) {
	if opts.MaxSuggestions < 0 {
		return nil, fmt.Errorf("max suggestions must not be negative, got %d", opts.MaxSuggestions)
	}
	if opts.TargetPercent < 0 || opts.TargetPercent > 100 {
		return nil, fmt.Errorf("target percent must be within [0,100], got %v", opts.TargetPercent)
	}

	a := &Analyzer{
		extractor: opts.Extractor,
		matcher:   opts.Matcher,
		catalog:   opts.Catalog,
		limit:     opts.MaxSuggestions,
		target:    opts.TargetPercent,
		logger:    logger.WithFields(opts.Logger),
		newID:     opts.newID,
		now:       opts.now,
	}

	if a.extractor == nil {
		a.extractor = keywords.NewExtractor(nil)
	}
	if a.matcher == nil {
		m, err := matching.NewMatcher(matching.DefaultCosineWeight)
		if err != nil {
			return nil, err
		}
		a.matcher = m
	}
	if a.target == 0 {
		a.target = DefaultTargetPercent
	}
	if a.newID == nil {
		a.newID = uuid.NewString
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.catalog.Len() == 0 {
		a.logger.Warn("project catalog is empty; no projects will be suggested")
	}

	return a, nil
}

// Analyze extracts keywords from both documents, scores the match and ranks
// catalog projects against the gap. A résumé that cannot be parsed is treated as
// empty and reported in Warnings. Empty inputs are valid.
func (a *Analyzer) Analyze(in Input) (*Report, error) {
	if strings.TrimSpace(in.ResumeFile) == "" {
		return nil, ErrNoResume
	}

	report := &Report{
		ID:             a.newID(),
		CreatedAt:      a.now().UTC(),
		ResumeFile:     in.ResumeFile,
		TargetPercent:  a.target,
		ResumeKeywords: []string{},
		JDKeywords:     []string{},
	}
	log := logger.WithAnalysis(a.logger, report.ID, in.ResumeFile)
	log.Info("analysis started", zap.Int("resume_bytes", len(in.ResumeData)), zap.Int("jd_chars", len(in.JDText)))

	resumeText, err := extract.Text(in.ResumeFile, in.ResumeData)
	if err != nil {
		log.Warn("resume text extraction failed; continuing with empty text", zap.Error(err))
		report.Warnings = append(report.Warnings, err.Error())
		resumeText = ""
	}
	log.Debug("resume text", zap.String("preview", utils.Preview(resumeText, previewLength)))
	log.Debug("job description text", zap.String("preview", utils.Preview(in.JDText, previewLength)))

	report.Contact = keywords.ExtractBasicInfo(resumeText)

	resumeKW := a.extractor.Extract(resumeText)
	jdKW := a.extractor.Extract(in.JDText)
	report.ResumeKeywords = resumeKW.Items()
	report.JDKeywords = jdKW.Items()
	log.Info("keywords extracted",
		zap.Int("resume_keywords", resumeKW.Len()),
		zap.Int("jd_keywords", jdKW.Len()),
	)
	if jdKW.IsEmpty() {
		log.Warn("job description has no recognized skills; match defaults to 100")
	}

	vocab, resumeVec, jdVec := vectorize.Fit(resumeKW, jdKW)
	report.Match = a.matcher.Compare(resumeKW, resumeVec, jdKW, jdVec)
	report.TargetDelta = math.Round((report.Match.MatchPercent-a.target)*10) / 10
	log.Info("match scored",
		zap.Int("vocabulary", vocab.Len()),
		zap.Float64("similarity", report.Match.Similarity),
		zap.Float64("coverage", report.Match.Coverage),
		zap.Float64("match_percent", report.Match.MatchPercent),
		zap.Int("matched", len(report.Match.Matched)),
		zap.Int("missing", len(report.Match.Missing)),
	)

	report.Recommendations = recommend.Recommend(jdKW, resumeKW, a.catalog, a.limit)
	initial := a.catalog.Len()
	left := len(report.Recommendations.Suggested)
	log.Info("recommend step",
		zap.Int("initial", initial),
		zap.Int("dropped", initial-left),
		zap.Int("left", left),
	)

	log.Info("analysis finished", zap.Float64("target_delta", report.TargetDelta))
	return report, nil
}
