package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/careercompass/internal/analysis"
	"github.com/spigell/careercompass/internal/matching"
	"github.com/spigell/careercompass/internal/recommend"
)

func testReport() *analysis.Report {
	return &analysis.Report{
		ID:         "a-1",
		ResumeFile: "cv.txt",
		Match: matching.Result{
			MatchPercent: 58.5,
			Matched:      []string{"python", "sql"},
			Missing:      []string{"aws"},
		},
		Recommendations: recommend.Result{
			Suggested: []recommend.ProjectIdea{{
				Title:       "Infrastructure as Code on AWS",
				Domain:      "Cloud",
				Level:       recommend.LevelIntermediate,
				Description: "Provision a VPC.",
				Tools:       []string{"Terraform", "AWS"},
				Keywords:    []string{"terraform", "aws", "linux"},
			}},
			Missing: []string{"aws"},
		},
		TargetPercent: 75,
		TargetDelta:   -16.5,
	}
}

func TestHandleAction(t *testing.T) {
	tests := []struct {
		action  string
		want    string
		wantErr error
	}{
		{action: PromptMatchedSkills, want: "Matched skills (2):\n  - python\n  - sql\n"},
		{action: PromptMissingSkills, want: "Missing skills (1):\n  - aws\n"},
		{action: PromptExit, wantErr: errExit},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			var out bytes.Buffer
			err := handleAction(tt.action, zap.NewNop(), &out, testReport(), "")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if out.String() != tt.want {
				t.Fatalf("expected output %q, got %q", tt.want, out.String())
			}
		})
	}
}

func TestHandleActionInvalid(t *testing.T) {
	err := handleAction("nope", zap.NewNop(), &bytes.Buffer{}, testReport(), "")
	if err == nil || !strings.Contains(err.Error(), "invalid action") {
		t.Fatalf("expected invalid action error, got %v", err)
	}
}

func TestHandleActionJSONReport(t *testing.T) {
	var out bytes.Buffer
	if err := handleAction(PromptJSONReport, zap.NewNop(), &out, testReport(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	match, ok := decoded["match"].(map[string]any)
	if !ok || match["match_percent"] != 58.5 {
		t.Fatalf("unexpected match section: %v", decoded["match"])
	}
}

func TestHandleActionExport(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	path := filepath.Join(t.TempDir(), "out")

	if err := handleAction(PromptExportExcel, zap.New(core), &bytes.Buffer{}, testReport(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := observed.FilterMessage("report exported").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 export log, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["filename"]; got != path+".xlsx" {
		t.Fatalf("unexpected filename %v", got)
	}
}

func TestWriteProject(t *testing.T) {
	var out bytes.Buffer
	report := testReport()

	if err := writeProject(&out, report.Recommendations.Suggested[0], report.Recommendations.Missing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Infrastructure as Code on AWS (Cloud, intermediate)\nProvision a VPC.\nTools: Terraform, AWS\nCloses: aws\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestNewAnalyzerFromConfig(t *testing.T) {
	config, err := loadConfig(newTestViper(t, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	analyzer, err := newAnalyzer(config, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := analyzer.Analyze(analysis.Input{
		ResumeFile: "cv.txt",
		ResumeData: []byte("Python, Pandas and SQL"),
		JDText:     "Python, SQL, AWS and Terraform",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Recommendations.Suggested) == 0 {
		t.Fatalf("expected suggestions from the built-in catalog")
	}
	if got := result.Recommendations.Suggested[0].Title; got != "Infrastructure as Code on AWS" {
		t.Fatalf("expected the terraform and aws project first, got %q", got)
	}
}
