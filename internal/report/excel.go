package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/careercompass/internal/analysis"
	"github.com/spigell/careercompass/internal/keywords"
	"github.com/spigell/careercompass/internal/recommend"
)

const (
	summarySheet  = "Summary"
	skillsSheet   = "Skills"
	projectsSheet = "Projects"
)

// ExportToExcel writes r to an xlsx workbook with Summary, Skills and Projects
// sheets. ".xlsx" is appended to path when missing. It returns the written path.
func ExportToExcel(r *analysis.Report, path string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return "", err
	}
	for _, name := range []string{skillsSheet, projectsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return "", fmt.Errorf("failed to create %s sheet: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return "", err
	}

	if err := writeSummarySheet(f, header, r); err != nil {
		return "", fmt.Errorf("failed to write summary sheet: %w", err)
	}
	if err := writeSkillsSheet(f, header, r); err != nil {
		return "", fmt.Errorf("failed to write skills sheet: %w", err)
	}
	if err := writeProjectsSheet(f, header, r); err != nil {
		return "", fmt.Errorf("failed to write projects sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save %q: %w", path, err)
	}
	return path, nil
}

func writeSummarySheet(f *excelize.File, header int, r *analysis.Report) error {
	rows := [][]any{
		{"Field", "Value"},
		{"Analysis ID", r.ID},
		{"Generated", r.CreatedAt.Format("2006-01-02 15:04:05")},
		{"Resume", r.ResumeFile},
		{"Email", r.Contact.Email},
		{"Phone", r.Contact.Phone},
		{"Match %", r.Match.MatchPercent},
		{"Band", string(BandOf(r.Match.MatchPercent))},
		{"Target %", r.TargetPercent},
		{"Delta vs target", r.TargetDelta},
		{"Similarity", r.Match.Similarity},
		{"Coverage", r.Match.Coverage},
		{"Matched skills", listOr(r.Match.Matched, noOverlapsMessage)},
		{"Missing skills", listOr(r.Match.Missing, fullyCoveredMessage)},
	}
	if len(r.Recommendations.Suggested) == 0 {
		rows = append(rows, []any{"Suggested projects", noSuggestionsMessage})
	} else {
		rows = append(rows, []any{"Suggested projects", len(r.Recommendations.Suggested)})
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 60); err != nil {
		return err
	}
	return writeRows(f, summarySheet, header, rows)
}

func writeSkillsSheet(f *excelize.File, header int, r *analysis.Report) error {
	resume := keywords.NewSet(r.ResumeKeywords...)
	jd := keywords.NewSet(r.JDKeywords...)
	all := resume.With(r.JDKeywords...)

	rows := [][]any{{"Skill", "In resume", "In job description", "Status"}}
	for _, skill := range all.Items() {
		inResume, inJD := resume.Contains(skill), jd.Contains(skill)
		status := "extra"
		switch {
		case inResume && inJD:
			status = "matched"
		case inJD:
			status = "missing"
		}
		rows = append(rows, []any{skill, yesNo(inResume), yesNo(inJD), status})
	}

	if err := f.SetColWidth(skillsSheet, "A", "D", 20); err != nil {
		return err
	}
	return writeRows(f, skillsSheet, header, rows)
}

func writeProjectsSheet(f *excelize.File, header int, r *analysis.Report) error {
	missing := keywords.NewSet(r.Recommendations.Missing...)

	rows := [][]any{{"Rank", "Project", "Domain", "Level", "Covers", "Tools", "Description"}}
	for i, p := range r.Recommendations.Suggested {
		rows = append(rows, []any{
			i + 1,
			p.Title,
			p.Domain,
			string(p.Level),
			strings.Join(recommend.Covers(p, missing), ", "),
			strings.Join(p.Tools, ", "),
			p.Description,
		})
	}

	if err := f.SetColWidth(projectsSheet, "B", "B", 32); err != nil {
		return err
	}
	if err := f.SetColWidth(projectsSheet, "G", "G", 60); err != nil {
		return err
	}
	return writeRows(f, projectsSheet, header, rows)
}

// writeRows fills sheet from A1 and styles the first row as a header.
func writeRows(f *excelize.File, sheet string, header int, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if len(rows) == 0 {
		return nil
	}

	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, header)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
