package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/spigell/careercompass/internal/analysis"
)

// Summary renders r as the human-readable lines printed after an analysis.
func Summary(r *analysis.Report) []string {
	lines := []string{
		fmt.Sprintf("Analysis %s", r.ID),
		fmt.Sprintf("Resume: %s", r.ResumeFile),
	}
	if r.Contact.Email != "" {
		lines = append(lines, fmt.Sprintf("Email: %s", r.Contact.Email))
	}
	if r.Contact.Phone != "" {
		lines = append(lines, fmt.Sprintf("Phone: %s", r.Contact.Phone))
	}

	lines = append(lines,
		fmt.Sprintf("Match: %.1f%% (%s, %+.1f vs target %.0f%%)",
			r.Match.MatchPercent, BandOf(r.Match.MatchPercent), r.TargetDelta, r.TargetPercent),
		fmt.Sprintf("Matched skills: %s", listOr(r.Match.Matched, noOverlapsMessage)),
		fmt.Sprintf("Missing skills: %s", listOr(r.Match.Missing, fullyCoveredMessage)),
	)

	if len(r.Recommendations.Suggested) == 0 {
		lines = append(lines, "Suggested projects: "+noSuggestionsMessage)
	} else {
		lines = append(lines, "Suggested projects:")
		for i, p := range r.Recommendations.Suggested {
			lines = append(lines, fmt.Sprintf("  %d. %s [%s, %s]", i+1, p.Title, p.Domain, p.Level))
		}
	}

	for _, w := range r.Warnings {
		lines = append(lines, "Warning: "+w)
	}
	return lines
}

// WriteSummary prints Summary(r) to w, one line each.
func WriteSummary(w io.Writer, r *analysis.Report) error {
	_, err := io.WriteString(w, strings.Join(Summary(r), "\n")+"\n")
	return err
}

func listOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}
