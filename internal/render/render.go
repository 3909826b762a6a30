// Package render prints human-readable summaries of classification runs.
// It consumes the Report structure; it never computes statistics itself.
package render

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/commentguard/internal/moderate"
)

const (
	separatorWidth = 60
	barWidth       = 30
	sampleLimit    = 3
	textPreview    = 60
)

// InitialSummary prints the pre-run overview: how many comments were
// loaded and a short sample.
func InitialSummary(w io.Writer, comments []moderate.Comment) {
	fmt.Fprintln(w, titleStyle.Render("--- Initial Summary ---"))
	fmt.Fprintf(w, "Total comments loaded: %s\n", countStyle.Render(fmt.Sprintf("%d", len(comments))))

	if len(comments) > 0 {
		fmt.Fprintln(w, "Sample comments:")
		for i, c := range comments {
			if i == sampleLimit {
				break
			}
			fmt.Fprintf(w, "  %d. ID: %s, User: %s, Text: %s\n",
				i+1, c.ID, c.Author, truncate(c.Text, textPreview))
		}
	}
	fmt.Fprintln(w, labelStyle.Render(strings.Repeat("-", 20)))
}

// Report prints the full analysis report: totals, the per-type breakdown
// as a bar chart, and the ranked top offenders with details.
func Report(w io.Writer, r moderate.Report) {
	sep := labelStyle.Render(strings.Repeat("─", separatorWidth))

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("--- Comment Analysis Report ---"))
	fmt.Fprintf(w, "Total comments processed: %s\n", countStyle.Render(fmt.Sprintf("%d", r.Total)))
	fmt.Fprintf(w, "Number of offensive comments detected: %s\n", dangerStyle.Render(fmt.Sprintf("%d", r.OffensiveCount)))
	if r.MissingText > 0 {
		fmt.Fprintf(w, "Comments with missing text: %s\n", cautionStyle.Render(fmt.Sprintf("%d", r.MissingText)))
	}
	if r.Exhausted > 0 {
		fmt.Fprintf(w, "Comments that failed after retries: %s\n", cautionStyle.Render(fmt.Sprintf("%d", r.Exhausted)))
	}

	if r.OffensiveCount > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render("Offense Type Breakdown:"))
		renderBreakdown(w, r)

		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render("Top 5 Most Offensive Comments (by estimated severity):"))
		for i, c := range r.TopSeverity {
			v := c.Analysis.Verdict
			fmt.Fprintf(w, "%d. ID: %s, User: %s, Severity: %s\n",
				i+1, c.ID, c.Author, severityStyle(v.Severity).Render(fmt.Sprintf("%d", v.Severity)))
			fmt.Fprintf(w, "   Comment: %s\n", truncate(c.Text, 2*textPreview))
			fmt.Fprintf(w, "   Type: %s, Explanation: %s\n", v.OffenseType, v.Explanation)
			fmt.Fprintln(w, labelStyle.Render(strings.Repeat("-", 10)))
		}
	}

	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, titleStyle.Render("--- End of Report ---"))
}

// renderBreakdown draws scaled bars for the per-type counts, sorted by
// offense type for deterministic output.
func renderBreakdown(w io.Writer, r moderate.Report) {
	maxCount := 0
	for _, n := range r.ByOffenseType {
		if n > maxCount {
			maxCount = n
		}
	}

	for _, t := range r.SortedTypes() {
		n := r.ByOffenseType[t]
		width := barWidth * n / maxCount
		if width < 1 {
			width = 1
		}
		bar := barStyle.Render(strings.Repeat("█", width))
		fmt.Fprintf(w, "- %-16s %s %d\n", capitalize(string(t)), bar, n)
	}
}

// Stats prints the pipeline stage counters at the end of a run.
func Stats(w io.Writer, s moderate.Stats) {
	fmt.Fprintf(w, "Pre-filtered: %s  Remote-classified: %s  Failed: %s\n",
		okStyle.Render(fmt.Sprintf("%d", s.Prefiltered)),
		countStyle.Render(fmt.Sprintf("%d", s.RemoteClassified)),
		cautionStyle.Render(fmt.Sprintf("%d", s.Failed())))
}

func severityStyle(sev int) lipgloss.Style {
	switch {
	case sev >= 4:
		return dangerStyle
	case sev >= 2:
		return cautionStyle
	default:
		return okStyle
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
