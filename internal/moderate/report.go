package moderate

import (
	"sort"
	"strings"
)

// topSeverityLimit bounds the ranked list in the report.
const topSeverityLimit = 5

// Summarize derives a Report from an annotated sequence. It is pure and
// idempotent: the same input always yields the same Report, and the
// input is never modified.
func Summarize(comments []AnnotatedComment) Report {
	r := Report{
		Total:         len(comments),
		ByOffenseType: make(map[OffenseType]int),
	}

	var offensive []AnnotatedComment
	for _, c := range comments {
		switch {
		case c.Analysis.Failed():
			if c.Analysis.Error == MarkerMissingText {
				r.MissingText++
			} else {
				r.Exhausted++
			}
		case c.Analysis.Offensive():
			r.OffensiveCount++
			t := normalizeOffenseType(string(c.Analysis.Verdict.OffenseType))
			r.ByOffenseType[t]++
			offensive = append(offensive, c)
		}
	}

	// Stable sort keeps input order among equal severities, which makes
	// the top list reproducible run to run.
	sort.SliceStable(offensive, func(i, j int) bool {
		return offensive[i].Analysis.Verdict.Severity > offensive[j].Analysis.Verdict.Severity
	})
	if len(offensive) > topSeverityLimit {
		offensive = offensive[:topSeverityLimit]
	}
	r.TopSeverity = append([]AnnotatedComment{}, offensive...)

	return r
}

// SortedTypes returns the offense types present in the breakdown in
// lexical order, for deterministic presentation.
func (r Report) SortedTypes() []OffenseType {
	types := make([]OffenseType, 0, len(r.ByOffenseType))
	for t := range r.ByOffenseType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		return strings.Compare(string(types[i]), string(types[j])) < 0
	})
	return types
}
