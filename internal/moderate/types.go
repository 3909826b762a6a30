// Package moderate implements the comment classification pipeline:
// a lexical pre-filter, an LLM-backed classifier with bounded retry and
// fallback verdicts, and report aggregation over the annotated results.
package moderate

import "encoding/json"

// Comment is one user comment as loaded from the input collection.
// Immutable once loaded; identity is the ID.
type Comment struct {
	ID     string `json:"comment_id"`
	Author string `json:"username"`
	Text   string `json:"comment_text"`
}

// OffenseType categorizes why a comment was flagged.
type OffenseType string

const (
	OffenseHateSpeech OffenseType = "hate_speech"
	OffenseToxicity   OffenseType = "toxicity"
	OffenseProfanity  OffenseType = "profanity"
	OffenseHarassment OffenseType = "harassment"
	OffenseSpam       OffenseType = "spam"
	OffenseNone       OffenseType = "none"

	// Fallback categories produced by the retry policy, never by the model.
	OffenseBlocked OffenseType = "blocked"
	OffenseStopped OffenseType = "stopped"
	// OffenseBlockedUnclear marks an empty response. The value keeps the
	// original "blocked/unclear" spelling so annotated files round-trip.
	OffenseBlockedUnclear OffenseType = "blocked/unclear"

	OffenseUnknown OffenseType = "unknown"
)

// Verdict is the structured classification outcome for one comment.
// Created exactly once per comment; never mutated after creation.
// For canonical outcomes, Severity is 0 exactly when IsOffensive is false.
type Verdict struct {
	IsOffensive bool        `json:"is_offensive"`
	OffenseType OffenseType `json:"offense_type"`
	Explanation string      `json:"explanation"`
	Severity    int         `json:"severity"`
}

// Analysis is the per-comment result attached to the output record:
// either a Verdict or an error marker, never both.
type Analysis struct {
	Verdict *Verdict
	Error   string
}

// Failed reports whether this analysis is an error marker.
func (a Analysis) Failed() bool { return a.Error != "" }

// Offensive reports whether this analysis holds an offensive verdict.
// Error-marked analyses are neither offensive nor non-offensive.
func (a Analysis) Offensive() bool {
	return a.Verdict != nil && a.Verdict.IsOffensive
}

// analysisError is the serialized form of an error marker.
type analysisError struct {
	Error string `json:"error"`
}

// MarshalJSON writes either the verdict object or {"error": ...},
// matching the annotated file format.
func (a Analysis) MarshalJSON() ([]byte, error) {
	if a.Error != "" {
		return json.Marshal(analysisError{Error: a.Error})
	}
	return json.Marshal(a.Verdict)
}

// UnmarshalJSON reads back either form.
func (a *Analysis) UnmarshalJSON(data []byte) error {
	var probe analysisError
	if err := json.Unmarshal(data, &probe); err == nil && probe.Error != "" {
		a.Error = probe.Error
		a.Verdict = nil
		return nil
	}
	var v Verdict
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	a.Verdict = &v
	a.Error = ""
	return nil
}

// AnnotatedComment pairs a comment with its analysis, 1:1.
type AnnotatedComment struct {
	Comment
	Analysis Analysis `json:"analysis"`
}

// Report summarizes a batch of annotated comments. It is derived state,
// recomputed fresh from the annotated sequence on every call.
type Report struct {
	// Total is the number of comments processed, including failures.
	Total int

	// OffensiveCount counts comments with an offensive verdict.
	// Error-marked comments are tallied separately below.
	OffensiveCount int

	// MissingText and Exhausted count the two failure categories.
	// They are deliberately kept apart rather than merged into one
	// failure counter.
	MissingText int
	Exhausted   int

	// ByOffenseType groups offensive comments by normalized offense type.
	ByOffenseType map[OffenseType]int

	// TopSeverity holds the most severe offensive comments, descending,
	// at most five, input order preserved among equal severities.
	TopSeverity []AnnotatedComment
}
