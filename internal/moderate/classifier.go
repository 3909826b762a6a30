package moderate

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/abhisek/commentguard/internal/llm"
)

// Classifier produces a verdict for a single piece of comment text.
type Classifier interface {
	// Classify returns a normalized verdict, or an error from the llm
	// outcome taxonomy (prompt blocked, generation stopped, empty,
	// invalid response, rate limit, provider unavailable).
	Classify(ctx context.Context, text string) (*Verdict, error)
}

// LLMClassifier implements Classifier using an LLM provider.
type LLMClassifier struct {
	provider llm.Provider
	config   Config
}

// NewClassifier creates an LLMClassifier with the given provider and config.
func NewClassifier(provider llm.Provider, cfg Config) *LLMClassifier {
	return &LLMClassifier{provider: provider, config: cfg}
}

// verdictOutput is the raw LLM response before normalization.
type verdictOutput struct {
	IsOffensive bool   `json:"is_offensive"`
	OffenseType string `json:"offense_type"`
	Explanation string `json:"explanation"`
	Severity    int    `json:"severity"`
}

// Classify sends one comment to the provider and normalizes the response.
func (c *LLMClassifier) Classify(ctx context.Context, text string) (*Verdict, error) {
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(text)},
		},
		Schema:      VerdictSchema,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	var raw verdictOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		// Schema validation passed but decoding did not; treat as a
		// malformed response so the retry policy applies.
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}

	return normalizeVerdict(raw), nil
}

// ModelID returns the underlying provider's model identifier.
func (c *LLMClassifier) ModelID() string {
	return c.provider.ModelID()
}

// normalizeVerdict maps a raw response into a canonical Verdict:
// offense types are case-normalized, severity is clamped to [0,5],
// and the severity/is_offensive invariant is restored if the model
// violated it.
func normalizeVerdict(raw verdictOutput) *Verdict {
	v := &Verdict{
		IsOffensive: raw.IsOffensive,
		OffenseType: normalizeOffenseType(raw.OffenseType),
		Explanation: raw.Explanation,
		Severity:    raw.Severity,
	}

	if v.Severity < 0 {
		v.Severity = 0
	}
	if v.Severity > 5 {
		v.Severity = 5
	}

	if !v.IsOffensive {
		v.Severity = 0
		v.OffenseType = OffenseNone
	} else if v.Severity == 0 {
		v.Severity = 1
	}

	return v
}

// normalizeOffenseType lowercases and canonicalizes an offense type string.
func normalizeOffenseType(s string) OffenseType {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	switch t := OffenseType(s); t {
	case OffenseHateSpeech, OffenseToxicity, OffenseProfanity,
		OffenseHarassment, OffenseSpam, OffenseNone:
		return t
	case "":
		return OffenseUnknown
	default:
		return t
	}
}
