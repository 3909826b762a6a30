package moderate

import "github.com/abhisek/commentguard/internal/llm"

// VerdictSchema defines the JSON schema for classification responses.
// All four fields are required; a response missing any of them fails
// validation at the provider and is treated as malformed, not as a
// successful classification.
var VerdictSchema = &llm.Schema{
	Name:        "comment-verdict",
	Description: "Offensiveness classification of a single user comment",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"is_offensive": map[string]any{
				"type":        "boolean",
				"description": "true if the comment is offensive, false otherwise",
			},
			"offense_type": map[string]any{
				"type":        "string",
				"enum":        []any{"hate_speech", "toxicity", "profanity", "harassment", "spam", "none"},
				"description": "The category of offense, or \"none\" if not offensive",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "A brief explanation for the classification",
			},
			"severity": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     5,
				"description": "Estimated severity from 1-5, 5 being most severe; 0 if not offensive",
			},
		},
		"required":             []any{"is_offensive", "offense_type", "explanation", "severity"},
		"additionalProperties": false,
	},
}
