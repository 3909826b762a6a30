package moderate

import "fmt"

const systemPrompt = `You are a content moderation assistant. Analyze the user comment you are given and determine if it is offensive.

Rules:
- Judge only the comment text itself, not the author.
- "is_offensive" is true if the comment contains hate speech, toxicity, profanity, harassment, or spam.
- "offense_type" names the dominant category, or "none" if the comment is not offensive.
- "severity" estimates how severe the offense is from 1 (mild) to 5 (most severe). Use 0 if and only if the comment is not offensive.
- "explanation" is a brief, one or two sentence justification for the classification.`

// buildUserMessage embeds the raw comment text in the fixed instruction
// template sent to the classifier.
func buildUserMessage(text string) string {
	return fmt.Sprintf("Comment: %q", text)
}
