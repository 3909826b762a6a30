package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// The error types below form a closed taxonomy of classification call
// outcomes. Callers distinguish them with errors.As; anything outside the
// set is treated as a transient failure.

// ErrPromptBlocked indicates the service refused to process the prompt at
// all (a safety block at the prompt level). Terminal: retrying the same
// text will be blocked again.
type ErrPromptBlocked struct {
	Reason string
}

func (e *ErrPromptBlocked) Error() string {
	return fmt.Sprintf("prompt blocked by safety filters: %s", e.Reason)
}

// ErrGenerationStopped indicates the service began generating but halted
// before completion (safety stop, recitation, token limit). Terminal.
type ErrGenerationStopped struct {
	Reason string
}

func (e *ErrGenerationStopped) Error() string {
	return fmt.Sprintf("generation stopped before completion: %s", e.Reason)
}

// ErrEmptyResponse indicates the service returned no content at all,
// e.g. a full safety block with no candidate parts. Terminal.
type ErrEmptyResponse struct{}

func (e *ErrEmptyResponse) Error() string {
	return "empty response: no content returned"
}

// ErrInvalidResponse indicates the LLM returned content that is not
// parseable as the requested structure or is missing required fields.
// Retryable.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrRateLimit indicates the provider returned a rate limit error (429).
// Retryable.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
// Retryable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }
