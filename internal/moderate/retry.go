package moderate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/commentguard/internal/llm"
)

// ErrExhausted is the explicit give-up signal: the attempt budget ran out
// without a usable verdict. Callers must record it as a failure rather
// than a (possibly false) not-offensive classification.
var ErrExhausted = errors.New("classification attempts exhausted")

// Retrier is a Classifier decorator applying the classification retry
// policy: terminal service outcomes become fixed fallback verdicts with
// no attempt consumed, recoverable ones are retried with a fixed delay.
type Retrier struct {
	inner  Classifier
	config RetryConfig
	logger *slog.Logger
}

// WithRetry wraps a Classifier with the retry policy.
func WithRetry(c Classifier, cfg RetryConfig, logger *slog.Logger) *Retrier {
	return &Retrier{inner: c, config: cfg, logger: logger}
}

// Classify invokes the inner classifier under the retry policy.
func (r *Retrier) Classify(ctx context.Context, text string) (*Verdict, error) {
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		verdict, err := r.inner.Classify(ctx, text)
		if err == nil {
			return verdict, nil
		}

		// A blocked or truncated classification is signal, not noise:
		// the refusal itself implies caution, so flag the comment
		// instead of retrying or dropping it.
		if fb := fallbackVerdict(err); fb != nil {
			r.logger.Warn("classifier returned terminal outcome, using fallback verdict",
				"offense_type", fb.OffenseType, "reason", err.Error())
			return fb, nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}

		lastErr = err
		r.logger.Warn("classification attempt failed",
			"attempt", attempt, "max_attempts", r.config.MaxAttempts, "error", err)

		if attempt == r.config.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.config.Delay):
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", ErrExhausted, r.config.MaxAttempts, lastErr)
}

// fallbackVerdict maps terminal classifier outcomes to their fixed
// policy-defined verdicts. Returns nil for retryable errors.
func fallbackVerdict(err error) *Verdict {
	var blocked *llm.ErrPromptBlocked
	if errors.As(err, &blocked) {
		return &Verdict{
			IsOffensive: true,
			OffenseType: OffenseBlocked,
			Explanation: fmt.Sprintf("Prompt blocked by safety filters. Reason: %s", blocked.Reason),
			Severity:    4,
		}
	}

	var stopped *llm.ErrGenerationStopped
	if errors.As(err, &stopped) {
		return &Verdict{
			IsOffensive: true,
			OffenseType: OffenseStopped,
			Explanation: fmt.Sprintf("Content generation stopped, potentially due to policy violation. Reason: %s", stopped.Reason),
			Severity:    3,
		}
	}

	var empty *llm.ErrEmptyResponse
	if errors.As(err, &empty) {
		return &Verdict{
			IsOffensive: true,
			OffenseType: OffenseBlockedUnclear,
			Explanation: "Model response was blocked or empty, potentially due to sensitive content.",
			Severity:    3,
		}
	}

	return nil
}
