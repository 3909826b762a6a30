package moderate

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/commentguard/internal/llm"
)

// fakeClassifier returns scripted results in FIFO order and counts calls.
type fakeClassifier struct {
	mu      sync.Mutex
	results []fakeResult
	calls   int
}

type fakeResult struct {
	verdict *Verdict
	err     error
}

func (f *fakeClassifier) Classify(_ context.Context, _ string) (*Verdict, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.results) == 0 {
		return nil, &llm.ErrProviderUnavailable{}
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r.verdict, r.err
}

func (f *fakeClassifier) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testRetryConfig() RetryConfig {
	return RetryConfig{MaxAttempts: 3, Delay: 5 * time.Millisecond}
}

func okVerdict() *Verdict {
	return &Verdict{IsOffensive: false, OffenseType: OffenseNone, Explanation: "fine", Severity: 0}
}

func TestRetrier_SuccessFirstAttempt(t *testing.T) {
	fake := &fakeClassifier{results: []fakeResult{{verdict: okVerdict()}}}
	r := WithRetry(fake, testRetryConfig(), testLogger())

	v, err := r.Classify(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.IsOffensive {
		t.Fatal("expected non-offensive verdict")
	}
	if fake.callCount() != 1 {
		t.Fatalf("expected 1 call, got %d", fake.callCount())
	}
}

func TestRetrier_BlockedIsTerminalFallback(t *testing.T) {
	fake := &fakeClassifier{results: []fakeResult{
		{err: &llm.ErrPromptBlocked{Reason: "SAFETY"}},
	}}
	r := WithRetry(fake, testRetryConfig(), testLogger())

	start := time.Now()
	v, err := r.Classify(context.Background(), "something nasty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.callCount() != 1 {
		t.Fatalf("expected 1 call (no retry), got %d", fake.callCount())
	}
	if elapsed := time.Since(start); elapsed >= testRetryConfig().Delay {
		t.Fatalf("no delay expected for terminal outcome, took %s", elapsed)
	}
	if !v.IsOffensive || v.OffenseType != OffenseBlocked || v.Severity != 4 {
		t.Fatalf("unexpected fallback verdict: %+v", v)
	}
}

func TestRetrier_StoppedIsTerminalFallback(t *testing.T) {
	fake := &fakeClassifier{results: []fakeResult{
		{err: &llm.ErrGenerationStopped{Reason: "RECITATION"}},
	}}
	r := WithRetry(fake, testRetryConfig(), testLogger())

	v, err := r.Classify(context.Background(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.IsOffensive || v.OffenseType != OffenseStopped || v.Severity != 3 {
		t.Fatalf("unexpected fallback verdict: %+v", v)
	}
	if fake.callCount() != 1 {
		t.Fatalf("expected 1 call, got %d", fake.callCount())
	}
}

func TestRetrier_EmptyIsTerminalFallback(t *testing.T) {
	fake := &fakeClassifier{results: []fakeResult{
		{err: &llm.ErrEmptyResponse{}},
	}}
	r := WithRetry(fake, testRetryConfig(), testLogger())

	v, err := r.Classify(context.Background(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.IsOffensive || v.OffenseType != OffenseBlockedUnclear || v.Severity != 3 {
		t.Fatalf("unexpected fallback verdict: %+v", v)
	}
}

func TestRetrier_TransientThenSuccess(t *testing.T) {
	fake := &fakeClassifier{results: []fakeResult{
		{err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
		{err: &llm.ErrRateLimit{Err: errors.New("429")}},
		{verdict: okVerdict()},
	}}
	r := WithRetry(fake, testRetryConfig(), testLogger())

	start := time.Now()
	v, err := r.Classify(context.Background(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v == nil || v.IsOffensive {
		t.Fatalf("expected clean verdict, got %+v", v)
	}
	if fake.callCount() != 3 {
		t.Fatalf("expected 3 calls (2 retries), got %d", fake.callCount())
	}
	// Two retries means two configured delays.
	if elapsed := time.Since(start); elapsed < 2*testRetryConfig().Delay {
		t.Fatalf("expected at least two delays, took %s", elapsed)
	}
}

func TestRetrier_MalformedExhaustsBudget(t *testing.T) {
	fake := &fakeClassifier{results: []fakeResult{
		{err: &llm.ErrInvalidResponse{Err: errors.New("bad json")}},
		{err: &llm.ErrInvalidResponse{Err: errors.New("bad json")}},
		{err: &llm.ErrInvalidResponse{Err: errors.New("bad json")}},
		{verdict: okVerdict()}, // Won't be reached.
	}}
	r := WithRetry(fake, testRetryConfig(), testLogger())

	_, err := r.Classify(context.Background(), "text")
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got: %v", err)
	}
	if fake.callCount() != 3 {
		t.Fatalf("expected exactly max_attempts=3 calls, got %d", fake.callCount())
	}
}

func TestRetrier_ContextCancellation(t *testing.T) {
	fake := &fakeClassifier{results: []fakeResult{
		{err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
		{verdict: okVerdict()},
	}}
	r := WithRetry(fake, RetryConfig{MaxAttempts: 3, Delay: time.Minute}, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := r.Classify(ctx, "text")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got: %v", err)
	}
	if fake.callCount() != 1 {
		t.Fatalf("expected 1 call before cancellation, got %d", fake.callCount())
	}
}
