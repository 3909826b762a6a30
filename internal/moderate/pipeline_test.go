package moderate

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/commentguard/internal/llm"
)

func testPrefilter(t *testing.T) *Prefilter {
	t.Helper()
	pf, err := NewPrefilter([]string{"idiot"})
	if err != nil {
		t.Fatal(err)
	}
	return pf
}

func TestPipeline_MissingTextNeverReachesClassifier(t *testing.T) {
	fake := &fakeClassifier{}
	p := NewPipeline(testPrefilter(t), fake, 1, testLogger())

	out, err := p.Run(context.Background(), []Comment{
		{ID: "c1", Author: "ann", Text: ""},
		{ID: "c2", Author: "bob", Text: "   "},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, a := range out {
		if a.Analysis.Error != MarkerMissingText {
			t.Fatalf("expected missing-text marker, got %+v", a.Analysis)
		}
	}
	if fake.callCount() != 0 {
		t.Fatalf("expected zero remote calls, got %d", fake.callCount())
	}
	if s := p.Stats(); s.MissingText != 2 || s.Failed() != 2 {
		t.Fatalf("unexpected stats: %+v", s)
	}
}

func TestPipeline_PrefilterShortCircuits(t *testing.T) {
	fake := &fakeClassifier{}
	p := NewPipeline(testPrefilter(t), fake, 1, testLogger())

	out, err := p.Run(context.Background(), []Comment{
		{ID: "c1", Author: "ann", Text: "you complete IDIOT"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := out[0].Analysis.Verdict
	if v == nil {
		t.Fatalf("expected verdict, got %+v", out[0].Analysis)
	}
	if !v.IsOffensive || v.OffenseType != OffenseProfanity || v.Severity != 3 {
		t.Fatalf("expected canned profanity verdict, got %+v", v)
	}
	if v.Explanation != "detected by lexical pre-filter" {
		t.Fatalf("unexpected explanation: %q", v.Explanation)
	}
	if fake.callCount() != 0 {
		t.Fatalf("expected zero remote calls, got %d", fake.callCount())
	}
	if s := p.Stats(); s.Prefiltered != 1 || s.RemoteClassified != 0 {
		t.Fatalf("unexpected stats: %+v", s)
	}
}

func TestPipeline_ExhaustedRecordedInline(t *testing.T) {
	fake := &fakeClassifier{results: []fakeResult{
		{err: errors.Join(ErrExhausted, errors.New("after 3 attempts"))},
		{verdict: okVerdict()},
	}}
	p := NewPipeline(testPrefilter(t), fake, 1, testLogger())

	out, err := p.Run(context.Background(), []Comment{
		{ID: "c1", Author: "ann", Text: "borderline comment"},
		{ID: "c2", Author: "bob", Text: "fine comment"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out[0].Analysis.Error != MarkerExhausted {
		t.Fatalf("expected exhausted marker, got %+v", out[0].Analysis)
	}
	// The failure is isolated: the next comment still gets processed.
	if out[1].Analysis.Failed() {
		t.Fatalf("expected second comment to succeed, got %+v", out[1].Analysis)
	}
	if s := p.Stats(); s.Exhausted != 1 || s.MissingText != 0 {
		t.Fatalf("unexpected stats: %+v", s)
	}
}

func TestPipeline_OutputPreservesInputOrder(t *testing.T) {
	comments := make([]Comment, 20)
	results := make([]fakeResult, 20)
	for i := range comments {
		comments[i] = Comment{ID: string(rune('a' + i)), Text: "comment text"}
		results[i] = fakeResult{verdict: okVerdict()}
	}
	fake := &fakeClassifier{results: results}
	p := NewPipeline(testPrefilter(t), fake, 4, testLogger())

	out, err := p.Run(context.Background(), comments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(comments) {
		t.Fatalf("expected %d results, got %d", len(comments), len(out))
	}
	for i, a := range out {
		if a.ID != comments[i].ID {
			t.Fatalf("order broken at %d: got %q want %q", i, a.ID, comments[i].ID)
		}
		if a.Analysis.Verdict == nil {
			t.Fatalf("missing verdict at %d", i)
		}
	}
}

func TestPipeline_EndToEndWithMockProvider(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: []byte(`{"is_offensive":true,"offense_type":"spam","explanation":"ad link","severity":2}`)},
	)
	classifier := WithRetry(NewClassifier(mock, DefaultConfig()), testRetryConfig(), testLogger())
	p := NewPipeline(testPrefilter(t), classifier, 1, testLogger())

	out, err := p.Run(context.Background(), []Comment{
		{ID: "c1", Author: "ann", Text: "buy cheap meds here"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := out[0].Analysis.Verdict
	if v == nil || v.OffenseType != OffenseSpam || v.Severity != 2 {
		t.Fatalf("unexpected verdict: %+v", v)
	}
	if s := p.Stats(); s.RemoteClassified != 1 {
		t.Fatalf("unexpected stats: %+v", s)
	}
}
