package moderate

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Error markers attached to comments that could not be classified.
// The values match the annotated file format.
const (
	MarkerMissingText = "Missing comment text"
	MarkerExhausted   = "Failed to analyze after retries"
)

// cannedPrefilterVerdict is attached when the lexical pre-filter fires,
// skipping the remote call entirely.
var cannedPrefilterVerdict = Verdict{
	IsOffensive: true,
	OffenseType: OffenseProfanity,
	Explanation: "detected by lexical pre-filter",
	Severity:    3,
}

// Stats counts what each pipeline stage did across a run. The two
// failure categories are tracked separately and must not be merged.
type Stats struct {
	Prefiltered      int64
	RemoteClassified int64
	MissingText      int64
	Exhausted        int64
}

// Failed is the total number of comments that produced an error marker.
func (s Stats) Failed() int64 { return s.MissingText + s.Exhausted }

// Pipeline runs the per-comment decision procedure: missing-text check,
// lexical pre-filter, then the retried remote classifier.
type Pipeline struct {
	prefilter  *Prefilter
	classifier Classifier
	workers    int
	logger     *slog.Logger

	prefiltered      atomic.Int64
	remoteClassified atomic.Int64
	missingText      atomic.Int64
	exhausted        atomic.Int64
}

// NewPipeline creates a Pipeline. The classifier is expected to already
// carry the retry policy (see WithRetry). Workers below 1 are treated
// as sequential.
func NewPipeline(prefilter *Prefilter, classifier Classifier, workers int, logger *slog.Logger) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		prefilter:  prefilter,
		classifier: classifier,
		workers:    workers,
		logger:     logger,
	}
}

// ClassifyComment produces the annotated record for one comment.
// The returned error is non-nil only when the context was cancelled;
// every per-comment failure is recorded inline on the record instead.
func (p *Pipeline) ClassifyComment(ctx context.Context, c Comment) (AnnotatedComment, error) {
	out := AnnotatedComment{Comment: c}

	if strings.TrimSpace(c.Text) == "" {
		p.logger.Warn("skipping comment with missing text", "comment_id", c.ID)
		p.missingText.Add(1)
		out.Analysis = Analysis{Error: MarkerMissingText}
		return out, nil
	}

	if p.prefilter.Match(c.Text) {
		p.logger.Info("comment flagged by pre-filter", "comment_id", c.ID)
		p.prefiltered.Add(1)
		v := cannedPrefilterVerdict
		out.Analysis = Analysis{Verdict: &v}
		return out, nil
	}

	verdict, err := p.classifier.Classify(ctx, c.Text)
	if err != nil {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		p.logger.Error("failed to classify comment", "comment_id", c.ID, "error", err)
		p.exhausted.Add(1)
		out.Analysis = Analysis{Error: MarkerExhausted}
		return out, nil
	}

	p.remoteClassified.Add(1)
	out.Analysis = Analysis{Verdict: verdict}
	return out, nil
}

// Run classifies every comment and returns the annotated sequence in
// input order. A completed run never drops a comment: failures appear
// as error markers in the output. With more than one worker, comments
// are classified concurrently but results keep their input positions,
// so severity tie-breaks stay reproducible.
func (p *Pipeline) Run(ctx context.Context, comments []Comment) ([]AnnotatedComment, error) {
	out := make([]AnnotatedComment, len(comments))

	if p.workers == 1 {
		for i, c := range comments {
			p.logger.Info("analyzing comment", "comment_id", c.ID)
			annotated, err := p.ClassifyComment(ctx, c)
			if err != nil {
				return nil, err
			}
			out[i] = annotated
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, c := range comments {
		g.Go(func() error {
			p.logger.Info("analyzing comment", "comment_id", c.ID)
			annotated, err := p.ClassifyComment(gctx, c)
			if err != nil {
				return err
			}
			out[i] = annotated
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats returns a snapshot of the per-stage counters.
func (p *Pipeline) Stats() Stats {
	return Stats{
		Prefiltered:      p.prefiltered.Load(),
		RemoteClassified: p.remoteClassified.Load(),
		MissingText:      p.missingText.Load(),
		Exhausted:        p.exhausted.Load(),
	}
}
