package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/commentguard/internal/moderate"
)

// Run is one recorded batch classification run.
type Run struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	Model       string
	Total       int
	Offensive   int
	Prefiltered int
	Remote      int
	MissingText int
	Exhausted   int
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// RecordRun persists a run and its per-comment results in one transaction.
func (s *Store) RecordRun(ctx context.Context, run Run, comments []moderate.AnnotatedComment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, model, total, offensive, prefiltered, remote, missing_text, exhausted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.FinishedAt.UTC(), run.Model,
		run.Total, run.Offensive, run.Prefiltered, run.Remote, run.MissingText, run.Exhausted,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (run_id, position, comment_id, username, comment_text, is_offensive, offense_type, severity, explanation, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare results insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range comments {
		var (
			isOffensive sql.NullBool
			offenseType sql.NullString
			severity    sql.NullInt64
			explanation sql.NullString
			errMarker   sql.NullString
		)
		if c.Analysis.Failed() {
			errMarker = sql.NullString{String: c.Analysis.Error, Valid: true}
		} else if v := c.Analysis.Verdict; v != nil {
			isOffensive = sql.NullBool{Bool: v.IsOffensive, Valid: true}
			offenseType = sql.NullString{String: string(v.OffenseType), Valid: true}
			severity = sql.NullInt64{Int64: int64(v.Severity), Valid: true}
			explanation = sql.NullString{String: v.Explanation, Valid: true}
		}

		if _, err := stmt.ExecContext(ctx, run.ID, i, c.ID, c.Author, c.Text,
			isOffensive, offenseType, severity, explanation, errMarker); err != nil {
			return fmt.Errorf("insert result %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, model, total, offensive, prefiltered, remote, missing_text, exhausted
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Model,
			&r.Total, &r.Offensive, &r.Prefiltered, &r.Remote, &r.MissingText, &r.Exhausted); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunResults returns the annotated comments recorded for a run, in
// their original input order.
func (s *Store) RunResults(ctx context.Context, runID string) ([]moderate.AnnotatedComment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT comment_id, username, comment_text, is_offensive, offense_type, severity, explanation, error
		FROM results WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []moderate.AnnotatedComment
	for rows.Next() {
		var (
			c           moderate.AnnotatedComment
			isOffensive sql.NullBool
			offenseType sql.NullString
			severity    sql.NullInt64
			explanation sql.NullString
			errMarker   sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Author, &c.Text,
			&isOffensive, &offenseType, &severity, &explanation, &errMarker); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}

		if errMarker.Valid {
			c.Analysis = moderate.Analysis{Error: errMarker.String}
		} else {
			c.Analysis = moderate.Analysis{Verdict: &moderate.Verdict{
				IsOffensive: isOffensive.Bool,
				OffenseType: moderate.OffenseType(offenseType.String),
				Severity:    int(severity.Int64),
				Explanation: explanation.String,
			}}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
