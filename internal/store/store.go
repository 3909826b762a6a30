// Package store handles durable I/O around the classification pipeline:
// the JSON comment collections and a SQLite history of batch runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store provides access to the run history database.
type Store struct {
	db *sql.DB
}

// Open creates a Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-user batch workloads.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func createSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	started_at    TIMESTAMP NOT NULL,
	finished_at   TIMESTAMP NOT NULL,
	model         TEXT NOT NULL,
	total         INTEGER NOT NULL,
	offensive     INTEGER NOT NULL,
	prefiltered   INTEGER NOT NULL,
	remote        INTEGER NOT NULL,
	missing_text  INTEGER NOT NULL,
	exhausted     INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
	run_id        TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position      INTEGER NOT NULL,
	comment_id    TEXT NOT NULL,
	username      TEXT NOT NULL,
	comment_text  TEXT NOT NULL,
	is_offensive  INTEGER,
	offense_type  TEXT,
	severity      INTEGER,
	explanation   TEXT,
	error         TEXT,
	PRIMARY KEY (run_id, position)
);
`
	_, err := db.ExecContext(context.Background(), schema)
	return err
}

// DefaultDBPath resolves the database file path in priority order:
// 1. COMMENTGUARD_DB environment variable
// 2. $XDG_DATA_HOME/commentguard/commentguard.db
// 3. ~/.local/share/commentguard/commentguard.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("COMMENTGUARD_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "commentguard", "commentguard.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it does not exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
