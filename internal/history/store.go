// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite log of experiment runs so that boost
// settings can be compared over time. Only summaries are stored.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/search-boost/pkg/types"
)

const defaultListLimit = 20

// ErrNotFound is returned by Get when no run has the requested ID.
var ErrNotFound = errors.New("run not found")

// Store manages the run history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path and bootstraps the
// schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			query TEXT NOT NULL,
			transformed_query TEXT NOT NULL,
			backend TEXT,
			result_count INTEGER,
			moved_up INTEGER,
			moved_down INTEGER,
			unchanged INTEGER,
			unmatched INTEGER,
			avg_rank_change REAL,
			max_rank_increase INTEGER,
			max_rank_decrease INTEGER,
			rbo REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a run summary. Recording the same ID twice replaces the
// earlier row.
func (s *Store) Record(ctx context.Context, run types.RunSummary) error {
	if run.ID == "" {
		return fmt.Errorf("recording run: empty id")
	}
	st := run.Stats
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (id, created_at, query, transformed_query, backend,
			result_count, moved_up, moved_down, unchanged, unmatched,
			avg_rank_change, max_rank_increase, max_rank_decrease, rbo)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.UTC().Format(time.RFC3339Nano), run.Query, run.TransformedQuery, run.Backend,
		st.Count, st.MovedUp, st.MovedDown, st.Unchanged, st.Unmatched,
		st.AvgRankChange, st.MaxRankIncrease, st.MaxRankDecrease, st.RBO,
	)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", run.ID, err)
	}
	return nil
}

const selectColumns = `SELECT id, created_at, query, transformed_query, backend,
	result_count, moved_up, moved_down, unchanged, unmatched,
	avg_rank_change, max_rank_increase, max_rank_decrease, rbo FROM runs`

// List returns the most recent runs, newest first. A non-positive limit
// means the default of 20.
func (s *Store) List(ctx context.Context, limit int) ([]types.RunSummary, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		selectColumns+` ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []types.RunSummary
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns the run with the given ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (types.RunSummary, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.RunSummary{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return run, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (types.RunSummary, error) {
	var (
		run     types.RunSummary
		created string
		backend sql.NullString
	)
	st := &run.Stats
	err := sc.Scan(&run.ID, &created, &run.Query, &run.TransformedQuery, &backend,
		&st.Count, &st.MovedUp, &st.MovedDown, &st.Unchanged, &st.Unmatched,
		&st.AvgRankChange, &st.MaxRankIncrease, &st.MaxRankDecrease, &st.RBO)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return run, err
		}
		return run, fmt.Errorf("scanning run: %w", err)
	}
	run.Backend = backend.String
	run.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return run, fmt.Errorf("parsing run timestamp %q: %w", created, err)
	}
	return run, nil
}
