package runsdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store keeps one row per completed simulation run.
type Store struct {
	db *sql.DB
}

type RunRow struct {
	Seed           int64
	GridSize       int
	Agents         int
	Byzantine      int
	InitialTargets int
	Delivered      int
	Ticks          uint64
	// CompetitiveRatio is NULL for the transient unbounded case.
	CompetitiveRatio sql.NullFloat64
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	seed INTEGER NOT NULL,
	grid_size INTEGER NOT NULL,
	agents INTEGER NOT NULL,
	byzantine INTEGER NOT NULL,
	initial_targets INTEGER NOT NULL,
	delivered INTEGER NOT NULL,
	ticks INTEGER NOT NULL,
	competitive_ratio REAL,
	recorded_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);
`

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) InsertRun(ctx context.Context, r RunRow) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO runs
		(seed, grid_size, agents, byzantine, initial_targets, delivered, ticks, competitive_ratio, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Seed, r.GridSize, r.Agents, r.Byzantine, r.InitialTargets, r.Delivered,
		int64(r.Ticks), r.CompetitiveRatio, time.Now().UTC().Format(time.RFC3339))
	return err
}

type Summary struct {
	Runs      int
	Delivered int
	Targets   int
	// Ratio statistics cover only rows with a finite ratio.
	RatedRuns int
	MeanRatio float64
	MinRatio  float64
	MaxRatio  float64
}

func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	var sum Summary
	row := s.db.QueryRowContext(ctx, `SELECT
		COUNT(*),
		COALESCE(SUM(delivered), 0),
		COALESCE(SUM(initial_targets), 0),
		COUNT(competitive_ratio),
		COALESCE(AVG(competitive_ratio), 0),
		COALESCE(MIN(competitive_ratio), 0),
		COALESCE(MAX(competitive_ratio), 0)
	FROM runs`)
	err := row.Scan(&sum.Runs, &sum.Delivered, &sum.Targets, &sum.RatedRuns, &sum.MeanRatio, &sum.MinRatio, &sum.MaxRatio)
	return sum, err
}
