// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only completed play-throughs are recorded; in-progress state is never saved.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/delta-legacy/internal/progress"
)

// Store manages the SQLite database connection for the leaderboard.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished play-through.
type RunRecord struct {
	ID        string
	CatalogID string
	Player    string
	Score     int
	Rank      progress.Rank
	Stages    int
	Attempts  int
	Hints     int
	Duration  time.Duration
	CreatedAt time.Time
}

// NewRun builds a record for a finished run with a fresh id.
func NewRun(catalogID string, sum progress.Summary, at time.Time) RunRecord {
	return RunRecord{
		ID:        uuid.NewString(),
		CatalogID: catalogID,
		Player:    sum.PlayerLabel,
		Score:     sum.Score,
		Rank:      sum.Rank,
		Stages:    sum.Completed,
		Attempts:  sum.Attempts,
		Hints:     sum.Hints,
		Duration:  sum.Elapsed,
		CreatedAt: at,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			catalog_id TEXT NOT NULL,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			rank TEXT NOT NULL,
			stages INTEGER NOT NULL DEFAULT 0,
			attempts INTEGER NOT NULL DEFAULT 0,
			hints INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_catalog ON runs(catalog_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(catalog_id, score DESC, duration_ms ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run. An empty ID is filled with a new UUID.
// Returns the stored record's ID.
func (s *Store) SaveRun(r RunRecord) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, catalog_id, player, score, rank, stages, attempts, hints, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.CatalogID,
		r.Player,
		r.Score,
		string(r.Rank),
		r.Stages,
		r.Attempts,
		r.Hints,
		r.Duration.Milliseconds(),
		r.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

// TopRuns retrieves the best N runs for the given catalog.
// Ties on score go to the faster run, then the earlier one.
func (s *Store) TopRuns(catalogID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, catalog_id, player, score, rank, stages, attempts, hints, duration_ms, created_at
		 FROM runs
		 WHERE catalog_id = ?
		 ORDER BY score DESC, duration_ms ASC, created_at ASC
		 LIMIT ?`,
		catalogID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves a run by its id. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*RunRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, catalog_id, player, score, rank, stages, attempts, hints, duration_ms, created_at
		 FROM runs WHERE id = ?`,
		id,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// BestScore returns the highest score for the given catalog.
// Returns 0 if no runs exist.
func (s *Store) BestScore(catalogID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE catalog_id = ?",
		catalogID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes all runs for the given catalog.
func (s *Store) ClearRuns(catalogID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE catalog_id = ?", catalogID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// CatalogStats contains aggregated statistics for a catalog.
type CatalogStats struct {
	CatalogID  string
	Runs       int
	BestScore  int
	AvgScore   float64
	Fastest    time.Duration
	LastPlayed time.Time
}

// CatalogStats retrieves aggregated statistics for a catalog.
func (s *Store) CatalogStats(catalogID string) (*CatalogStats, error) {
	stats := &CatalogStats{CatalogID: catalogID}

	var fastest, last sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MIN(duration_ms), MAX(created_at)
		 FROM runs WHERE catalog_id = ?`,
		catalogID,
	).Scan(&stats.Runs, &stats.BestScore, &stats.AvgScore, &fastest, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get catalog stats: %w", err)
	}

	if fastest.Valid {
		stats.Fastest = time.Duration(fastest.Int64) * time.Millisecond
	}
	if last.Valid {
		stats.LastPlayed = time.UnixMilli(last.Int64)
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (RunRecord, error) {
	var (
		r          RunRecord
		rank       string
		durationMS int64
		createdAt  int64
	)
	err := sc.Scan(
		&r.ID,
		&r.CatalogID,
		&r.Player,
		&r.Score,
		&rank,
		&r.Stages,
		&r.Attempts,
		&r.Hints,
		&durationMS,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	r.Rank = progress.Rank(rank)
	r.Duration = time.Duration(durationMS) * time.Millisecond
	r.CreatedAt = time.UnixMilli(createdAt)
	return r, nil
}
