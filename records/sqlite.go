package records

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite database connection
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate runs database migrations
func (s *SQLiteStore) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			half_width INTEGER NOT NULL,
			half_height INTEGER NOT NULL,
			cell_size INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			score INTEGER NOT NULL,
			cause TEXT NOT NULL,
			policy TEXT NOT NULL DEFAULT '',
			started_at DATETIME NOT NULL,
			finished_at DATETIME NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_cause ON runs(cause)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC, ticks ASC)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// SaveRun saves a finished run to the database
func (s *SQLiteStore) SaveRun(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	query := `INSERT INTO runs (
		id, seed, half_width, half_height, cell_size, tick_rate,
		ticks, score, cause, policy, started_at, finished_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query,
		run.ID, run.Seed, run.HalfWidth, run.HalfHeight, run.CellSize,
		run.TickRate, run.Ticks, run.Score, run.Cause, run.Policy,
		run.StartedAt, run.FinishedAt,
	)

	return err
}

// GetRun retrieves a run by ID
func (s *SQLiteStore) GetRun(id string) (*Run, error) {
	query := `SELECT
		id, seed, half_width, half_height, cell_size, tick_rate,
		ticks, score, cause, policy, started_at, finished_at, created_at
		FROM runs WHERE id = ?`

	var run Run
	err := s.db.QueryRow(query, id).Scan(
		&run.ID, &run.Seed, &run.HalfWidth, &run.HalfHeight, &run.CellSize,
		&run.TickRate, &run.Ticks, &run.Score, &run.Cause, &run.Policy,
		&run.StartedAt, &run.FinishedAt, &run.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// ListRuns retrieves runs with pagination and optional cause filtering
func (s *SQLiteStore) ListRuns(query RunsQuery) (*RunsList, error) {
	whereClause := ""
	args := []interface{}{}

	if query.Cause != "" {
		whereClause = "WHERE cause = ?"
		args = append(args, query.Cause)
	}

	countQuery := "SELECT COUNT(*) FROM runs " + whereClause
	var totalCount int
	if err := s.db.QueryRow(countQuery, args...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("failed to get total count: %w", err)
	}

	if query.PerPage <= 0 {
		query.PerPage = 50 // Default page size
	}
	if query.Page <= 0 {
		query.Page = 1
	}

	totalPages := (totalCount + query.PerPage - 1) / query.PerPage
	offset := (query.Page - 1) * query.PerPage

	mainQuery := `SELECT
		id, seed, half_width, half_height, cell_size, tick_rate,
		ticks, score, cause, policy, started_at, finished_at, created_at
		FROM runs ` + whereClause + `
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?`

	args = append(args, query.PerPage, offset)

	rows, err := s.db.Query(mainQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}

	return &RunsList{
		Runs:       runs,
		TotalCount: totalCount,
		Page:       query.Page,
		PerPage:    query.PerPage,
		TotalPages: totalPages,
	}, nil
}

// TopRuns retrieves the highest-scoring runs. Ties go to the run that
// needed fewer ticks.
func (s *SQLiteStore) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT
		id, seed, half_width, half_height, cell_size, tick_rate,
		ticks, score, cause, policy, started_at, finished_at, created_at
		FROM runs
		ORDER BY score DESC, ticks ASC, created_at ASC
		LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var run Run
		err := rows.Scan(
			&run.ID, &run.Seed, &run.HalfWidth, &run.HalfHeight, &run.CellSize,
			&run.TickRate, &run.Ticks, &run.Score, &run.Cause, &run.Policy,
			&run.StartedAt, &run.FinishedAt, &run.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}
