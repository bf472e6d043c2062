// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
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

	"github.com/vovakirdan/snakebot/internal/arena"
)

// OutcomeWon is the outcome stored for a run that filled the board.
const OutcomeWon = string(arena.StateWon)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is the summary of one finished game.
type Run struct {
	ID        int64
	RunID     string // UUID, generated by SaveRun when empty
	Solver    string
	Width     int
	Height    int
	Seed      int64
	Length    int
	Ticks     int
	Food      int
	Outcome   string // final arena state
	CreatedAt time.Time
}

// NewRun converts the summary of a finished game into a run record.
func NewRun(s arena.Summary) Run {
	return Run{
		Solver:  s.Solver,
		Width:   s.Width,
		Height:  s.Height,
		Seed:    s.Seed,
		Length:  s.Length,
		Ticks:   s.Ticks,
		Food:    s.Food,
		Outcome: string(s.State),
	}
}

// SolverStats aggregates every stored run of one solver.
type SolverStats struct {
	Solver     string
	Runs       int
	Wins       int
	BestLength int
	AvgLength  float64
	AvgTicks   float64
	LastRun    time.Time
}

// WinRate returns the fraction of runs that were won.
func (s SolverStats) WinRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Runs)
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Bench workers save concurrently; one connection serializes the writes.
	db.SetMaxOpenConns(1)

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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			solver TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			length INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			food INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_solver ON runs(solver);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(solver, length DESC, ticks ASC);
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

// SaveRun records a finished run and returns the ID of the inserted record.
// A missing RunID is filled in with a new UUID.
func (s *Store) SaveRun(run Run) (int64, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (run_id, solver, width, height, seed, length, ticks, food, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Solver, run.Width, run.Height, run.Seed,
		run.Length, run.Ticks, run.Food, run.Outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, run_id, solver, width, height, seed, length, ticks, food, outcome, created_at`

// TopRuns retrieves the longest runs, fewest ticks first among equals. An
// empty solver matches every solver.
func (s *Store) TopRuns(solver string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR solver = ?
		 ORDER BY length DESC, ticks ASC, id ASC
		 LIMIT ?`,
		solver, solver, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
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

// RunByID retrieves a run by its UUID. Returns nil if there is none.
func (s *Store) RunByID(runID string) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// BestLength returns the longest snake the solver has reached.
// Returns 0 if no runs exist.
func (s *Store) BestLength(solver string) (int, error) {
	var length sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(length) FROM runs WHERE solver = ?",
		solver,
	).Scan(&length)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best length: %w", err)
	}

	if !length.Valid {
		return 0, nil
	}

	return int(length.Int64), nil
}

// SolverStats retrieves aggregated statistics for every solver with stored
// runs, ordered by solver ID.
func (s *Store) SolverStats() ([]SolverStats, error) {
	rows, err := s.db.Query(
		`SELECT solver, COUNT(*), SUM(outcome = ?), MAX(length), AVG(length), AVG(ticks), MAX(created_at)
		 FROM runs
		 GROUP BY solver
		 ORDER BY solver`,
		OutcomeWon,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get solver stats: %w", err)
	}
	defer rows.Close()

	var stats []SolverStats
	for rows.Next() {
		var st SolverStats
		var lastRun any
		if err := rows.Scan(&st.Solver, &st.Runs, &st.Wins, &st.BestLength, &st.AvgLength, &st.AvgTicks, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearRuns deletes all runs for the given solver.
func (s *Store) ClearRuns(solver string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE solver = ?", solver)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var createdAt any
	err := sc.Scan(
		&r.ID, &r.RunID, &r.Solver, &r.Width, &r.Height, &r.Seed,
		&r.Length, &r.Ticks, &r.Food, &r.Outcome, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
