// Package store persists batch summaries in a SQLite run ledger.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// ErrRunNotFound is returned when no run matches the requested id.
var ErrRunNotFound = errors.New("run not found")

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Run is one recorded batch.
type Run struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Walks        int       `json:"walks"`
	Boundary     int       `json:"boundary"`
	Seed         uint64    `json:"seed"`
	AverageSteps float64   `json:"average_steps"`
	MinSteps     int       `json:"min_steps"`
	MaxSteps     int       `json:"max_steps"`
	TotalSteps   int       `json:"total_steps"`
	VisitedCells int       `json:"visited_cells"`
	ExitRight    int       `json:"exit_right"`
	ExitLeft     int       `json:"exit_left"`
	ExitUp       int       `json:"exit_up"`
	ExitDown     int       `json:"exit_down"`
	ImagePath    string    `json:"image_path,omitempty"`
}

// RunStore is a SQLite-backed run ledger.
type RunStore struct {
	mu     sync.Mutex
	db     *sql.DB
	dbPath string
}

// Open opens (creating if needed) the ledger at path.
func Open(ctx context.Context, path string) (*RunStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite works best with single writer

	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &RunStore{db: db, dbPath: path}, nil
}

// Path returns the database file path.
func (s *RunStore) Path() string {
	return s.dbPath
}

// Save inserts run, assigning an id and timestamp when missing, and returns
// the stored copy.
func (s *RunStore) Save(ctx context.Context, run Run) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, created_at, walks, boundary, seed,
			average_steps, min_steps, max_steps, total_steps, visited_cells,
			exit_right, exit_left, exit_up, exit_down, image_path
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.UTC().Format(timeLayout), run.Walks, run.Boundary,
		strconv.FormatUint(run.Seed, 10),
		run.AverageSteps, run.MinSteps, run.MaxSteps, run.TotalSteps, run.VisitedCells,
		run.ExitRight, run.ExitLeft, run.ExitUp, run.ExitDown, nullString(run.ImagePath),
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to insert run: %w", err)
	}

	return run, nil
}

const selectRun = `
	SELECT id, created_at, walks, boundary, seed,
		average_steps, min_steps, max_steps, total_steps, visited_cells,
		exit_right, exit_left, exit_up, exit_down, image_path
	FROM runs`

// Get returns the run with the given id, or ErrRunNotFound.
func (s *RunStore) Get(ctx context.Context, id string) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx, selectRun+` WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// List returns up to limit runs, newest first. limit <= 0 returns all.
func (s *RunStore) List(ctx context.Context, limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := selectRun + ` ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close closes the database.
func (s *RunStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run       Run
		createdAt string
		seed      string
		imagePath sql.NullString
	)
	err := row.Scan(
		&run.ID, &createdAt, &run.Walks, &run.Boundary, &seed,
		&run.AverageSteps, &run.MinSteps, &run.MaxSteps, &run.TotalSteps, &run.VisitedCells,
		&run.ExitRight, &run.ExitLeft, &run.ExitUp, &run.ExitDown, &imagePath,
	)
	if err != nil {
		return Run{}, err
	}

	if run.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return Run{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if run.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return Run{}, fmt.Errorf("parse seed %q: %w", seed, err)
	}
	run.ImagePath = imagePath.String

	return run, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
