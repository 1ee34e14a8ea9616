package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Source names where the turns of a solve came from.
const (
	SourceKeyboard  = "keyboard"
	SourceSmartCube = "smartcube"
)

// Solve represents a play session in the database.
type Solve struct {
	SolveID      string
	StartedAt    time.Time
	EndedAt      *time.Time
	DurationMs   *int64
	ScrambleText *string
	Source       string
	DeviceName   *string
	Solved       bool
}

// SolveRepository provides CRUD operations for solves.
type SolveRepository struct {
	db *DB
}

// NewSolveRepository creates a new solve repository.
func NewSolveRepository(db *DB) *SolveRepository {
	return &SolveRepository{db: db}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create starts a new solve and returns its ID.
func (r *SolveRepository) Create(scramble, source, deviceName string) (string, error) {
	return r.CreateAt(time.Now(), scramble, source, deviceName)
}

// CreateAt starts a new solve at a given time and returns its ID.
func (r *SolveRepository) CreateAt(startedAt time.Time, scramble, source, deviceName string) (string, error) {
	if source == "" {
		source = SourceKeyboard
	}
	id := uuid.New().String()

	_, err := r.db.Exec(`
		INSERT INTO solves (solve_id, started_at, scramble_text, source, device_name)
		VALUES (?, ?, ?, ?, ?)
	`, id, formatTime(startedAt), optional(scramble), source, optional(deviceName))
	if err != nil {
		return "", fmt.Errorf("failed to create solve: %w", err)
	}

	return id, nil
}

// End marks a solve as finished. A non-positive duration is measured from
// the stored start time.
func (r *SolveRepository) End(solveID string, solved bool, duration time.Duration) error {
	endedAt := time.Now()

	if duration <= 0 {
		solve, err := r.Get(solveID)
		if err != nil {
			return err
		}
		if solve == nil {
			return fmt.Errorf("solve not found: %s", solveID)
		}
		duration = endedAt.Sub(solve.StartedAt)
	}

	_, err := r.db.Exec(`
		UPDATE solves
		SET ended_at = ?, duration_ms = ?, solved = ?
		WHERE solve_id = ?
	`, formatTime(endedAt), duration.Milliseconds(), solved, solveID)
	if err != nil {
		return fmt.Errorf("failed to end solve: %w", err)
	}

	return nil
}

const solveColumns = `solve_id, started_at, ended_at, duration_ms, scramble_text, source, device_name, solved`

type scanner interface {
	Scan(dest ...any) error
}

func scanSolve(row scanner) (Solve, error) {
	var s Solve
	var startedAt string
	var endedAt sql.NullString

	err := row.Scan(&s.SolveID, &startedAt, &endedAt, &s.DurationMs, &s.ScrambleText, &s.Source, &s.DeviceName, &s.Solved)
	if err != nil {
		return s, err
	}

	if s.StartedAt, err = parseTime(startedAt); err != nil {
		return s, fmt.Errorf("failed to parse start time: %w", err)
	}
	if endedAt.Valid {
		t, err := parseTime(endedAt.String)
		if err != nil {
			return s, fmt.Errorf("failed to parse end time: %w", err)
		}
		s.EndedAt = &t
	}
	return s, nil
}

// Get retrieves a solve by ID. It returns nil when none exists.
func (r *SolveRepository) Get(solveID string) (*Solve, error) {
	row := r.db.QueryRow(`SELECT `+solveColumns+` FROM solves WHERE solve_id = ?`, solveID)
	s, err := scanSolve(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}
	return &s, nil
}

// GetLast retrieves the most recent solve.
func (r *SolveRepository) GetLast() (*Solve, error) {
	row := r.db.QueryRow(`SELECT ` + solveColumns + ` FROM solves ORDER BY started_at DESC LIMIT 1`)
	s, err := scanSolve(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last solve: %w", err)
	}
	return &s, nil
}

// List retrieves recent solves, newest first.
func (r *SolveRepository) List(limit int) ([]Solve, error) {
	rows, err := r.db.Query(`
		SELECT `+solveColumns+`
		FROM solves
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		s, err := scanSolve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		solves = append(solves, s)
	}

	return solves, rows.Err()
}

// Delete deletes a solve and its turns and orientations.
func (r *SolveRepository) Delete(solveID string) error {
	_, err := r.db.Exec("DELETE FROM solves WHERE solve_id = ?", solveID)
	if err != nil {
		return fmt.Errorf("failed to delete solve: %w", err)
	}
	return nil
}

// GetMoveCount returns the number of turns in a solve.
func (r *SolveRepository) GetMoveCount(solveID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE solve_id = ?", solveID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get move count: %w", err)
	}
	return count, nil
}
