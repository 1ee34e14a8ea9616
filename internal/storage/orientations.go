package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// OrientationRecord is the pair of canonical sides facing up and towards
// the camera at some point of a solve.
type OrientationRecord struct {
	OrientationID int64
	SolveID       string
	TsMs          int64
	UpSide        string
	FrontSide     string
}

// OrientationRepository provides CRUD operations for orientations.
type OrientationRepository struct {
	db *DB
}

// NewOrientationRepository creates a new orientation repository.
func NewOrientationRepository(db *DB) *OrientationRepository {
	return &OrientationRepository{db: db}
}

// Create stores an orientation and returns its ID.
func (r *OrientationRepository) Create(solveID string, tsMs int64, upSide, frontSide string) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO orientations (solve_id, ts_ms, up_side, front_side)
		VALUES (?, ?, ?, ?)
	`, solveID, tsMs, upSide, frontSide)
	if err != nil {
		return 0, fmt.Errorf("failed to create orientation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get orientation ID: %w", err)
	}

	return id, nil
}

// GetBySolve retrieves all orientation records for a solve.
func (r *OrientationRepository) GetBySolve(solveID string) ([]OrientationRecord, error) {
	rows, err := r.db.Query(`
		SELECT orientation_id, solve_id, ts_ms, up_side, front_side
		FROM orientations
		WHERE solve_id = ?
		ORDER BY ts_ms, orientation_id
	`, solveID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orientations: %w", err)
	}
	defer rows.Close()

	var orientations []OrientationRecord
	for rows.Next() {
		var o OrientationRecord
		if err := rows.Scan(&o.OrientationID, &o.SolveID, &o.TsMs, &o.UpSide, &o.FrontSide); err != nil {
			return nil, fmt.Errorf("failed to scan orientation: %w", err)
		}
		orientations = append(orientations, o)
	}

	return orientations, rows.Err()
}

// GetLast returns the most recent orientation for a solve, or nil.
func (r *OrientationRepository) GetLast(solveID string) (*OrientationRecord, error) {
	row := r.db.QueryRow(`
		SELECT orientation_id, solve_id, ts_ms, up_side, front_side
		FROM orientations
		WHERE solve_id = ?
		ORDER BY ts_ms DESC, orientation_id DESC
		LIMIT 1
	`, solveID)

	var o OrientationRecord
	err := row.Scan(&o.OrientationID, &o.SolveID, &o.TsMs, &o.UpSide, &o.FrontSide)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last orientation: %w", err)
	}

	return &o, nil
}
