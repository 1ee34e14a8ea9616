package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// MoveRecord represents a turn in the database.
type MoveRecord struct {
	MoveID    int64
	SolveID   string
	MoveIndex int
	TsMs      int64
	Side      string
	Turn      int
	Notation  string
}

// MoveRepository provides CRUD operations for turns.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

const insertMove = `
	INSERT INTO moves (solve_id, move_index, ts_ms, side, turn, notation)
	VALUES (?, ?, ?, ?, ?, ?)
`

// Create stores a turn and returns its ID.
func (r *MoveRepository) Create(solveID string, moveIndex int, tsMs int64, m types.Move) (int64, error) {
	result, err := r.db.Exec(insertMove,
		solveID, moveIndex, tsMs, m.Side.Letter(), m.Direction.Quarters(), m.Notation())
	if err != nil {
		return 0, fmt.Errorf("failed to create move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get move ID: %w", err)
	}

	return id, nil
}

// CreateBatch stores several turns with the same timestamp in one
// transaction.
func (r *MoveRepository) CreateBatch(solveID string, moves []types.Move, startIndex int, tsMs int64) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for i, m := range moves {
			_, err := tx.Exec(insertMove,
				solveID, startIndex+i, tsMs, m.Side.Letter(), m.Direction.Quarters(), m.Notation())
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", startIndex+i, err)
			}
		}
		return nil
	})
}

// GetBySolve retrieves all turns of a solve in order.
func (r *MoveRepository) GetBySolve(solveID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, solve_id, move_index, ts_ms, side, turn, notation
		FROM moves
		WHERE solve_id = ?
		ORDER BY move_index
	`, solveID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(&m.MoveID, &m.SolveID, &m.MoveIndex, &m.TsMs, &m.Side, &m.Turn, &m.Notation)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// GetNextIndex returns the next move index for a solve.
func (r *MoveRepository) GetNextIndex(solveID string) (int, error) {
	var maxIndex int
	err := r.db.QueryRow(`
		SELECT COALESCE(MAX(move_index), -1) FROM moves WHERE solve_id = ?
	`, solveID).Scan(&maxIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to get max move index: %w", err)
	}
	return maxIndex + 1, nil
}

// Count returns the number of turns for a solve.
func (r *MoveRepository) Count(solveID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE solve_id = ?", solveID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}

// ToMoves converts stored records back into turns.
func ToMoves(records []MoveRecord) ([]types.Move, error) {
	moves := make([]types.Move, len(records))
	for i, r := range records {
		m, err := types.ParseMove(r.Notation)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", r.MoveIndex, err)
		}
		moves[i] = m
	}
	return moves, nil
}
