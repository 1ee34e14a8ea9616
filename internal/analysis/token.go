// Package analysis computes statistics over recorded solves: pacing,
// turn mix, recurring sequences and rolling averages.
package analysis

import (
	"fmt"

	"github.com/SeamusWaldron/cubeterm/internal/storage"
	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// Token encoding for n-gram detection.
// A turn becomes one byte: side (0-8) * 3 + direction (0-2), which gives
// 27 distinct values.

func directionIndex(d types.Direction) uint8 {
	switch d {
	case types.CounterClockwise:
		return 1
	case types.Double:
		return 2
	default:
		return 0
	}
}

func indexDirection(i uint8) types.Direction {
	switch i {
	case 1:
		return types.CounterClockwise
	case 2:
		return types.Double
	default:
		return types.Clockwise
	}
}

// Token encodes m as a single byte.
func Token(m types.Move) uint8 {
	return uint8(m.Side)*3 + directionIndex(m.Direction)
}

// FromToken decodes a byte produced by Token.
func FromToken(t uint8) types.Move {
	return types.NewMove(types.Side(t/3), indexDirection(t%3))
}

// TimedMove is a turn with its offset from the start of the solve.
type TimedMove struct {
	types.Move
	TsMs int64
}

// FromRecords converts stored turns into timed turns.
func FromRecords(records []storage.MoveRecord) ([]TimedMove, error) {
	moves := make([]TimedMove, len(records))
	for i, r := range records {
		m, err := types.ParseMove(r.Notation)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", r.MoveIndex, err)
		}
		moves[i] = TimedMove{Move: m, TsMs: r.TsMs}
	}
	return moves, nil
}

// Untimed strips the timestamps.
func Untimed(moves []TimedMove) []types.Move {
	out := make([]types.Move, len(moves))
	for i, m := range moves {
		out[i] = m.Move
	}
	return out
}
