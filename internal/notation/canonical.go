// Package notation parses, formats and rewrites move sequences.
package notation

import (
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// ParseSequence parses a whitespace separated sequence of moves.
// The first invalid token aborts the parse.
func ParseSequence(s string) ([]types.Move, error) {
	parts := strings.Fields(s)
	moves := make([]types.Move, 0, len(parts))

	for i, part := range parts {
		move, err := types.ParseMove(part)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatSequence formats a slice of moves as a space-separated string.
func FormatSequence(moves []types.Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// Invert returns the sequence that undoes moves.
func Invert(moves []types.Move) []types.Move {
	out := make([]types.Move, len(moves))
	for i, m := range moves {
		out[len(moves)-1-i] = m.Inverse()
	}
	return out
}

// NormalizeTurn folds a signed quarter turn count into a direction.
// The second result is false when the turns cancel out.
// -3 -> CW, -2 -> Double, -1 -> CCW, 0 -> none, 1 -> CW, 2 -> Double, 3 -> CCW
func NormalizeTurn(quarters int) (types.Direction, bool) {
	quarters = ((quarters % 4) + 4) % 4
	switch quarters {
	case 1:
		return types.Clockwise, true
	case 2:
		return types.Double, true
	case 3:
		return types.CounterClockwise, true
	default:
		return 0, false
	}
}

// Simplify merges consecutive turns of the same side and drops turns that
// cancel, so "R R" becomes "R2" and "U U'" disappears.
func Simplify(moves []types.Move) []types.Move {
	out := make([]types.Move, 0, len(moves))
	for _, m := range moves {
		if n := len(out); n > 0 && out[n-1].Side == m.Side {
			dir, ok := NormalizeTurn(out[n-1].Direction.Quarters() + m.Direction.Quarters())
			if ok {
				out[n-1].Direction = dir
			} else {
				out = out[:n-1]
			}
			continue
		}
		out = append(out, m)
	}
	return out
}
