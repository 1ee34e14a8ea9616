package notation

import (
	"strings"

	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// Describe returns a plain language description of a move as seen by a
// player holding the puzzle White on top, Green in front.
//
//	R  -> "right up"          R' -> "right down"
//	L  -> "left down"         L' -> "left up"
//	U  -> "top turn left"     D  -> "bottom turn right"
//	F  -> "front clockwise"   B  -> "back clockwise"
//	M  -> "middle down"       E  -> "equator right"    S -> "standing clockwise"
func Describe(m types.Move) string {
	var layer, cw, ccw string
	switch m.Side {
	case types.Right:
		layer, cw, ccw = "right", "up", "down"
	case types.Left:
		layer, cw, ccw = "left", "down", "up"
	case types.MiddleX:
		layer, cw, ccw = "middle", "down", "up"
	case types.Top:
		layer, cw, ccw = "top", "turn left", "turn right"
	case types.Bottom:
		layer, cw, ccw = "bottom", "turn right", "turn left"
	case types.MiddleY:
		layer, cw, ccw = "equator", "right", "left"
	case types.Front:
		layer, cw, ccw = "front", "clockwise", "anti-clockwise"
	case types.Back:
		layer, cw, ccw = "back", "clockwise", "anti-clockwise"
	case types.MiddleZ:
		layer, cw, ccw = "standing", "clockwise", "anti-clockwise"
	default:
		return m.Notation()
	}

	switch m.Direction {
	case types.CounterClockwise:
		return layer + " " + ccw
	case types.Double:
		return layer + " " + cw + " x 2"
	default:
		return layer + " " + cw
	}
}

// DescribeSequence formats moves as a comma-separated description.
func DescribeSequence(moves []types.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = Describe(m)
	}
	return strings.Join(parts, ", ")
}
