package smartcube

import (
	"github.com/westphae/quaternion"

	"github.com/SeamusWaldron/cubeterm/internal/notation"
	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// ColorToSide returns the side whose center shows c on a cube held white
// up and green front.
func ColorToSide(c types.Color) (types.Side, bool) {
	for i, color := range types.Colors {
		if color == c {
			return types.FaceSides[i], true
		}
	}
	return 0, false
}

// RotationToMove converts a rotation event to a turn of a canonical side.
func RotationToMove(rot RotationEvent) (types.Move, bool) {
	side, ok := ColorToSide(rot.Color)
	if !ok {
		return types.Move{}, false
	}
	dir := types.CounterClockwise
	if rot.Clockwise {
		dir = types.Clockwise
	}
	return types.NewMove(side, dir), true
}

// RotationsToMoves converts rotation events to turns, merging adjacent
// turns of the same side.
func RotationsToMoves(rotations []RotationEvent) []types.Move {
	moves := make([]types.Move, 0, len(rotations))
	for _, rot := range rotations {
		if m, ok := RotationToMove(rot); ok {
			moves = append(moves, m)
		}
	}
	return notation.Simplify(moves)
}

// ToWorld converts an orientation from the cube's frame, where the front
// faces +z, to camera space, where the front faces -z.
func ToWorld(q quaternion.Quaternion) quaternion.Quaternion {
	return quaternion.Quaternion{W: q.W, X: -q.X, Y: -q.Y, Z: q.Z}
}
