package cube

import (
	"sort"

	"github.com/SeamusWaldron/cubeterm/internal/geometry"
	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// tiebreakAngle is the small rotation used to separate faces that are
// equally aligned with a reference direction.
const tiebreakAngle = 1.0 / 64

// referenceDirections holds the camera direction of each side, in stored
// face order.
var referenceDirections = [6]geometry.Point3D{
	{Y: 1},  // Top
	{X: -1}, // Left
	{Z: -1}, // Front
	{X: 1},  // Right
	{Z: 1},  // Back
	{Y: -1}, // Bottom
}

var tiebreak = geometry.Compose(geometry.RotationY(tiebreakAngle), geometry.RotationX(-tiebreakAngle))

type alignment struct {
	ref, face int
	score     float64
}

// UpdateSideMap recomputes which canonical face points along each camera
// direction.
//
// The faces are measured under a slightly perturbed rotation so that exact
// ties resolve the same way every time. Pairs are assigned best score
// first, together with their opposite pair, so the map is always a
// bijection.
func (c *Cube) UpdateSideMap() {
	nudged := geometry.Compose(c.orientation, tiebreak)

	var centers [6]geometry.Point3D
	for i, corners := range canonicalCorners {
		centers[i] = geometry.Rotate(nudged, geometry.Centroid(corners[:]...))
	}

	scores := make([]alignment, 0, 36)
	for r, dir := range referenceDirections {
		for f, center := range centers {
			scores = append(scores, alignment{ref: r, face: f, score: center.Dot(dir)})
		}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	var assigned, used [6]bool
	for _, a := range scores {
		if assigned[a.ref] || used[a.face] {
			continue
		}
		ref := types.FaceSides[a.ref]
		face := types.FaceSides[a.face]
		oppRef := ref.Opposite().MustIndex()
		oppFace := face.Opposite().MustIndex()

		c.sideMap[a.ref] = face
		c.sideMap[oppRef] = face.Opposite()
		assigned[a.ref], assigned[oppRef] = true, true
		used[a.face], used[oppFace] = true, true
	}
}

// SideMap returns, in stored face order, the canonical side facing each
// camera direction.
func (c *Cube) SideMap() [6]types.Side {
	return c.sideMap
}

// Resolve returns the canonical side currently facing the camera direction
// named by view. Middle layers resolve through their adjacent face.
func (c *Cube) Resolve(view types.Side) types.Side {
	return c.sideMap[view.Adjacent().MustIndex()]
}

// Translate converts a move given relative to the camera into a move on
// the canonical sides of the puzzle.
func (c *Cube) Translate(m types.Move) types.Move {
	mapped := c.Resolve(m.Side)
	if !m.Side.IsMiddle() {
		return types.NewMove(mapped, m.Direction)
	}

	// A middle layer turns with its adjacent face. When that face maps onto
	// the far end of the new axis the turning sense flips.
	middle := types.MiddleOf(mapped.Axis())
	dir := m.Direction
	if mapped != middle.Adjacent() {
		dir = dir.Inverse()
	}
	return types.NewMove(middle, dir)
}
