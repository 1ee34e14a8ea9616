// Package cube models the puzzle as a solid in 3D space. It resolves which
// canonical side faces each camera direction and splits the solid into
// rotatable slices for turn animation.
package cube

import (
	"github.com/westphae/quaternion"

	"github.com/SeamusWaldron/cubeterm/internal/geometry"
	"github.com/SeamusWaldron/cubeterm/internal/grid"
	"github.com/SeamusWaldron/cubeterm/internal/screen"
	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// canonicalCorners holds the corners of each face of the un-rotated solid
// centered on the origin, in stored face order. The solid spans -1..1 on
// every axis. Front is the face nearest the camera.
var canonicalCorners = [6][4]geometry.Point3D{
	// Top
	{{X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1}},
	// Left
	{{X: -1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: 1}},
	// Front
	{{X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: -1}},
	// Right
	{{X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: -1}},
	// Back
	{{X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}},
	// Bottom
	{{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: 1}},
}

// Cube is the puzzle solid: a position, a free rotation and the six faces
// derived from them.
type Cube struct {
	position    geometry.Point3D
	orientation quaternion.Quaternion
	faces       [6]Face
	sideMap     [6]types.Side
}

// New creates an un-rotated solid centered on position. Faces are neutral
// until ApplyGrid is called.
func New(position geometry.Point3D) *Cube {
	c := &Cube{position: position}
	neutral := grid.NewFace(types.Neutral)
	for i := range c.faces {
		c.faces[i].Colors = neutral
	}
	c.SetOrientation(geometry.Identity)
	return c
}

// Position returns the center of the solid.
func (c *Cube) Position() geometry.Point3D {
	return c.position
}

// Orientation returns the current rotation of the solid.
func (c *Cube) Orientation() quaternion.Quaternion {
	return c.orientation
}

// SetOrientation replaces the rotation of the solid, rebuilds the faces and
// refreshes the side map.
func (c *Cube) SetOrientation(q quaternion.Quaternion) {
	c.orientation = q.Unit()
	c.rebuild()
	c.UpdateSideMap()
}

// Rotate applies q on top of the current rotation, in world axes.
func (c *Cube) Rotate(q quaternion.Quaternion) {
	c.SetOrientation(geometry.Compose(c.orientation, q))
}

// RotateX rotates the solid about the world X axis.
func (c *Cube) RotateX(angle float64) {
	c.Rotate(geometry.RotationX(angle))
}

// RotateY rotates the solid about the world Y axis.
func (c *Cube) RotateY(angle float64) {
	c.Rotate(geometry.RotationY(angle))
}

// RotateZ rotates the solid about the world Z axis.
func (c *Cube) RotateZ(angle float64) {
	c.Rotate(geometry.RotationZ(angle))
}

func (c *Cube) rebuild() {
	for i, corners := range canonicalCorners {
		var placed [4]geometry.Point3D
		for k, p := range corners {
			placed[k] = geometry.Rotate(c.orientation, p).Add(c.position)
		}
		c.faces[i] = NewFace(placed, c.faces[i].Colors)
	}
}

// ApplyGrid copies the sticker colors of g onto the faces.
func (c *Cube) ApplyGrid(g *grid.Grid) {
	for i, f := range g.Faces() {
		c.faces[i].Colors = f
	}
}

// Faces returns a copy of the faces in stored order.
func (c *Cube) Faces() [6]Face {
	return c.faces
}

// Face returns the face showing side.
func (c *Cube) Face(side types.Side) (Face, error) {
	idx, err := side.Index()
	if err != nil {
		return Face{}, err
	}
	return c.faces[idx], nil
}

// Depth returns the mean face distance from the camera.
func (c *Cube) Depth() float64 {
	var sum float64
	for _, f := range c.faces {
		sum += f.Depth()
	}
	return sum / float64(len(c.faces))
}

// DrawFaces returns all six faces.
func (c *Cube) DrawFaces() []screen.Drawable {
	out := make([]screen.Drawable, len(c.faces))
	for i, f := range c.faces {
		out[i] = f.Drawable()
	}
	return out
}
