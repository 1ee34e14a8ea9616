package cube

import (
	"github.com/SeamusWaldron/cubeterm/internal/geometry"
	"github.com/SeamusWaldron/cubeterm/internal/grid"
	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// stripSource says which neighbour strip of the turning side feeds a
// FaceSlice and whether its reading order runs against the slice markers.
type stripSource struct {
	neighbor int
	reversed bool
}

// stripSources returns the color sources of the four strips of a slice.
//
// Strips wind around the axis in the order their cross-section corners are
// taken. For X and Z that is the order grid.Neighbors lists them in; for Y
// the Front and Back strips trade places. A strip is reversed when its
// reading order starts at the far end of the slice markers.
func stripSources(axis types.Axis, order types.Order) [4]stripSource {
	var src [4]stripSource
	switch axis {
	case types.AxisY:
		rev := order == types.Last
		src = [4]stripSource{{2, rev}, {1, rev}, {0, rev}, {3, rev}}
	default:
		rev := order != types.Last
		src = [4]stripSource{{0, rev}, {1, rev}, {2, rev}, {3, rev}}
	}
	return src
}

// section returns the four corners of cross-section k (0..3) along axis,
// taken from the markers of the faces bounding the axis. Sections 0 and 3
// coincide with the outer faces of the first and last layer.
func (c *Cube) section(axis types.Axis, k int) [4]geometry.Point3D {
	top := c.faces[types.Top.MustIndex()]
	bottom := c.faces[types.Bottom.MustIndex()]
	switch axis {
	case types.AxisX:
		return [4]geometry.Point3D{top.Marker(0, k), top.Marker(3, k), bottom.Marker(0, k), bottom.Marker(3, k)}
	case types.AxisY:
		front := c.faces[types.Front.MustIndex()]
		back := c.faces[types.Back.MustIndex()]
		return [4]geometry.Point3D{front.Marker(k, 0), front.Marker(k, 3), back.Marker(k, 0), back.Marker(k, 3)}
	default:
		return [4]geometry.Point3D{top.Marker(3-k, 0), top.Marker(3-k, 3), bottom.Marker(k, 3), bottom.Marker(k, 0)}
	}
}

// BuildSlices splits the solid into its first, middle and last layer along
// axis. Outer caps carry the colors of g; inner caps are neutral. Strip
// colors come from the neighbour strips of each layer's side in g.
func BuildSlices(c *Cube, g *grid.Grid, axis types.Axis) [3]*CubeSlice {
	var sections [4][4]geometry.Point3D
	for k := range sections {
		sections[k] = c.section(axis, k)
	}

	neutral := grid.NewFace(types.Neutral)
	firstSide := types.FaceOf(axis, types.First)
	lastSide := types.FaceOf(axis, types.Last)

	caps := [4]Face{
		c.outerFace(g, firstSide),
		NewFace(sections[1], neutral),
		NewFace(sections[2], neutral),
		c.outerFace(g, lastSide),
	}

	var slices [3]*CubeSlice
	for l, order := range []types.Order{types.First, types.Middle, types.Last} {
		side := types.FaceOf(axis, order)
		neighbors := grid.Neighbors(side)
		a, b := sections[l], sections[l+1]

		s := &CubeSlice{Axis: axis, Order: order, Caps: [2]Face{caps[l], caps[l+1]}}
		for m, src := range stripSources(axis, order) {
			colors := neighbors[src.neighbor].Read(g)
			if src.reversed {
				colors[0], colors[2] = colors[2], colors[0]
			}
			next := (m + 1) % 4
			s.Strips[m] = NewFaceSlice([4]geometry.Point3D{a[m], a[next], b[next], b[m]}, colors)
		}
		slices[l] = s
	}
	return slices
}

func (c *Cube) outerFace(g *grid.Grid, side types.Side) Face {
	f := c.faces[side.MustIndex()]
	f.Colors = g.Faces()[side.MustIndex()]
	return f
}
