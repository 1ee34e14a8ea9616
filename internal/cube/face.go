package cube

import (
	"github.com/westphae/quaternion"

	"github.com/SeamusWaldron/cubeterm/internal/geometry"
	"github.com/SeamusWaldron/cubeterm/internal/grid"
	"github.com/SeamusWaldron/cubeterm/internal/screen"
	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// Face is one flat side of the solid.
//
// Corner 0 is the outer corner of sticker [0][0], corner 1 lies along the
// columns, corner 3 along the rows and corner 2 is opposite corner 0.
// Markers form the 4x4 grid that splits the face into nine stickers:
//
//	Markers[i*4+j] = c0 + i/3*(c3-c0) + j/3*(c1-c0)
type Face struct {
	Corners [4]geometry.Point3D
	Markers [16]geometry.Point3D
	Colors  grid.Face
}

// NewFace creates a face and derives its markers.
func NewFace(corners [4]geometry.Point3D, colors grid.Face) Face {
	f := Face{Corners: corners, Colors: colors}
	f.updateMarkers()
	return f
}

func (f *Face) updateMarkers() {
	rowStep := f.Corners[3].Sub(f.Corners[0]).Scale(1.0 / 3)
	colStep := f.Corners[1].Sub(f.Corners[0]).Scale(1.0 / 3)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			f.Markers[i*4+j] = f.Corners[0].Add(rowStep.Scale(float64(i))).Add(colStep.Scale(float64(j)))
		}
	}
}

// Marker returns marker (row, col) of the 4x4 grid.
func (f Face) Marker(row, col int) geometry.Point3D {
	return f.Markers[row*4+col]
}

// Center returns the centroid of the face.
func (f Face) Center() geometry.Point3D {
	return geometry.Centroid(f.Corners[:]...)
}

// StickerCenter returns the centroid of sticker (row, col).
func (f Face) StickerCenter(row, col int) geometry.Point3D {
	return geometry.Centroid(f.Marker(row, col), f.Marker(row, col+1), f.Marker(row+1, col+1), f.Marker(row+1, col))
}

// Depth returns the distance from the camera to the face center.
func (f Face) Depth() float64 {
	return f.Center().Length()
}

func (f *Face) rotate(center geometry.Point3D, q quaternion.Quaternion) {
	geometry.RotateAll(f.Corners[:], center, q)
	geometry.RotateAll(f.Markers[:], center, q)
}

// Drawable returns the face as a 3x3 sticker quad.
func (f Face) Drawable() screen.Drawable {
	colors := make([]types.Color, 0, 9)
	for _, row := range f.Colors {
		colors = append(colors, row[:]...)
	}
	return screen.Drawable{
		Rows:    3,
		Cols:    3,
		Markers: append([]geometry.Point3D(nil), f.Markers[:]...),
		Colors:  colors,
		Depth:   f.Depth(),
	}
}
