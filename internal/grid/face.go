package grid

import (
	"strings"

	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// Face is the 3x3 sticker matrix of one face, indexed [row][col]:
//
//	[0][0] [0][1] [0][2]
//	[1][0] [1][1] [1][2]
//	[2][0] [2][1] [2][2]
//
// The center [1][1] never moves.
type Face [3][3]types.Color

// NewFace creates a face of a single color.
func NewFace(c types.Color) Face {
	var f Face
	for row := range f {
		for col := range f[row] {
			f[row][col] = c
		}
	}
	return f
}

// Rotate turns the face in place.
func (f *Face) Rotate(d types.Direction) {
	switch d {
	case types.Clockwise:
		f.RotateClockwise()
	case types.CounterClockwise:
		f.RotateCounterClockwise()
	case types.Double:
		f.RotateClockwise()
		f.RotateClockwise()
	}
}

// RotateClockwise rotates the face 90 degrees clockwise.
func (f *Face) RotateClockwise() {
	// Corner rotation: [0][0] <- [2][0] <- [2][2] <- [0][2]
	temp := f[0][0]
	f[0][0] = f[2][0]
	f[2][0] = f[2][2]
	f[2][2] = f[0][2]
	f[0][2] = temp

	// Edge rotation: [0][1] <- [1][0] <- [2][1] <- [1][2]
	temp = f[0][1]
	f[0][1] = f[1][0]
	f[1][0] = f[2][1]
	f[2][1] = f[1][2]
	f[1][2] = temp
}

// RotateCounterClockwise rotates the face 90 degrees counter-clockwise.
func (f *Face) RotateCounterClockwise() {
	temp := f[0][0]
	f[0][0] = f[0][2]
	f[0][2] = f[2][2]
	f[2][2] = f[2][0]
	f[2][0] = temp

	temp = f[0][1]
	f[0][1] = f[1][2]
	f[1][2] = f[2][1]
	f[2][1] = f[1][0]
	f[1][0] = temp
}

// IsUniform reports whether all nine stickers share color c.
func (f Face) IsUniform(c types.Color) bool {
	for _, row := range f {
		for _, color := range row {
			if color != c {
				return false
			}
		}
	}
	return true
}

// Row returns row idx as a string of color letters.
func (f Face) Row(idx int) string {
	var b strings.Builder
	for _, c := range f[idx] {
		b.WriteString(c.String())
		b.WriteByte(' ')
	}
	return b.String()
}
