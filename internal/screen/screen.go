// Package screen projects 3D polygons onto a fixed-size cell buffer.
//
// The camera sits at the origin looking down +Z. Points are projected with
// a perspective divide, scaled to cells and offset so that the optical axis
// lands on the buffer center. Row 0 is the top of the buffer.
package screen

import (
	"sort"

	"github.com/SeamusWaldron/cubeterm/internal/geometry"
	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// MaxVisibleFaces is the number of faces of a convex object that can face
// the camera at once.
const MaxVisibleFaces = 3

// Cell is one buffer position. Filled is false for background.
type Cell struct {
	Color  types.Color
	Filled bool
}

// Drawable is a flat quad subdivided into Rows x Cols stickers.
// Markers holds (Rows+1) x (Cols+1) points in row-major order and Colors
// holds Rows x Cols colors in row-major order.
type Drawable struct {
	Rows, Cols int
	Markers    []geometry.Point3D
	Colors     []types.Color
	Depth      float64
}

// Renderable is anything the screen can paint.
type Renderable interface {
	// Depth orders objects. Larger is farther from the camera.
	Depth() float64
	// DrawFaces returns the object's faces in any order.
	DrawFaces() []Drawable
}

// Screen is a cell buffer plus projection parameters.
type Screen struct {
	width, height    int
	offsetX, offsetY int
	focal, scale     float64
	near             float64
	cells            []Cell
}

// New creates a blank screen. The projection center defaults to the middle
// of the buffer.
func New(width, height int, focal, scale float64, opts ...Option) *Screen {
	s := &Screen{
		width:   width,
		height:  height,
		offsetX: width / 2,
		offsetY: height / 2,
		focal:   focal,
		scale:   scale,
		near:    DefaultNear,
		cells:   make([]Cell, width*height),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Width returns the buffer width in cells.
func (s *Screen) Width() int { return s.width }

// Height returns the buffer height in cells.
func (s *Screen) Height() int { return s.height }

// Clear resets every cell to background.
func (s *Screen) Clear() {
	clear(s.cells)
}

// Cell returns the cell at column x, row y. Positions outside the buffer
// read as background.
func (s *Screen) Cell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{}
	}
	return s.cells[y*s.width+x]
}

// Cells returns the buffer as rows of cells.
func (s *Screen) Cells() [][]Cell {
	rows := make([][]Cell, s.height)
	for y := range rows {
		rows[y] = append([]Cell(nil), s.cells[y*s.width:(y+1)*s.width]...)
	}
	return rows
}

// Filled returns the number of painted cells.
func (s *Screen) Filled() int {
	n := 0
	for _, c := range s.cells {
		if c.Filled {
			n++
		}
	}
	return n
}

// Project maps a 3D point to a buffer position. It reports false for points
// on or behind the near plane.
func (s *Screen) Project(p geometry.Point3D) (geometry.Point2D, bool) {
	if p.Z <= s.near {
		return geometry.Point2D{}, false
	}
	m := s.focal / p.Z
	x := int(p.X*m*s.scale) + s.offsetX
	y := s.offsetY - int(p.Y*m*s.scale)
	return geometry.Point2D{X: x, Y: y}, true
}

// FillTriangle paints every cell inside t. Cells outside the buffer are
// clipped and degenerate triangles paint nothing.
func (s *Screen) FillTriangle(t geometry.Triangle, c types.Color) {
	if t.Degenerate() {
		return
	}
	lo, hi := t.Bounds()
	lo.X = max(lo.X, 0)
	lo.Y = max(lo.Y, 0)
	hi.X = min(hi.X, s.width-1)
	hi.Y = min(hi.Y, s.height-1)

	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			if t.Contains(geometry.Point2D{X: x, Y: y}) {
				s.cells[y*s.width+x] = Cell{Color: c, Filled: true}
			}
		}
	}
}

// Render paints objects far to near. Of each object only the
// MaxVisibleFaces nearest faces are painted, also far to near.
func (s *Screen) Render(objects ...Renderable) {
	sorted := append([]Renderable(nil), objects...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Depth() > sorted[j].Depth()
	})

	for _, obj := range sorted {
		faces := obj.DrawFaces()
		sort.SliceStable(faces, func(i, j int) bool {
			return faces[i].Depth < faces[j].Depth
		})
		if len(faces) > MaxVisibleFaces {
			faces = faces[:MaxVisibleFaces]
		}
		for i := len(faces) - 1; i >= 0; i-- {
			s.drawFace(faces[i])
		}
	}
}

func (s *Screen) drawFace(d Drawable) {
	stride := d.Cols + 1
	if d.Rows <= 0 || d.Cols <= 0 || len(d.Markers) < (d.Rows+1)*stride || len(d.Colors) < d.Rows*d.Cols {
		return
	}

	projected := make([]geometry.Point2D, len(d.Markers))
	for i, p := range d.Markers {
		pp, ok := s.Project(p)
		if !ok {
			return
		}
		projected[i] = pp
	}

	for row := 0; row < d.Rows; row++ {
		for col := 0; col < d.Cols; col++ {
			a := projected[row*stride+col]
			b := projected[row*stride+col+1]
			c := projected[(row+1)*stride+col+1]
			e := projected[(row+1)*stride+col]
			color := d.Colors[row*d.Cols+col]
			s.FillTriangle(geometry.Triangle{a, b, c}, color)
			s.FillTriangle(geometry.Triangle{a, c, e}, color)
		}
	}
}
