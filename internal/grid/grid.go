// Package grid holds the sticker state of a 3x3x3 puzzle and applies layer
// turns to it.
package grid

import (
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// Grid is the puzzle state: six faces in the order
// Top, Left, Front, Right, Back, Bottom.
type Grid struct {
	faces [6]Face
}

// New creates a solved grid: White on top, Green in front.
func New() *Grid {
	g := &Grid{}
	for i, c := range types.Colors {
		g.faces[i] = NewFace(c)
	}
	return g
}

// FromFaces creates a grid from explicit face contents in stored order.
func FromFaces(faces [6]Face) *Grid {
	return &Grid{faces: faces}
}

// SolvedColor returns the color of a face side when solved.
func SolvedColor(side types.Side) (types.Color, error) {
	idx, err := side.Index()
	if err != nil {
		return types.Neutral, err
	}
	return types.Colors[idx], nil
}

// Clone creates a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	clone := *g
	return &clone
}

// Equal reports whether both grids hold the same stickers.
func (g *Grid) Equal(other *Grid) bool {
	return g.faces == other.faces
}

// Faces returns a copy of all six faces in stored order.
func (g *Grid) Faces() [6]Face {
	return g.faces
}

// Face returns a copy of the face for side.
func (g *Grid) Face(side types.Side) (Face, error) {
	idx, err := side.Index()
	if err != nil {
		return Face{}, err
	}
	return g.faces[idx], nil
}

// SetFace replaces the stickers of side.
func (g *Grid) SetFace(side types.Side, f Face) error {
	idx, err := side.Index()
	if err != nil {
		return err
	}
	g.faces[idx] = f
	return nil
}

// Sticker returns the color at row, col of side.
func (g *Grid) Sticker(side types.Side, row, col int) (types.Color, error) {
	idx, err := side.Index()
	if err != nil {
		return types.Neutral, err
	}
	if row < 0 || row > 2 || col < 0 || col > 2 {
		return types.Neutral, fmt.Errorf("grid: sticker %d,%d out of range", row, col)
	}
	return g.faces[idx][row][col], nil
}

// IsSolved returns true if every sticker shows the color assigned to its
// face. A whole-puzzle turn built from slice moves moves the centers, so it
// is not solved.
func (g *Grid) IsSolved() bool {
	for i, f := range g.faces {
		if !f.IsUniform(types.Colors[i]) {
			return false
		}
	}
	return true
}

// Apply applies a single move to the grid.
func (g *Grid) Apply(m types.Move) {
	g.Turn(m.Side, m.Direction)
}

// ApplyAll applies a sequence of moves in order.
func (g *Grid) ApplyAll(moves []types.Move) {
	for _, m := range moves {
		g.Apply(m)
	}
}

// Turn rotates one layer. Face sides also rotate their own stickers; middle
// layers only cycle the four neighbour strips.
func (g *Grid) Turn(side types.Side, d types.Direction) {
	if !side.IsMiddle() {
		g.faces[side.MustIndex()].Rotate(d)
	}

	neighbors := Neighbors(side)
	var buf [4][3]types.Color
	for i, n := range neighbors {
		buf[i] = n.Read(g)
	}

	shift := d.Quarters()
	if side.Reversed() {
		shift = -shift
	}
	for i, n := range neighbors {
		src := ((i-shift)%4 + 4) % 4
		n.Write(g, buf[src])
	}
}

// String renders the grid as an unfolded net:
//
//	      U
//	    L F R B
//	      D
func (g *Grid) String() string {
	var sb strings.Builder
	top := g.faces[types.Top.MustIndex()]
	bottom := g.faces[types.Bottom.MustIndex()]
	pad := strings.Repeat(" ", 6)

	for row := 0; row < 3; row++ {
		sb.WriteString(pad)
		sb.WriteString(top.Row(row))
		sb.WriteByte('\n')
	}
	for row := 0; row < 3; row++ {
		for _, side := range []types.Side{types.Left, types.Front, types.Right, types.Back} {
			sb.WriteString(g.faces[side.MustIndex()].Row(row))
		}
		sb.WriteByte('\n')
	}
	for row := 0; row < 3; row++ {
		sb.WriteString(pad)
		sb.WriteString(bottom.Row(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
