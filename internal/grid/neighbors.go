package grid

import "github.com/SeamusWaldron/cubeterm/pkg/types"

// Strip selects three stickers of a face in a fixed reading order.
type Strip int

const (
	StripTop          Strip = iota // Row 0, left to right
	StripBottom                    // Row 2, right to left
	StripLeft                      // Column 0, bottom to top
	StripRight                     // Column 2, top to bottom
	StripColumnUp                  // Column 1, bottom to top
	StripColumnDown                // Column 1, top to bottom
	StripRow                       // Row 1, left to right
	StripRowReversed               // Row 1, right to left
)

// Cell is a sticker position on a face.
type Cell struct {
	Row, Col int
}

// Cells returns the three positions of the strip in reading order.
func (s Strip) Cells() [3]Cell {
	switch s {
	case StripTop:
		return [3]Cell{{0, 0}, {0, 1}, {0, 2}}
	case StripBottom:
		return [3]Cell{{2, 2}, {2, 1}, {2, 0}}
	case StripLeft:
		return [3]Cell{{2, 0}, {1, 0}, {0, 0}}
	case StripRight:
		return [3]Cell{{0, 2}, {1, 2}, {2, 2}}
	case StripColumnUp:
		return [3]Cell{{2, 1}, {1, 1}, {0, 1}}
	case StripColumnDown:
		return [3]Cell{{0, 1}, {1, 1}, {2, 1}}
	case StripRow:
		return [3]Cell{{1, 0}, {1, 1}, {1, 2}}
	default:
		return [3]Cell{{1, 2}, {1, 1}, {1, 0}}
	}
}

// NeighborSlice is one border strip that moves into or out of an adjacent
// face during a turn.
type NeighborSlice struct {
	Side  types.Side
	Strip Strip
}

// Read returns the strip colors in reading order.
func (n NeighborSlice) Read(g *Grid) [3]types.Color {
	face := &g.faces[n.Side.MustIndex()]
	var out [3]types.Color
	for i, c := range n.Strip.Cells() {
		out[i] = face[c.Row][c.Col]
	}
	return out
}

// Write stores colors into the strip in reading order.
func (n NeighborSlice) Write(g *Grid, colors [3]types.Color) {
	face := &g.faces[n.Side.MustIndex()]
	for i, c := range n.Strip.Cells() {
		face[c.Row][c.Col] = colors[i]
	}
}

// Neighbors returns the four strips that cycle when side turns, in
// rotational order. Each strip reads in the same direction around the
// turning layer so a turn is a plain rotation of the list.
func Neighbors(side types.Side) [4]NeighborSlice {
	switch side {
	case types.Top:
		return [4]NeighborSlice{
			{types.Back, StripTop},
			{types.Right, StripTop},
			{types.Front, StripTop},
			{types.Left, StripTop},
		}
	case types.Front:
		return [4]NeighborSlice{
			{types.Top, StripBottom},
			{types.Right, StripLeft},
			{types.Bottom, StripTop},
			{types.Left, StripRight},
		}
	case types.Bottom:
		return [4]NeighborSlice{
			{types.Back, StripBottom},
			{types.Right, StripBottom},
			{types.Front, StripBottom},
			{types.Left, StripBottom},
		}
	case types.Left:
		return [4]NeighborSlice{
			{types.Top, StripLeft},
			{types.Front, StripLeft},
			{types.Bottom, StripLeft},
			{types.Back, StripRight},
		}
	case types.Right:
		return [4]NeighborSlice{
			{types.Top, StripRight},
			{types.Front, StripRight},
			{types.Bottom, StripRight},
			{types.Back, StripLeft},
		}
	case types.Back:
		return [4]NeighborSlice{
			{types.Top, StripTop},
			{types.Right, StripRight},
			{types.Bottom, StripBottom},
			{types.Left, StripLeft},
		}
	case types.MiddleX:
		// Back is viewed from behind, so its middle column runs the other way.
		return [4]NeighborSlice{
			{types.Top, StripColumnUp},
			{types.Front, StripColumnUp},
			{types.Bottom, StripColumnUp},
			{types.Back, StripColumnDown},
		}
	case types.MiddleY:
		return [4]NeighborSlice{
			{types.Back, StripRow},
			{types.Right, StripRow},
			{types.Front, StripRow},
			{types.Left, StripRow},
		}
	case types.MiddleZ:
		return [4]NeighborSlice{
			{types.Top, StripRowReversed},
			{types.Right, StripColumnUp},
			{types.Bottom, StripRow},
			{types.Left, StripColumnDown},
		}
	default:
		panic("grid: neighbors requested for unknown side " + side.String())
	}
}
