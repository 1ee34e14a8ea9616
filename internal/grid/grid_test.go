package grid

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

const (
	W = types.White
	O = types.Orange
	G = types.Green
	R = types.Red
	B = types.Blue
	Y = types.Yellow
)

func move(t *testing.T, s string) types.Move {
	t.Helper()
	m, err := types.ParseMove(s)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func moves(t *testing.T, tokens ...string) []types.Move {
	t.Helper()
	out := make([]types.Move, len(tokens))
	for i, s := range tokens {
		out[i] = move(t, s)
	}
	return out
}

func mixedGrid() *Grid {
	return FromFaces([6]Face{
		{{R, W, G}, {G, W, B}, {W, B, B}}, // Top
		{{B, O, R}, {Y, O, Y}, {G, G, O}}, // Left
		{{B, R, O}, {G, G, O}, {Y, Y, G}}, // Front
		{{W, O, O}, {Y, R, O}, {R, R, G}}, // Right
		{{Y, G, Y}, {W, B, R}, {W, W, W}}, // Back
		{{B, B, Y}, {R, Y, W}, {O, B, R}}, // Bottom
	})
}

func face(t *testing.T, g *Grid, side types.Side) Face {
	t.Helper()
	f, err := g.Face(side)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func column(f Face, col int) [3]types.Color {
	return [3]types.Color{f[0][col], f[1][col], f[2][col]}
}

func uniform(c types.Color) [3]types.Color {
	return [3]types.Color{c, c, c}
}

func TestNewGridIsSolved(t *testing.T) {
	g := New()
	if !g.IsSolved() {
		t.Error("New grid should be solved")
	}
	for _, side := range types.FaceSides {
		want, err := SolvedColor(side)
		if err != nil {
			t.Fatal(err)
		}
		if f := face(t, g, side); !f.IsUniform(want) {
			t.Errorf("%v should be uniform %v", side, want)
		}
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	for _, side := range types.Sides {
		g := New()
		g.Turn(side, types.Clockwise)
		if g.IsSolved() {
			t.Errorf("grid should not be solved after %v", side)
		}
	}
}

func TestFourQuartersReturnToStart(t *testing.T) {
	for _, side := range types.Sides {
		g := mixedGrid()
		for i := 0; i < 4; i++ {
			g.Turn(side, types.Clockwise)
		}
		if diff := cmp.Diff(mixedGrid().Faces(), g.Faces()); diff != "" {
			t.Errorf("%v x4 changed the grid (-want +got):\n%s", side, diff)
		}
	}
}

func TestDoubleTwiceReturnsToStart(t *testing.T) {
	for _, side := range types.Sides {
		g := mixedGrid()
		g.Turn(side, types.Double)
		g.Turn(side, types.Double)
		if !g.Equal(mixedGrid()) {
			t.Errorf("%v2 %v2 should be identity", side.Letter(), side.Letter())
			t.Log(g.String())
		}
	}
}

func TestDoubleEqualsTwoQuarters(t *testing.T) {
	for _, side := range types.Sides {
		a := mixedGrid()
		a.Turn(side, types.Double)
		b := mixedGrid()
		b.Turn(side, types.Clockwise)
		b.Turn(side, types.Clockwise)
		if !a.Equal(b) {
			t.Errorf("%v double differs from two quarter turns", side)
		}
	}
}

func TestInverseRestores(t *testing.T) {
	for _, side := range types.Sides {
		for _, d := range []types.Direction{types.Clockwise, types.CounterClockwise, types.Double} {
			g := mixedGrid()
			m := types.NewMove(side, d)
			g.Apply(m)
			g.Apply(m.Inverse())
			if !g.Equal(mixedGrid()) {
				t.Errorf("%v followed by %v did not restore the grid", m, m.Inverse())
			}
		}
	}
}

func TestSexyMoveSixTimes(t *testing.T) {
	g := mixedGrid()
	seq := moves(t, "R", "U", "R'", "U'")
	for i := 0; i < 6; i++ {
		g.ApplyAll(seq)
	}
	if !g.Equal(mixedGrid()) {
		t.Error("(R U R' U') x 6 should be identity")
		t.Log(g.String())
	}
}

func TestMiddleLayerLeavesFacesAlone(t *testing.T) {
	untouched := map[types.Side][]types.Side{
		types.MiddleX: {types.Left, types.Right},
		types.MiddleY: {types.Top, types.Bottom},
		types.MiddleZ: {types.Front, types.Back},
	}
	for side, faces := range untouched {
		g := mixedGrid()
		g.Turn(side, types.Clockwise)
		for _, f := range faces {
			if face(t, g, f) != face(t, mixedGrid(), f) {
				t.Errorf("%v changed %v", side, f)
			}
		}
		if g.Equal(mixedGrid()) {
			t.Errorf("%v changed nothing", side)
		}
	}
}

func TestMiddleLayerMovesCenters(t *testing.T) {
	// M follows L: the front center goes down.
	g := New()
	g.Apply(move(t, "M"))
	if got := face(t, g, types.Bottom)[1][1]; got != G {
		t.Errorf("after M bottom center = %v, want G", got)
	}
	if got := face(t, g, types.Front)[1][1]; got != W {
		t.Errorf("after M front center = %v, want W", got)
	}

	// E follows D: the front center goes right.
	g = New()
	g.Apply(move(t, "E"))
	if got := face(t, g, types.Right)[1][1]; got != G {
		t.Errorf("after E right center = %v, want G", got)
	}

	// S follows F: the top center goes right.
	g = New()
	g.Apply(move(t, "S"))
	if got := face(t, g, types.Right)[1][1]; got != W {
		t.Errorf("after S right center = %v, want W", got)
	}
	if got := face(t, g, types.Left)[1][1]; got != Y {
		t.Errorf("after S left center = %v, want Y", got)
	}
}

func TestSliceMovesMatchWholeTurns(t *testing.T) {
	// R M' L' turns the whole puzzle, so every face stays uniform on a
	// solved grid.
	g := New()
	g.ApplyAll(moves(t, "L'", "M'", "R"))
	for _, side := range types.FaceSides {
		f := face(t, g, side)
		if !f.IsUniform(f[1][1]) {
			t.Errorf("%v not uniform after a whole puzzle turn", side)
			t.Log(g.String())
		}
	}

	g = New()
	g.ApplyAll(moves(t, "U", "E'", "D'"))
	g.ApplyAll(moves(t, "F", "S", "B'"))
	for _, side := range types.FaceSides {
		f := face(t, g, side)
		if !f.IsUniform(f[1][1]) {
			t.Errorf("%v not uniform after whole puzzle turns", side)
			t.Log(g.String())
		}
	}
}

func TestFaceTurns(t *testing.T) {
	tests := []struct {
		move  string
		check func(g *Grid) bool
	}{
		{"R", func(g *Grid) bool {
			return column(face(t, g, types.Front), 2) == uniform(Y) &&
				column(face(t, g, types.Top), 2) == uniform(G) &&
				column(face(t, g, types.Back), 0) == uniform(W) &&
				column(face(t, g, types.Bottom), 2) == uniform(B)
		}},
		{"L", func(g *Grid) bool {
			return column(face(t, g, types.Front), 0) == uniform(W) &&
				column(face(t, g, types.Top), 0) == uniform(B) &&
				column(face(t, g, types.Back), 2) == uniform(Y) &&
				column(face(t, g, types.Bottom), 0) == uniform(G)
		}},
		{"F", func(g *Grid) bool {
			return face(t, g, types.Top)[2] == uniform(O) &&
				column(face(t, g, types.Right), 0) == uniform(W) &&
				face(t, g, types.Bottom)[0] == uniform(R) &&
				column(face(t, g, types.Left), 2) == uniform(Y)
		}},
		{"U", func(g *Grid) bool {
			return face(t, g, types.Front)[0] == uniform(R) &&
				face(t, g, types.Left)[0] == uniform(G) &&
				face(t, g, types.Right)[0] == uniform(B) &&
				face(t, g, types.Back)[0] == uniform(O)
		}},
		{"D", func(g *Grid) bool {
			return face(t, g, types.Front)[2] == uniform(O) &&
				face(t, g, types.Left)[2] == uniform(B) &&
				face(t, g, types.Right)[2] == uniform(G) &&
				face(t, g, types.Back)[2] == uniform(R)
		}},
		{"B", func(g *Grid) bool {
			return face(t, g, types.Top)[0] == uniform(R) &&
				column(face(t, g, types.Right), 2) == uniform(Y) &&
				column(face(t, g, types.Left), 0) == uniform(W) &&
				face(t, g, types.Bottom)[2] == uniform(O)
		}},
	}

	for _, tt := range tests {
		g := New()
		g.Apply(move(t, tt.move))
		if !tt.check(g) {
			t.Errorf("%s from solved produced the wrong strips", tt.move)
			t.Log(g.String())
		}
	}
}

func TestWholePuzzleTurnIsNotSolved(t *testing.T) {
	g := New()
	g.ApplyAll(moves(t, "L'", "M'", "R"))
	if g.IsSolved() {
		t.Errorf("moved centers read as solved, top center %v", face(t, g, types.Top)[1][1])
	}
	g.ApplyAll(moves(t, "R'", "M", "L"))
	if !g.IsSolved() {
		t.Error("undoing the turn should solve the grid")
	}
}

func TestMixedGridSolution(t *testing.T) {
	g := mixedGrid()
	g.ApplyAll(moves(t,
		"D", "L'", "F", "R'", "D", "R", "R", "L", "F", "L'",
		"R", "R", "F'", "U", "U", "B'", "R", "R", "B", "U",
		"U", "F'", "L", "L", "U", "U", "B",
	))
	if !g.IsSolved() {
		t.Error("solution sequence should solve the mixed grid")
		t.Log(g.String())
	}
	if diff := cmp.Diff(New().Faces(), g.Faces()); diff != "" {
		t.Errorf("solved grid differs (-want +got):\n%s", diff)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := New()
	c := g.Clone()
	c.Apply(move(t, "R"))
	if !g.IsSolved() {
		t.Error("turning a clone changed the original")
	}
}

func TestMiddleLayerHasNoFace(t *testing.T) {
	g := New()
	if _, err := g.Face(types.MiddleX); !errors.Is(err, types.ErrNoStoredFace) {
		t.Errorf("Face(MiddleX) error = %v", err)
	}
	if err := g.SetFace(types.MiddleY, Face{}); !errors.Is(err, types.ErrNoStoredFace) {
		t.Errorf("SetFace(MiddleY) error = %v", err)
	}
	if _, err := g.Sticker(types.MiddleZ, 0, 0); !errors.Is(err, types.ErrNoStoredFace) {
		t.Errorf("Sticker(MiddleZ) error = %v", err)
	}
	if _, err := g.Sticker(types.Top, 3, 0); err == nil {
		t.Error("Sticker out of range should fail")
	}
}

func TestNeighborStripsStayOnBorder(t *testing.T) {
	// Face turns touch only the border row or column next to the turning face.
	for _, side := range types.FaceSides {
		for _, n := range Neighbors(side) {
			cells := n.Strip.Cells()
			onEdge := func(c Cell) bool { return c.Row != 1 || c.Col != 1 }
			for _, c := range cells {
				if !onEdge(c) {
					t.Errorf("%v neighbor %v touches a center", side, n.Side)
				}
			}
			if n.Side == side || n.Side == side.Opposite() {
				t.Errorf("%v lists %v as a neighbor", side, n.Side)
			}
		}
	}
}

func TestStringNet(t *testing.T) {
	s := New().String()
	want := "      W W W \n"
	if s[:len(want)] != want {
		t.Errorf("net first line = %q, want %q", s[:len(want)], want)
	}
}
