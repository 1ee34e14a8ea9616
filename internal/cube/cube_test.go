package cube

import (
	"math"
	"testing"

	"github.com/SeamusWaldron/cubeterm/internal/geometry"
	"github.com/SeamusWaldron/cubeterm/internal/grid"
	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

const third = 2.0 / 3

type sticker struct {
	side     types.Side
	row, col int
}

// stickerAt maps a point on the surface of the un-rotated solid centered
// on the origin to the sticker under it.
func stickerAt(p geometry.Point3D) (sticker, bool) {
	const eps = 1e-6
	var side types.Side
	var a, b float64
	switch {
	case math.Abs(p.Y-1) < eps:
		side, a, b = types.Top, p.X, -p.Z
	case math.Abs(p.Y+1) < eps:
		side, a, b = types.Bottom, p.X, p.Z
	case math.Abs(p.X-1) < eps:
		side, a, b = types.Right, p.Z, -p.Y
	case math.Abs(p.X+1) < eps:
		side, a, b = types.Left, -p.Z, -p.Y
	case math.Abs(p.Z+1) < eps:
		side, a, b = types.Front, p.X, -p.Y
	case math.Abs(p.Z-1) < eps:
		side, a, b = types.Back, -p.X, -p.Y
	default:
		return sticker{}, false
	}
	return sticker{
		side: side,
		row:  int(math.Round(b/third)) + 1,
		col:  int(math.Round(a/third)) + 1,
	}, true
}

func scrambled(t *testing.T) *grid.Grid {
	t.Helper()
	g := grid.New()
	for _, s := range []string{"R", "U'", "F2", "L", "D", "B'", "M", "E2", "S'", "R2", "U"} {
		m, err := types.ParseMove(s)
		if err != nil {
			t.Fatal(err)
		}
		g.Apply(m)
	}
	return g
}

// surface collects every colored sticker of the slices, mapped back to the
// un-rotated frame with undo.
func surface(t *testing.T, slices [3]*CubeSlice, undo func(geometry.Point3D) geometry.Point3D) map[sticker]types.Color {
	t.Helper()
	seen := make(map[sticker]types.Color)
	add := func(p geometry.Point3D, c types.Color) {
		p = undo(p)
		st, ok := stickerAt(p)
		if c == types.Neutral {
			if ok {
				t.Errorf("neutral sticker on the surface at %v", st)
			}
			return
		}
		if !ok {
			t.Errorf("%v sticker inside the solid at %+v", c, p)
			return
		}
		if _, dup := seen[st]; dup {
			t.Errorf("two stickers at %v", st)
		}
		seen[st] = c
	}

	for _, s := range slices {
		for _, face := range s.Caps {
			for r := 0; r < 3; r++ {
				for c := 0; c < 3; c++ {
					add(face.StickerCenter(r, c), face.Colors[r][c])
				}
			}
		}
		for _, fs := range s.Strips {
			for i := 0; i < 3; i++ {
				add(fs.StickerCenter(i), fs.Colors[i])
			}
		}
	}
	return seen
}

func compareSurface(t *testing.T, label string, seen map[sticker]types.Color, g *grid.Grid) {
	t.Helper()
	if len(seen) != 54 {
		t.Errorf("%s: %d stickers on the surface, want 54", label, len(seen))
	}
	for _, side := range types.FaceSides {
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				want, _ := g.Sticker(side, r, c)
				if got := seen[sticker{side, r, c}]; got != want {
					t.Errorf("%s: %v[%d][%d] = %v, want %v", label, side, r, c, got, want)
				}
			}
		}
	}
}

func identity(p geometry.Point3D) geometry.Point3D { return p }

func TestFaceStickersMatchLayout(t *testing.T) {
	c := New(geometry.Point3D{})
	for _, side := range types.FaceSides {
		f, err := c.Face(side)
		if err != nil {
			t.Fatal(err)
		}
		for r := 0; r < 3; r++ {
			for col := 0; col < 3; col++ {
				st, ok := stickerAt(f.StickerCenter(r, col))
				if !ok || st != (sticker{side, r, col}) {
					t.Errorf("%v[%d][%d] sits at %v", side, r, col, st)
				}
			}
		}
	}
}

func TestSideMapIdentity(t *testing.T) {
	c := New(geometry.Point3D{Z: 5})
	for i, side := range c.SideMap() {
		if side != types.FaceSides[i] {
			t.Errorf("side map[%v] = %v", types.FaceSides[i], side)
		}
	}
}

func TestSideMapQuarterTurnY(t *testing.T) {
	c := New(geometry.Point3D{Z: 5})
	c.RotateY(math.Pi / 2)

	want := map[types.Side]types.Side{
		types.Top:    types.Top,
		types.Bottom: types.Bottom,
		types.Left:   types.Front,
		types.Front:  types.Right,
		types.Right:  types.Back,
		types.Back:   types.Left,
	}
	for view, canonical := range want {
		if got := c.Resolve(view); got != canonical {
			t.Errorf("Resolve(%v) = %v, want %v", view, got, canonical)
		}
	}
}

func TestSideMapIsBijection(t *testing.T) {
	c := New(geometry.Point3D{Z: 5})
	for i := 0; i < 200; i++ {
		// Includes exact diagonals where faces tie.
		c.RotateX(math.Pi / 8)
		if i%3 == 0 {
			c.RotateY(math.Pi / 4)
		}
		if i%7 == 0 {
			c.RotateZ(math.Pi / 4)
		}

		m := c.SideMap()
		var seen [6]bool
		for ref, side := range m {
			idx, err := side.Index()
			if err != nil {
				t.Fatalf("step %d: %v", i, err)
			}
			if seen[idx] {
				t.Fatalf("step %d: %v mapped twice in %v", i, side, m)
			}
			seen[idx] = true
			if opp := m[types.FaceSides[ref].Opposite().MustIndex()]; opp != side.Opposite() {
				t.Fatalf("step %d: opposite sides do not map to opposites in %v", i, m)
			}
		}
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		rotate func(c *Cube)
		in     string
		want   string
	}{
		{"identity face", func(*Cube) {}, "R'", "R'"},
		{"identity middle", func(*Cube) {}, "M", "M"},
		{"y quarter face", func(c *Cube) { c.RotateY(math.Pi / 2) }, "F", "R"},
		{"y quarter middle", func(c *Cube) { c.RotateY(math.Pi / 2) }, "S", "M'"},
		{"y quarter double", func(c *Cube) { c.RotateY(math.Pi / 2) }, "S2", "M2"},
		{"y half middle", func(c *Cube) { c.RotateY(math.Pi) }, "M", "M'"},
		{"z quarter middle", func(c *Cube) { c.RotateZ(math.Pi / 2) }, "M", "E'"},
		{"z quarter face", func(c *Cube) { c.RotateZ(math.Pi / 2) }, "R", "D"},
		{"x quarter middle", func(c *Cube) { c.RotateX(math.Pi / 2) }, "E", "S'"},
	}

	for _, tt := range tests {
		c := New(geometry.Point3D{Z: 5})
		tt.rotate(c)
		m, err := types.ParseMove(tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if got := c.Translate(m); got.Notation() != tt.want {
			t.Errorf("%s: Translate(%s) = %s, want %s", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestSlicesMatchGridAtRest(t *testing.T) {
	g := scrambled(t)
	c := New(geometry.Point3D{})
	c.ApplyGrid(g)

	for _, axis := range []types.Axis{types.AxisX, types.AxisY, types.AxisZ} {
		slices := BuildSlices(c, g, axis)
		compareSurface(t, "axis "+axis.String(), surface(t, slices, identity), g)
	}
}

func TestSliceTurnMatchesGridMove(t *testing.T) {
	for _, side := range types.Sides {
		for _, dir := range []types.Direction{types.Clockwise, types.CounterClockwise, types.Double} {
			m := types.NewMove(side, dir)
			g := scrambled(t)
			c := New(geometry.Point3D{})
			c.ApplyGrid(g)

			slices := BuildSlices(c, g, m.Axis())
			slices[m.Order().Index()].Rotate(m.Angle())
			g.Apply(m)

			compareSurface(t, m.String(), surface(t, slices, identity), g)
		}
	}
}

func TestSliceTurnOnRotatedSolid(t *testing.T) {
	position := geometry.Point3D{X: 0.5, Y: -0.25, Z: 6}
	q := geometry.Compose(geometry.RotationY(0.6), geometry.RotationX(-0.4))
	undo := func(p geometry.Point3D) geometry.Point3D {
		return geometry.Rotate(q.Conj(), p.Sub(position))
	}

	for _, s := range []string{"R", "E'", "B2", "S"} {
		m, err := types.ParseMove(s)
		if err != nil {
			t.Fatal(err)
		}
		g := scrambled(t)
		c := New(position)
		c.SetOrientation(q)
		c.ApplyGrid(g)

		slices := BuildSlices(c, g, m.Axis())
		slices[m.Order().Index()].Rotate(m.Angle())
		g.Apply(m)

		compareSurface(t, s, surface(t, slices, undo), g)
	}
}

func TestSliceRotationIsRigid(t *testing.T) {
	c := New(geometry.Point3D{Z: 5})
	c.RotateY(0.3)
	c.RotateX(0.2)
	g := scrambled(t)
	c.ApplyGrid(g)

	for _, axis := range []types.Axis{types.AxisX, types.AxisY, types.AxisZ} {
		for _, s := range BuildSlices(c, g, axis) {
			center := s.Caps[0].Center()
			before := s.Points()
			for _, angle := range []float64{0.1, -0.7, math.Pi / 3, 2.9} {
				s.Rotate(angle)
			}
			after := s.Points()
			for i := range before {
				d0 := before[i].Distance(center)
				d1 := after[i].Distance(s.Caps[0].Center())
				if math.Abs(d0-d1) > 1e-9 {
					t.Fatalf("axis %v: point %d moved from radius %v to %v", axis, i, d0, d1)
				}
				if j := (i + 7) % len(before); math.Abs(before[i].Distance(before[j])-after[i].Distance(after[j])) > 1e-9 {
					t.Fatalf("axis %v: distance %d-%d changed", axis, i, j)
				}
			}
			if math.Abs(s.Angle()-(0.1-0.7+math.Pi/3+2.9)) > 1e-12 {
				t.Errorf("Angle = %v", s.Angle())
			}
		}
	}
}

func TestSlicesShareEdges(t *testing.T) {
	c := New(geometry.Point3D{Z: 5})
	g := grid.New()
	slices := BuildSlices(c, g, types.AxisZ)
	for l := 0; l < 2; l++ {
		if slices[l].Caps[1].Corners != slices[l+1].Caps[0].Corners {
			t.Errorf("slice %d and %d do not share a cap", l, l+1)
		}
	}
}

func TestCubeRenderable(t *testing.T) {
	c := New(geometry.Point3D{Z: 5})
	c.ApplyGrid(grid.New())
	faces := c.DrawFaces()
	if len(faces) != 6 {
		t.Fatalf("DrawFaces returned %d faces", len(faces))
	}
	if math.Abs(c.Depth()-5) > 0.5 {
		t.Errorf("Depth = %v", c.Depth())
	}
	front, _ := c.Face(types.Front)
	back, _ := c.Face(types.Back)
	if front.Depth() >= back.Depth() {
		t.Error("front face should be nearer than the back face")
	}
	for _, d := range faces {
		if len(d.Markers) != 16 || len(d.Colors) != 9 {
			t.Errorf("face drawable has %d markers and %d colors", len(d.Markers), len(d.Colors))
		}
	}
}

func TestSliceTransformFollowsView(t *testing.T) {
	position := geometry.Point3D{Z: 5}
	g := scrambled(t)
	c := New(position)
	c.ApplyGrid(g)
	slices := BuildSlices(c, g, types.AxisY)

	q := geometry.RotationY(0.8)
	for _, s := range slices {
		s.Transform(position, q)
		if s.Angle() != 0 {
			t.Errorf("Transform changed Angle to %v", s.Angle())
		}
	}
	undo := func(p geometry.Point3D) geometry.Point3D {
		return geometry.Rotate(q.Conj(), p.Sub(position))
	}
	compareSurface(t, "transformed", surface(t, slices, undo), g)
}
