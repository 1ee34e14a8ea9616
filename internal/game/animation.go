package game

import (
	"github.com/westphae/quaternion"

	"github.com/SeamusWaldron/cubeterm/internal/cube"
	"github.com/SeamusWaldron/cubeterm/internal/geometry"
	"github.com/SeamusWaldron/cubeterm/internal/grid"
	"github.com/SeamusWaldron/cubeterm/internal/screen"
	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// Animation is a turn in progress. The solid is split into three slices
// along the move's axis and the turning one rotates a fixed angle per step.
type Animation struct {
	Move   types.Move
	slices [3]*cube.CubeSlice
	step   int
	steps  int
	delta  float64
}

func newAnimation(c *cube.Cube, g *grid.Grid, m types.Move, steps int) *Animation {
	if steps < 1 {
		steps = 1
	}
	return &Animation{
		Move:   m,
		slices: cube.BuildSlices(c, g, m.Axis()),
		steps:  steps,
		delta:  m.Angle() / float64(steps),
	}
}

// Advance rotates the turning slice by one step and reports whether the
// turn has reached its final angle.
func (a *Animation) Advance() bool {
	if a.step < a.steps {
		a.slices[a.Move.Order().Index()].Rotate(a.delta)
		a.step++
	}
	return a.Done()
}

// Done reports whether every step has been played.
func (a *Animation) Done() bool {
	return a.step >= a.steps
}

// Progress returns the completed fraction of the turn.
func (a *Animation) Progress() float64 {
	return float64(a.step) / float64(a.steps)
}

// Slices returns the three slices, first layer first.
func (a *Animation) Slices() [3]*cube.CubeSlice {
	return a.slices
}

// Transform carries all slices along with a view rotation about center.
func (a *Animation) Transform(center geometry.Point3D, q quaternion.Quaternion) {
	for _, s := range a.slices {
		s.Transform(center, q)
	}
}

func (a *Animation) renderables() []screen.Renderable {
	out := make([]screen.Renderable, len(a.slices))
	for i, s := range a.slices {
		out[i] = s
	}
	return out
}
