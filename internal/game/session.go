// Package game drives an interactive puzzle session: it owns the sticker
// state, the solid and the screen, animates turns frame by frame and keeps
// the solve timer.
package game

import (
	"errors"
	"log"
	"math"
	"math/rand/v2"

	"github.com/westphae/quaternion"

	"github.com/SeamusWaldron/cubeterm/internal/cube"
	"github.com/SeamusWaldron/cubeterm/internal/geometry"
	"github.com/SeamusWaldron/cubeterm/internal/grid"
	"github.com/SeamusWaldron/cubeterm/internal/notation"
	"github.com/SeamusWaldron/cubeterm/internal/screen"
	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// ErrBusy is returned when a turn is started while another is animating.
var ErrBusy = errors.New("game: a turn is already animating")

// ErrNothingToUndo is returned when an undo starts with an empty history.
var ErrNothingToUndo = errors.New("game: nothing to undo")

// DefaultDistance is how far in front of the camera the solid sits.
const DefaultDistance = 5.0

// pending is a queued turn. Relative turns are named by camera direction
// and are translated when they start, so view changes made while waiting
// are honoured. An undo carries no move: it inverts the newest committed
// turn when it starts, and pops it from the history when it commits.
type pending struct {
	move     types.Move
	relative bool
	undo     bool
}

// Session is one interactive puzzle.
type Session struct {
	grid   *grid.Grid
	cube   *cube.Cube
	screen *screen.Screen

	position     geometry.Point3D
	viewX, viewY float64
	view         quaternion.Quaternion
	steps        int
	spinStep     float64
	spin         [3]float64 // per axis: -1, 0 or +1

	anim    *Animation
	current pending
	queue   []pending
	history []types.Move

	timer  *Timer
	rng    *rand.Rand
	logger *log.Logger
	onMove func(m types.Move)
}

// New creates a solved session rendering into scr.
func New(scr *screen.Screen, opts ...Option) *Session {
	g := &Session{
		grid:     grid.New(),
		screen:   scr,
		position: geometry.Point3D{Z: DefaultDistance},
		viewX:    -math.Pi / 4,
		viewY:    math.Pi / 4,
		steps:    SpeedNormal.Steps(),
		spinStep: SpeedNormal.RotationStep(),
		timer:    NewTimer(nil),
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:   discardLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.view = geometry.Compose(geometry.RotationY(g.viewY), geometry.RotationX(g.viewX))
	g.cube = cube.New(g.position)
	g.cube.SetOrientation(g.view)
	g.cube.ApplyGrid(g.grid)
	return g
}

// SetMoveCallback sets a callback fired after every committed turn with
// the turn in canonical sides.
func (g *Session) SetMoveCallback(cb func(m types.Move)) {
	g.onMove = cb
}

// Grid returns the sticker state.
func (g *Session) Grid() *grid.Grid { return g.grid }

// Cube returns the solid.
func (g *Session) Cube() *cube.Cube { return g.cube }

// Screen returns the render target.
func (g *Session) Screen() *screen.Screen { return g.screen }

// Timer returns the solve timer.
func (g *Session) Timer() *Timer { return g.timer }

// Animation returns the turn in progress, or nil.
func (g *Session) Animation() *Animation { return g.anim }

// Animating reports whether a turn is in progress.
func (g *Session) Animating() bool { return g.anim != nil }

// Pending returns the number of queued turns.
func (g *Session) Pending() int { return len(g.queue) }

// Idle reports whether nothing is animating or queued.
func (g *Session) Idle() bool { return g.anim == nil && len(g.queue) == 0 }

// History returns the committed turns in canonical sides.
func (g *Session) History() []types.Move {
	return append([]types.Move(nil), g.history...)
}

// IsSolved reports whether the sticker state is solved.
func (g *Session) IsSolved() bool { return g.grid.IsSolved() }

// SetSteps changes the number of frames per turn. It applies from the next
// turn on.
func (g *Session) SetSteps(n int) {
	if n > 0 {
		g.steps = n
	}
}

// Queue adds a turn named relative to the camera.
func (g *Session) Queue(moves ...types.Move) {
	for _, m := range moves {
		g.queue = append(g.queue, pending{move: m, relative: true})
	}
}

// QueueCanonical adds a turn already named by canonical side, such as one
// reported by a smart cube.
func (g *Session) QueueCanonical(moves ...types.Move) {
	for _, m := range moves {
		g.queue = append(g.queue, pending{move: m})
	}
}

// DoubleLast turns the most recently queued turn into a half turn. It
// reports false when nothing is waiting.
func (g *Session) DoubleLast() bool {
	if len(g.queue) == 0 {
		return false
	}
	last := &g.queue[len(g.queue)-1]
	if last.undo {
		return false
	}
	last.move.Direction = types.Double
	return true
}

// Undo takes back the newest turn. A turn still waiting in the queue is
// dropped; otherwise the inverse of the newest committed turn not already
// being undone is queued. It reports false when there is nothing to undo.
func (g *Session) Undo() bool {
	if n := len(g.queue); n > 0 && !g.queue[n-1].undo {
		g.queue = g.queue[:n-1]
		return true
	}
	if len(g.history) <= g.pendingUndos() {
		return false
	}
	g.queue = append(g.queue, pending{undo: true})
	return true
}

// pendingUndos counts undos queued or animating.
func (g *Session) pendingUndos() int {
	n := 0
	if g.anim != nil && g.current.undo {
		n++
	}
	for _, p := range g.queue {
		if p.undo {
			n++
		}
	}
	return n
}

// Begin starts animating m. A relative move is first translated to the
// canonical side currently facing that camera direction.
func (g *Session) Begin(m types.Move, relative bool) error {
	return g.begin(pending{move: m, relative: relative})
}

func (g *Session) begin(p pending) error {
	if g.anim != nil {
		return ErrBusy
	}
	m := p.move
	if p.undo {
		if len(g.history) == 0 {
			return ErrNothingToUndo
		}
		m = g.history[len(g.history)-1].Inverse()
	}
	if p.relative {
		m = g.cube.Translate(p.move)
		g.logger.Printf("translate %v -> %v", p.move, m)
	}
	p.move = m
	g.current = p
	g.anim = newAnimation(g.cube, g.grid, m, g.steps)
	return nil
}

// Step advances one frame. When idle the next queued turn is started. It
// reports whether anything changed.
func (g *Session) Step() bool {
	if g.anim == nil {
		if len(g.queue) == 0 {
			return false
		}
		next := g.queue[0]
		g.queue = g.queue[1:]
		if err := g.begin(next); err != nil {
			return false
		}
	}
	if g.anim.Advance() {
		g.Commit()
	}
	return true
}

// Commit finishes the turn in progress: the grid takes the move and the
// solid is rebuilt from it.
func (g *Session) Commit() {
	if g.anim == nil {
		return
	}
	m := g.anim.Move
	g.anim = nil

	g.grid.Apply(m)
	g.cube.ApplyGrid(g.grid)
	if g.current.undo {
		if n := len(g.history); n > 0 {
			g.history = g.history[:n-1]
		}
	} else {
		g.history = append(g.history, m)
	}
	g.logger.Printf("commit %v", m)

	g.timer.Start()
	if g.grid.IsSolved() {
		g.timer.Stop()
	}
	if g.onMove != nil {
		g.onMove(m)
	}
}

// Cancel drops the turn in progress without changing the grid or the
// history.
func (g *Session) Cancel() {
	g.anim = nil
	g.current = pending{}
}

// Finish plays every queued turn to the end without animating.
func (g *Session) Finish() {
	for !g.Idle() {
		if g.anim == nil {
			next := g.queue[0]
			g.queue = g.queue[1:]
			if err := g.begin(next); err != nil {
				continue
			}
		}
		g.Commit()
	}
}

// Rotate turns the view by q in world axes. A turn in progress moves with
// the solid.
func (g *Session) Rotate(q quaternion.Quaternion) {
	g.cube.Rotate(q)
	if g.anim != nil {
		g.anim.Transform(g.cube.Position(), q)
	}
}

// SetOrientation replaces the rotation of the solid. A turn in progress
// follows it.
func (g *Session) SetOrientation(q quaternion.Quaternion) {
	delta := quaternion.Prod(q.Unit(), g.cube.Orientation().Conj())
	g.Rotate(delta)
}

// Mirror sets the solid to q, a rotation of the physical puzzle in world
// axes, seen through the initial view tilt.
func (g *Session) Mirror(q quaternion.Quaternion) {
	g.SetOrientation(geometry.Compose(q, g.view))
}

// ResetView returns the solid to the initial view rotation.
func (g *Session) ResetView() {
	g.SetOrientation(g.view)
}

// RotateX turns the view about the horizontal axis.
func (g *Session) RotateX(angle float64) {
	g.Rotate(geometry.RotationX(angle))
}

// RotateY turns the view about the vertical axis.
func (g *Session) RotateY(angle float64) {
	g.Rotate(geometry.RotationY(angle))
}

// RotateZ turns the view about the optical axis.
func (g *Session) RotateZ(angle float64) {
	g.Rotate(geometry.RotationZ(angle))
}

// ToggleSpin starts a continuous view rotation about axis in the direction
// of sign, or stops it when that spin is already on.
func (g *Session) ToggleSpin(axis types.Axis, sign float64) {
	if axis < types.AxisX || axis > types.AxisZ {
		return
	}
	switch {
	case sign > 0:
		sign = 1
	case sign < 0:
		sign = -1
	}
	if g.spin[axis] == sign {
		sign = 0
	}
	g.spin[axis] = sign
}

// StopSpin stops every continuous rotation.
func (g *Session) StopSpin() {
	g.spin = [3]float64{}
}

// Spinning reports whether any continuous rotation is on.
func (g *Session) Spinning() bool {
	return g.spin != [3]float64{}
}

// Spin advances the continuous rotations by one frame. It reports whether
// the view moved.
func (g *Session) Spin() bool {
	if !g.Spinning() {
		return false
	}
	g.RotateX(g.spin[types.AxisX] * g.spinStep)
	g.RotateY(g.spin[types.AxisY] * g.spinStep)
	g.RotateZ(g.spin[types.AxisZ] * g.spinStep)
	return true
}

// Frame renders the current state and returns the screen.
func (g *Session) Frame() *screen.Screen {
	g.screen.Clear()
	if g.anim != nil {
		g.screen.Render(g.anim.renderables()...)
	} else {
		g.screen.Render(g.cube)
	}
	return g.screen
}

// Scramble applies n random turns at once, clears the history and arms the
// timer. It returns the scramble.
func (g *Session) Scramble(n int) []types.Move {
	if n <= 0 {
		n = notation.DefaultScrambleLength
	}
	g.anim = nil
	g.queue = nil
	g.history = nil

	moves := notation.Scramble(g.rng, n)
	g.grid.ApplyAll(moves)
	g.cube.ApplyGrid(g.grid)
	g.timer.Arm()
	g.logger.Printf("scramble %s", notation.FormatSequence(moves))
	return moves
}

// MarkScrambled treats the current state as a scramble made elsewhere, such
// as by hand on a smart cube. It returns the turns committed since the last
// reset, clears them and arms the timer.
func (g *Session) MarkScrambled() []types.Move {
	moves := g.history
	g.history = nil
	g.timer.Arm()
	g.logger.Printf("scrambled by hand: %s", notation.FormatSequence(moves))
	return moves
}

// Reset returns to a solved puzzle and disarms the timer.
func (g *Session) Reset() {
	g.anim = nil
	g.queue = nil
	g.history = nil
	g.grid = grid.New()
	g.cube.ApplyGrid(g.grid)
	g.timer.Disarm()
	g.StopSpin()
}

// Load replaces the sticker state, for example with the state reported by a
// smart cube.
func (g *Session) Load(state *grid.Grid) {
	g.anim = nil
	g.queue = nil
	g.grid = state.Clone()
	g.cube.ApplyGrid(g.grid)
}
