package cubeterm

import (
	"math/rand/v2"

	"github.com/SeamusWaldron/cubeterm/internal/game"
	"github.com/SeamusWaldron/cubeterm/internal/grid"
	"github.com/SeamusWaldron/cubeterm/internal/notation"
	"github.com/SeamusWaldron/cubeterm/internal/screen"
	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// Aliases for the puzzle vocabulary.
type (
	Move      = types.Move
	Side      = types.Side
	Color     = types.Color
	Direction = types.Direction
	Face      = grid.Face
)

// Sides of the puzzle.
const (
	Top     = types.Top
	Front   = types.Front
	Bottom  = types.Bottom
	Left    = types.Left
	Right   = types.Right
	Back    = types.Back
	MiddleX = types.MiddleX
	MiddleY = types.MiddleY
	MiddleZ = types.MiddleZ
)

// Puzzle is a 3x3x3 puzzle without animation or input handling.
// It is not safe for concurrent use.
type Puzzle struct {
	grid    *grid.Grid
	history []Move
	onMove  func(Move)
	cfg     *config
}

// NewPuzzle creates a solved puzzle: White on top, Green in front.
func NewPuzzle(opts ...Option) *Puzzle {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Puzzle{grid: grid.New(), cfg: cfg}
}

// ParseMove parses a single move such as "R", "U'" or "M2".
func ParseMove(s string) (Move, error) {
	return types.ParseMove(s)
}

// ParseMoves parses a whitespace separated move sequence.
func ParseMoves(s string) ([]Move, error) {
	return notation.ParseSequence(s)
}

// FormatMoves formats moves as a space separated string.
func FormatMoves(moves []Move) string {
	return notation.FormatSequence(moves)
}

// OnMove sets a callback fired after every applied move.
func (p *Puzzle) OnMove(cb func(Move)) {
	p.onMove = cb
}

// Apply applies moves in order.
func (p *Puzzle) Apply(moves ...Move) {
	for _, m := range moves {
		p.grid.Apply(m)
		if p.cfg.moveHistory {
			p.history = append(p.history, m)
		}
		if p.onMove != nil {
			p.onMove(m)
		}
	}
}

// ApplyNotation parses s and applies it. Nothing is applied when s does not
// parse.
func (p *Puzzle) ApplyNotation(s string) error {
	moves, err := notation.ParseSequence(s)
	if err != nil {
		return err
	}
	p.Apply(moves...)
	return nil
}

// Undo reverts the last move in the history. It reports false when the
// history is empty.
func (p *Puzzle) Undo() bool {
	if len(p.history) == 0 {
		return false
	}
	last := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	p.grid.Apply(last.Inverse())
	return true
}

// Scramble applies n random moves and returns them. Scramble moves are not
// added to the history.
func (p *Puzzle) Scramble(n int) []Move {
	if n <= 0 {
		n = notation.DefaultScrambleLength
	}
	moves := notation.Scramble(p.cfg.rng, n)
	p.grid.ApplyAll(moves)
	return moves
}

// Moves returns the applied moves.
func (p *Puzzle) Moves() []Move {
	return append([]Move(nil), p.history...)
}

// Reset returns to the solved state and clears the history.
func (p *Puzzle) Reset() {
	p.grid = grid.New()
	p.history = nil
}

// Clone returns an independent copy sharing no state. The copy keeps the
// history setting, draws scrambles from a freshly seeded source and has no
// move callback.
func (p *Puzzle) Clone() *Puzzle {
	cfg := *p.cfg
	cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	return &Puzzle{
		grid:    p.grid.Clone(),
		history: p.Moves(),
		cfg:     &cfg,
	}
}

// IsSolved reports whether every face shows its assigned color.
func (p *Puzzle) IsSolved() bool {
	return p.grid.IsSolved()
}

// Face returns the stickers of a face side, row by row from the top left as
// seen from outside.
func (p *Puzzle) Face(side Side) (Face, error) {
	return p.grid.Face(side)
}

// Sticker returns one sticker of a face side.
func (p *Puzzle) Sticker(side Side, row, col int) (Color, error) {
	return p.grid.Sticker(side, row, col)
}

// String renders the puzzle as an unfolded net.
func (p *Puzzle) String() string {
	return p.grid.String()
}

// Render draws the puzzle from the default three quarter view, one color
// letter per cell and '.' for background.
func (p *Puzzle) Render(opts ...RenderOption) string {
	rc := defaultRenderConfig()
	for _, opt := range opts {
		opt(rc)
	}

	s := game.New(screen.New(rc.width, rc.height, rc.focal, rc.scale))
	s.Load(p.grid)
	if rc.yaw != 0 {
		s.RotateY(rc.yaw)
	}
	if rc.pitch != 0 {
		s.RotateX(rc.pitch)
	}
	return s.Frame().ASCII()
}
