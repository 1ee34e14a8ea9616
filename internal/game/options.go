package game

import (
	"io"
	"log"
	"math/rand/v2"
	"time"

	"github.com/SeamusWaldron/cubeterm/internal/geometry"
)

// Option configures a Session.
type Option func(*Session)

// WithSpeed sets the frames per turn and the continuous view rotation
// from a preset.
func WithSpeed(s Speed) Option {
	return func(g *Session) {
		g.steps = s.Steps()
		g.spinStep = s.RotationStep()
	}
}

// WithSteps sets the number of frames per turn directly.
func WithSteps(n int) Option {
	return func(g *Session) {
		if n > 0 {
			g.steps = n
		}
	}
}

// WithPosition places the center of the solid in camera space.
func WithPosition(p geometry.Point3D) Option {
	return func(g *Session) {
		g.position = p
	}
}

// WithDistance places the solid d units in front of the camera on the
// optical axis.
func WithDistance(d float64) Option {
	return func(g *Session) {
		if d > 0 {
			g.position = geometry.Point3D{Z: d}
		}
	}
}

// WithView sets the initial view rotation about the X and Y axes.
func WithView(x, y float64) Option {
	return func(g *Session) {
		g.viewX, g.viewY = x, y
	}
}

// WithLogger sets the logger for debug output. Logging is discarded by
// default.
func WithLogger(l *log.Logger) Option {
	return func(g *Session) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithClock replaces the clock used by the solve timer.
func WithClock(now func() time.Time) Option {
	return func(g *Session) {
		g.timer = NewTimer(now)
	}
}

// WithRand sets the random source used for scrambles.
func WithRand(r *rand.Rand) Option {
	return func(g *Session) {
		if r != nil {
			g.rng = r
		}
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
