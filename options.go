package cubeterm

import "math/rand/v2"

// Option configures a Puzzle.
type Option func(*config)

type config struct {
	moveHistory bool
	rng         *rand.Rand
}

func defaultConfig() *config {
	return &config{
		moveHistory: true,
	}
}

// WithMoveHistory enables or disables move history tracking.
// When enabled (default), all moves are stored and accessible via Moves().
// Disable this for long sessions to reduce memory usage.
func WithMoveHistory(enabled bool) Option {
	return func(c *config) {
		c.moveHistory = enabled
	}
}

// WithRand sets the random source used by Scramble.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		c.rng = r
	}
}

// RenderOption configures Render.
type RenderOption func(*renderConfig)

type renderConfig struct {
	width, height int
	focal, scale  float64
	yaw, pitch    float64
}

func defaultRenderConfig() *renderConfig {
	return &renderConfig{
		width:  70,
		height: 45,
		focal:  6,
		scale:  10,
	}
}

// WithSize sets the picture size in cells.
func WithSize(width, height int) RenderOption {
	return func(c *renderConfig) {
		if width > 0 && height > 0 {
			c.width, c.height = width, height
		}
	}
}

// WithProjection sets the focal length and the cells per unit.
func WithProjection(focal, scale float64) RenderOption {
	return func(c *renderConfig) {
		if focal > 0 && scale > 0 {
			c.focal, c.scale = focal, scale
		}
	}
}

// WithYaw turns the view about the vertical axis, in radians.
func WithYaw(angle float64) RenderOption {
	return func(c *renderConfig) {
		c.yaw = angle
	}
}

// WithPitch turns the view about the horizontal axis, in radians.
func WithPitch(angle float64) RenderOption {
	return func(c *renderConfig) {
		c.pitch = angle
	}
}
