package screen

// DefaultNear is the near plane used unless WithNear overrides it.
const DefaultNear = 0.1

// Option configures a Screen.
type Option func(*Screen)

// WithOffset places the projection center at column x, row y.
func WithOffset(x, y int) Option {
	return func(s *Screen) {
		s.offsetX = x
		s.offsetY = y
	}
}

// WithNear sets the near plane. Faces with any point at or in front of it
// are skipped.
func WithNear(z float64) Option {
	return func(s *Screen) {
		s.near = z
	}
}
