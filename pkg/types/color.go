// Package types contains the side, axis, colour and move vocabulary shared by
// the puzzle state engine, the geometry and the command line.
package types

// Color represents a sticker color.
// Neutral is the zero value and marks internal, non-sticker surfaces.
type Color byte

const (
	Neutral Color = iota // Inner faces of a turning slice
	White                // Top face when solved
	Orange               // Left face when solved
	Green                // Front face when solved
	Red                  // Right face when solved
	Blue                 // Back face when solved
	Yellow               // Bottom face when solved
)

// Colors lists the six sticker colors in face index order.
var Colors = [6]Color{White, Orange, Green, Red, Blue, Yellow}

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Orange:
		return "O"
	case Green:
		return "G"
	case Red:
		return "R"
	case Blue:
		return "B"
	case Yellow:
		return "Y"
	case Neutral:
		return "-"
	default:
		return "?"
	}
}

// Name returns the lower case color name.
func (c Color) Name() string {
	switch c {
	case White:
		return "white"
	case Orange:
		return "orange"
	case Green:
		return "green"
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Yellow:
		return "yellow"
	default:
		return "neutral"
	}
}

// ParseColor parses a color name as produced by Name.
func ParseColor(name string) (Color, bool) {
	for _, c := range Colors {
		if c.Name() == name {
			return c, true
		}
	}
	if name == "neutral" {
		return Neutral, true
	}
	return Neutral, false
}
