package screen

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// Palette maps sticker colors to terminal colors.
type Palette map[types.Color]lipgloss.Color

// DefaultPalette uses ANSI 256 colors.
var DefaultPalette = Palette{
	types.White:   lipgloss.Color("255"),
	types.Orange:  lipgloss.Color("208"),
	types.Green:   lipgloss.Color("34"),
	types.Red:     lipgloss.Color("160"),
	types.Blue:    lipgloss.Color("27"),
	types.Yellow:  lipgloss.Color("226"),
	types.Neutral: lipgloss.Color("236"),
}

const (
	block = "██"
	blank = "  "
)

// Lines renders the buffer as one styled string per row. Every cell is two
// characters wide so that cells look roughly square in a terminal.
func (s *Screen) Lines(p Palette) []string {
	styles := make(map[types.Color]lipgloss.Style, len(p))
	for c, tc := range p {
		styles[c] = lipgloss.NewStyle().Foreground(tc)
	}

	lines := make([]string, s.height)
	var sb strings.Builder
	for y := 0; y < s.height; y++ {
		sb.Reset()
		for x := 0; x < s.width; x++ {
			cell := s.cells[y*s.width+x]
			if !cell.Filled {
				sb.WriteString(blank)
				continue
			}
			style, ok := styles[cell.Color]
			if !ok {
				sb.WriteString(block)
				continue
			}
			sb.WriteString(style.Render(block))
		}
		lines[y] = sb.String()
	}
	return lines
}

// View joins Lines with newlines.
func (s *Screen) View(p Palette) string {
	return strings.Join(s.Lines(p), "\n")
}

// ASCII renders one color letter per cell and '.' for background.
func (s *Screen) ASCII() string {
	var sb strings.Builder
	sb.Grow((s.width + 1) * s.height)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			cell := s.cells[y*s.width+x]
			if cell.Filled {
				sb.WriteString(cell.Color.String())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
