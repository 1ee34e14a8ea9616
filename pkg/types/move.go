package types

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidNotation is wrapped by every move parse failure.
var ErrInvalidNotation = errors.New("types: invalid move notation")

// Direction represents the direction and magnitude of a turn.
type Direction int

const (
	Clockwise        Direction = 1  // Quarter turn, clockwise seen from outside the face
	CounterClockwise Direction = -1 // Quarter turn the other way
	Double           Direction = 2  // Half turn
)

// Inverse returns the direction that undoes d.
func (d Direction) Inverse() Direction {
	switch d {
	case Clockwise:
		return CounterClockwise
	case CounterClockwise:
		return Clockwise
	default:
		return d
	}
}

// Quarters returns the signed number of quarter turns.
func (d Direction) Quarters() int {
	return int(d)
}

// Suffix returns the notation suffix for the direction.
func (d Direction) Suffix() string {
	switch d {
	case CounterClockwise:
		return "'"
	case Double:
		return "2"
	default:
		return ""
	}
}

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	case Double:
		return "double"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Move is a single turn of one layer.
// Axis and layer order are always derived from the side.
type Move struct {
	Side      Side
	Direction Direction
}

// NewMove creates a move for side turning in direction.
func NewMove(side Side, direction Direction) Move {
	return Move{Side: side, Direction: direction}
}

// Axis returns the axis the move turns about.
func (m Move) Axis() Axis {
	return m.Side.Axis()
}

// Order returns the layer the move turns.
func (m Move) Order() Order {
	return m.Side.Order()
}

// Notation returns the standard notation string for this move.
// Examples: R, R', R2, M, E', S2
func (m Move) Notation() string {
	return m.Side.Letter() + m.Direction.Suffix()
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	return Move{Side: m.Side, Direction: m.Direction.Inverse()}
}

// Angle returns the total rotation in radians of the turning slice about the
// axis running from the first layer towards the last layer.
func (m Move) Angle() float64 {
	sign := 1.0
	if m.Side.Adjacent().Order() == First {
		sign = -1.0
	}
	switch m.Direction {
	case CounterClockwise:
		return -sign * math.Pi / 2
	case Double:
		return sign * math.Pi
	default:
		return sign * math.Pi / 2
	}
}

// ParseMove parses a single move token: one of R L U D F B M E S optionally
// followed by ' (counter-clockwise) or 2 (double).
func ParseMove(s string) (Move, error) {
	token := strings.TrimSpace(s)
	if token == "" {
		return Move{}, fmt.Errorf("%w: empty move", ErrInvalidNotation)
	}

	var side Side
	switch token[0] {
	case 'R':
		side = Right
	case 'L':
		side = Left
	case 'U':
		side = Top
	case 'D':
		side = Bottom
	case 'F':
		side = Front
	case 'B':
		side = Back
	case 'M':
		side = MiddleX
	case 'E':
		side = MiddleY
	case 'S':
		side = MiddleZ
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, token)
	}

	var direction Direction
	switch token[1:] {
	case "":
		direction = Clockwise
	case "'":
		direction = CounterClockwise
	case "2":
		direction = Double
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, token)
	}

	return NewMove(side, direction), nil
}
