package types

import (
	"errors"
	"fmt"
)

// ErrNoStoredFace is returned when a middle layer is used where a stored face
// is required. Middle layers turn but own no stickers of their own.
var ErrNoStoredFace = errors.New("types: middle layer has no stored face")

// Axis is one of the three turn axes.
type Axis int

const (
	AxisX Axis = iota // Left to right
	AxisY             // Top to bottom
	AxisZ             // Front to back
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Order is the position of a layer along its axis.
type Order int

const (
	First Order = iota
	Middle
	Last
)

// Index returns the slice index (0, 1, 2) of the layer along its axis.
func (o Order) Index() int {
	return int(o)
}

func (o Order) String() string {
	switch o {
	case First:
		return "first"
	case Middle:
		return "middle"
	case Last:
		return "last"
	default:
		return "?"
	}
}

// Side identifies a turnable layer: one of the six faces or one of the
// three middle layers.
type Side int

const (
	Top Side = iota
	Front
	Bottom
	Left
	Right
	Back
	MiddleX // M, turns like Left
	MiddleY // E, turns like Bottom
	MiddleZ // S, turns like Front
)

// FaceSides lists the face sides in stored face order.
var FaceSides = [6]Side{Top, Left, Front, Right, Back, Bottom}

// Sides lists every side, faces first.
var Sides = [9]Side{Top, Front, Bottom, Left, Right, Back, MiddleX, MiddleY, MiddleZ}

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Front:
		return "front"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	case Back:
		return "back"
	case MiddleX:
		return "middle-x"
	case MiddleY:
		return "middle-y"
	case MiddleZ:
		return "middle-z"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// Letter returns the notation letter for the side.
func (s Side) Letter() string {
	switch s {
	case Top:
		return "U"
	case Front:
		return "F"
	case Bottom:
		return "D"
	case Left:
		return "L"
	case Right:
		return "R"
	case Back:
		return "B"
	case MiddleX:
		return "M"
	case MiddleY:
		return "E"
	case MiddleZ:
		return "S"
	default:
		return "?"
	}
}

// Index returns the stored face index of a face side.
func (s Side) Index() (int, error) {
	switch s {
	case Top:
		return 0, nil
	case Left:
		return 1, nil
	case Front:
		return 2, nil
	case Right:
		return 3, nil
	case Back:
		return 4, nil
	case Bottom:
		return 5, nil
	case MiddleX, MiddleY, MiddleZ:
		return 0, fmt.Errorf("%w: %s", ErrNoStoredFace, s)
	default:
		return 0, fmt.Errorf("types: unknown side %d", int(s))
	}
}

// MustIndex is Index for callers that hold a face side by construction.
// It panics on a middle layer.
func (s Side) MustIndex() int {
	idx, err := s.Index()
	if err != nil {
		panic(err)
	}
	return idx
}

// SideFromIndex returns the face side stored at idx.
func SideFromIndex(idx int) (Side, error) {
	if idx < 0 || idx >= len(FaceSides) {
		return 0, fmt.Errorf("types: face index %d out of range", idx)
	}
	return FaceSides[idx], nil
}

// Axis returns the axis the side turns about.
func (s Side) Axis() Axis {
	switch s {
	case Left, Right, MiddleX:
		return AxisX
	case Top, Bottom, MiddleY:
		return AxisY
	default:
		return AxisZ
	}
}

// Order returns the layer position of the side along its axis.
func (s Side) Order() Order {
	switch s {
	case Top, Left, Front:
		return First
	case Right, Back, Bottom:
		return Last
	default:
		return Middle
	}
}

// IsMiddle reports whether s is a middle layer.
func (s Side) IsMiddle() bool {
	return s == MiddleX || s == MiddleY || s == MiddleZ
}

// Reversed reports whether the side enumerates its neighbour strips against
// its own clockwise sense, which flips the buffer rotation during a turn.
func (s Side) Reversed() bool {
	switch s {
	case Right, Back, Bottom, MiddleY:
		return true
	default:
		return false
	}
}

// Opposite returns the face on the other end of the axis.
// Middle layers are their own opposite.
func (s Side) Opposite() Side {
	switch s {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	case Front:
		return Back
	case Back:
		return Front
	default:
		return s
	}
}

// Adjacent returns the face whose turning sense a middle layer follows.
// Face sides return themselves.
func (s Side) Adjacent() Side {
	switch s {
	case MiddleX:
		return Left
	case MiddleY:
		return Bottom
	case MiddleZ:
		return Front
	default:
		return s
	}
}

// MiddleOf returns the middle layer turning about axis.
func MiddleOf(axis Axis) Side {
	switch axis {
	case AxisX:
		return MiddleX
	case AxisY:
		return MiddleY
	default:
		return MiddleZ
	}
}

// FaceOf returns the face side at the given order along axis.
func FaceOf(axis Axis, order Order) Side {
	switch {
	case order == Middle:
		return MiddleOf(axis)
	case axis == AxisX && order == First:
		return Left
	case axis == AxisX:
		return Right
	case axis == AxisY && order == First:
		return Top
	case axis == AxisY:
		return Bottom
	case order == First:
		return Front
	default:
		return Back
	}
}
