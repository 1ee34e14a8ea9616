package game

import (
	"fmt"
	"math"
	"strings"
)

// Speed selects how fast turns animate and how fast the view spins while a
// continuous rotation is on.
type Speed int

const (
	SpeedSlow Speed = iota
	SpeedNormal
	SpeedFast
)

// ViewStep is the view rotation applied by a single key press.
const ViewStep = math.Pi / 8

// Steps returns the number of frames a turn takes.
func (s Speed) Steps() int {
	switch s {
	case SpeedSlow:
		return 32
	case SpeedFast:
		return 8
	default:
		return 16
	}
}

// RotationStep returns the per-frame view rotation for continuous spinning.
func (s Speed) RotationStep() float64 {
	switch s {
	case SpeedSlow:
		return math.Pi / 128
	case SpeedFast:
		return math.Pi / 32
	default:
		return math.Pi / 64
	}
}

func (s Speed) String() string {
	switch s {
	case SpeedSlow:
		return "slow"
	case SpeedNormal:
		return "normal"
	case SpeedFast:
		return "fast"
	default:
		return fmt.Sprintf("speed(%d)", int(s))
	}
}

// ParseSpeed parses "slow", "normal" or "fast".
func ParseSpeed(s string) (Speed, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slow":
		return SpeedSlow, nil
	case "normal", "":
		return SpeedNormal, nil
	case "fast":
		return SpeedFast, nil
	default:
		return SpeedNormal, fmt.Errorf("game: unknown speed %q", s)
	}
}
