package cli

import (
	"strings"

	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// actionKind is what a key press does in the play view.
type actionKind int

const (
	actionNone actionKind = iota
	actionTurn
	actionDouble
	actionView
	actionSpin
	actionStopSpin
	actionScramble
	actionUndo
	actionReset
	actionQuit
)

// viewAxis names the axis a view key rotates about.
type viewAxis int

const (
	viewX viewAxis = iota
	viewY
	viewZ
)

// axis returns the puzzle axis a view key rotates about.
func (a viewAxis) axis() types.Axis {
	switch a {
	case viewY:
		return types.AxisY
	case viewZ:
		return types.AxisZ
	default:
		return types.AxisX
	}
}

// keyAction is a decoded key press.
type keyAction struct {
	kind actionKind
	move types.Move // actionTurn
	axis viewAxis   // actionView, actionSpin
	sign float64    // actionView, actionSpin: +1 or -1
}

// turnLetters are the move letters accepted from the keyboard. A lower
// case letter turns clockwise and its upper case form turns the other way.
const turnLetters = "rludfbmes"

// decodeKey maps a bubbletea key string to an action.
func decodeKey(key string) keyAction {
	switch key {
	case "ctrl+c", "esc", "q":
		return keyAction{kind: actionQuit}
	case "up":
		return keyAction{kind: actionView, axis: viewX, sign: 1}
	case "down":
		return keyAction{kind: actionView, axis: viewX, sign: -1}
	case "left":
		return keyAction{kind: actionView, axis: viewY, sign: 1}
	case "right":
		return keyAction{kind: actionView, axis: viewY, sign: -1}
	case ",":
		return keyAction{kind: actionView, axis: viewZ, sign: 1}
	case ".":
		return keyAction{kind: actionView, axis: viewZ, sign: -1}
	case "shift+up":
		return keyAction{kind: actionSpin, axis: viewX, sign: 1}
	case "shift+down":
		return keyAction{kind: actionSpin, axis: viewX, sign: -1}
	case "shift+left":
		return keyAction{kind: actionSpin, axis: viewY, sign: 1}
	case "shift+right":
		return keyAction{kind: actionSpin, axis: viewY, sign: -1}
	case "<":
		return keyAction{kind: actionSpin, axis: viewZ, sign: 1}
	case ">":
		return keyAction{kind: actionSpin, axis: viewZ, sign: -1}
	case "c":
		return keyAction{kind: actionStopSpin}
	case "2", " ":
		return keyAction{kind: actionDouble}
	case "x":
		return keyAction{kind: actionScramble}
	case "z":
		return keyAction{kind: actionUndo}
	case "0":
		return keyAction{kind: actionReset}
	}

	if len(key) != 1 {
		return keyAction{}
	}
	lower := strings.ToLower(key)
	if !strings.Contains(turnLetters, lower) {
		return keyAction{}
	}
	m, err := types.ParseMove(strings.ToUpper(lower))
	if err != nil {
		return keyAction{}
	}
	if key != lower {
		m.Direction = types.CounterClockwise
	}
	return keyAction{kind: actionTurn, move: m}
}

// keyHelp is the one-line key summary shown under the puzzle.
const keyHelp = "r l u d f b m e s: turn (shift: prime)  2: double  arrows , .: view  shift+arrows < >: spin  c: stop  x: scramble  z: undo  0: reset  q: quit"
