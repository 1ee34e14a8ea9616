package smartcube

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/westphae/quaternion"

	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// RotationEvent is a single face turn reported by the cube.
type RotationEvent struct {
	FaceCode          byte // Raw face and direction code, 0x00-0x0B
	CenterOrientation byte
	Clockwise         bool
	Color             types.Color // Center color of the turned face
}

// OfflineStatsEvent holds the counters the cube keeps while disconnected.
type OfflineStatsEvent struct {
	Moves  int
	Time   int // seconds
	Solves int
}

// Face codes count colors in this order, two codes per color.
var codeColors = [6]types.Color{
	types.Blue,
	types.Green,
	types.White,
	types.Yellow,
	types.Red,
	types.Orange,
}

// DecodeRotation decodes a rotation payload made of
// [face_dir] [center_orientation] byte pairs.
func DecodeRotation(payload []byte) ([]RotationEvent, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("smartcube: rotation payload must have even length, got %d", len(payload))
	}

	events := make([]RotationEvent, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		faceCode := payload[i]
		colorIdx := int(faceCode / 2)
		if colorIdx >= len(codeColors) {
			return nil, fmt.Errorf("smartcube: unknown color index %d from face code 0x%02X", colorIdx, faceCode)
		}

		// Even codes turn clockwise.
		events = append(events, RotationEvent{
			FaceCode:          faceCode,
			CenterOrientation: payload[i+1],
			Clockwise:         faceCode%2 == 0,
			Color:             codeColors[colorIdx],
		})
	}

	return events, nil
}

// DecodeBattery decodes a battery payload into a percentage.
func DecodeBattery(payload []byte) (int, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("smartcube: battery payload too short")
	}
	return int(payload[0]), nil
}

// DecodeCubeType decodes a cube type payload.
func DecodeCubeType(payload []byte) (string, error) {
	if len(payload) < 1 {
		return "", fmt.Errorf("smartcube: cube type payload too short")
	}
	if payload[0] == 0x01 {
		return "edge", nil
	}
	return "standard", nil
}

// DecodeOrientation decodes an ASCII "x#y#z#w" payload into a unit
// quaternion in the cube's own frame.
func DecodeOrientation(payload []byte) (quaternion.Quaternion, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 4 {
		return quaternion.Quaternion{}, fmt.Errorf("smartcube: orientation payload must have 4 parts, got %d", len(parts))
	}

	var v [4]float64
	for i, name := range []string{"x", "y", "z", "w"} {
		f, err := strconv.ParseFloat(extractNumeric(parts[i]), 64)
		if err != nil {
			return quaternion.Quaternion{}, fmt.Errorf("smartcube: invalid %s value: %w", name, err)
		}
		v[i] = f
	}

	q := quaternion.Quaternion{W: v[3], X: v[0], Y: v[1], Z: v[2]}
	if q == (quaternion.Quaternion{}) {
		return quaternion.Quaternion{}, fmt.Errorf("smartcube: zero orientation quaternion")
	}
	return q.Unit(), nil
}

// extractNumeric returns the leading number of s, dropping any trailing
// checksum or line ending bytes.
func extractNumeric(s string) string {
	var b strings.Builder
	for i, r := range s {
		if (r == '-' && i == 0) || (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
			continue
		}
		break
	}
	return b.String()
}

// DecodeOfflineStats decodes a "moves#seconds#solves" payload.
func DecodeOfflineStats(payload []byte) (*OfflineStatsEvent, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 3 {
		return nil, fmt.Errorf("smartcube: offline stats payload must have 3 parts, got %d", len(parts))
	}

	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(extractNumeric(p))
		if err != nil {
			return nil, fmt.Errorf("smartcube: invalid offline stats field %d: %w", i, err)
		}
		v[i] = n
	}
	return &OfflineStatsEvent{Moves: v[0], Time: v[1], Solves: v[2]}, nil
}

// Event is a decoded message. Only the fields for Type are set.
type Event struct {
	Type        byte
	Moves       []types.Move
	Orientation quaternion.Quaternion
	Battery     int
	CubeType    string
	Stats       *OfflineStatsEvent
}

// Decode turns a framed message into an Event.
func Decode(msg *Message) (Event, error) {
	ev := Event{Type: msg.Type}
	var err error

	switch msg.Type {
	case MsgTypeRotation:
		var rotations []RotationEvent
		if rotations, err = DecodeRotation(msg.Payload); err == nil {
			ev.Moves = RotationsToMoves(rotations)
		}
	case MsgTypeOrientation:
		ev.Orientation, err = DecodeOrientation(msg.Payload)
	case MsgTypeBattery:
		ev.Battery, err = DecodeBattery(msg.Payload)
	case MsgTypeCubeType:
		ev.CubeType, err = DecodeCubeType(msg.Payload)
	case MsgTypeOfflineStats:
		ev.Stats, err = DecodeOfflineStats(msg.Payload)
	}

	return ev, err
}
