package notation

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

func TestParseSequence(t *testing.T) {
	moves, err := ParseSequence("R U R' U'  M2\tE S'")
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatSequence(moves); got != "R U R' U' M2 E S'" {
		t.Errorf("FormatSequence = %q", got)
	}
}

func TestParseSequenceRejectsBadToken(t *testing.T) {
	_, err := ParseSequence("R U X2 F")
	if !errors.Is(err, types.ErrInvalidNotation) {
		t.Fatalf("error = %v, want ErrInvalidNotation", err)
	}
}

func TestParseSequenceEmpty(t *testing.T) {
	moves, err := ParseSequence("   ")
	if err != nil || len(moves) != 0 {
		t.Errorf("ParseSequence(blank) = %v, %v", moves, err)
	}
	if FormatSequence(nil) != "" {
		t.Error("FormatSequence(nil) should be empty")
	}
}

func TestInvert(t *testing.T) {
	moves, _ := ParseSequence("R U2 F'")
	if got := FormatSequence(Invert(moves)); got != "F U2 R'" {
		t.Errorf("Invert = %q", got)
	}
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"R R", "R2"},
		{"R R R", "R'"},
		{"U U'", ""},
		{"R U U' R'", ""},
		{"R2 R", "R'"},
		{"M M M M", ""},
		{"R L R", "R L R"},
	}
	for _, tt := range tests {
		moves, err := ParseSequence(tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if got := FormatSequence(Simplify(moves)); got != tt.want {
			t.Errorf("Simplify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeTurn(t *testing.T) {
	tests := []struct {
		in   int
		want types.Direction
		ok   bool
	}{
		{-3, types.Clockwise, true},
		{-2, types.Double, true},
		{-1, types.CounterClockwise, true},
		{0, 0, false},
		{3, types.CounterClockwise, true},
		{4, 0, false},
	}
	for _, tt := range tests {
		got, ok := NormalizeTurn(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeTurn(%d) = %v, %v", tt.in, got, ok)
		}
	}
}

func TestDescribe(t *testing.T) {
	moves, _ := ParseSequence("R L' U2 M E' S")
	want := []string{"right up", "left up", "top turn left x 2", "middle down", "equator left", "standing clockwise"}
	got := make([]string, len(moves))
	for i, m := range moves {
		got[i] = Describe(m)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Describe mismatch (-want +got):\n%s", diff)
	}
	if DescribeSequence(moves[:2]) != "right up, left up" {
		t.Errorf("DescribeSequence = %q", DescribeSequence(moves[:2]))
	}
}

func TestScramble(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	moves := Scramble(rng, 25)
	if len(moves) != 25 {
		t.Fatalf("len = %d", len(moves))
	}
	for i, m := range moves {
		if m.Side.IsMiddle() {
			t.Errorf("move %d is a middle layer", i)
		}
		if i > 0 && moves[i-1].Axis() == m.Axis() {
			t.Errorf("moves %d and %d share axis %v", i-1, i, m.Axis())
		}
	}
	if got := Simplify(moves); len(got) != len(moves) {
		t.Errorf("scramble simplified from %d to %d moves", len(moves), len(got))
	}

	again := Scramble(rand.New(rand.NewPCG(1, 2)), 25)
	if diff := cmp.Diff(moves, again); diff != "" {
		t.Errorf("same seed gave different scrambles:\n%s", diff)
	}
}
