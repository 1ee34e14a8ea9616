package cli

import (
	"bytes"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/SeamusWaldron/cubeterm/internal/config"
	"github.com/SeamusWaldron/cubeterm/internal/game"
	"github.com/SeamusWaldron/cubeterm/internal/notation"
	"github.com/SeamusWaldron/cubeterm/internal/recorder"
	"github.com/SeamusWaldron/cubeterm/internal/smartcube"
	"github.com/SeamusWaldron/cubeterm/internal/storage"
	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

func mustMove(t *testing.T, s string) types.Move {
	t.Helper()
	m, err := types.ParseMove(s)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		key  string
		want keyAction
	}{
		{"r", keyAction{kind: actionTurn, move: types.NewMove(types.Right, types.Clockwise)}},
		{"R", keyAction{kind: actionTurn, move: types.NewMove(types.Right, types.CounterClockwise)}},
		{"u", keyAction{kind: actionTurn, move: types.NewMove(types.Top, types.Clockwise)}},
		{"D", keyAction{kind: actionTurn, move: types.NewMove(types.Bottom, types.CounterClockwise)}},
		{"m", keyAction{kind: actionTurn, move: types.NewMove(types.MiddleX, types.Clockwise)}},
		{"E", keyAction{kind: actionTurn, move: types.NewMove(types.MiddleY, types.CounterClockwise)}},
		{"s", keyAction{kind: actionTurn, move: types.NewMove(types.MiddleZ, types.Clockwise)}},
		{"2", keyAction{kind: actionDouble}},
		{" ", keyAction{kind: actionDouble}},
		{"up", keyAction{kind: actionView, axis: viewX, sign: 1}},
		{"right", keyAction{kind: actionView, axis: viewY, sign: -1}},
		{",", keyAction{kind: actionView, axis: viewZ, sign: 1}},
		{"shift+left", keyAction{kind: actionSpin, axis: viewY, sign: 1}},
		{">", keyAction{kind: actionSpin, axis: viewZ, sign: -1}},
		{"c", keyAction{kind: actionStopSpin}},
		{"x", keyAction{kind: actionScramble}},
		{"z", keyAction{kind: actionUndo}},
		{"0", keyAction{kind: actionReset}},
		{"q", keyAction{kind: actionQuit}},
		{"ctrl+c", keyAction{kind: actionQuit}},
		{"k", keyAction{}},
		{"ctrl+r", keyAction{}},
		{"", keyAction{}},
	}

	for _, tt := range tests {
		got := decodeKey(tt.key)
		if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(keyAction{})); diff != "" {
			t.Errorf("decodeKey(%q) (-want +got):\n%s", tt.key, diff)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00.00"},
		{1234 * time.Millisecond, "0:01.23"},
		{75*time.Second + 500*time.Millisecond, "1:15.50"},
		{10 * time.Minute, "10:00.00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestRecentMoves(t *testing.T) {
	moves := []types.Move{mustMove(t, "R"), mustMove(t, "U"), mustMove(t, "F'")}
	if got := recentMoves(moves, 5); got != "R U F'" {
		t.Errorf("recentMoves = %q", got)
	}
	if got := recentMoves(moves, 2); got != "... U F'" {
		t.Errorf("recentMoves cut = %q", got)
	}
}

func TestPickDevice(t *testing.T) {
	results := []smartcube.ScanResult{
		{Name: "GoCube_A", Address: "aa"},
		{Name: "GoCube_B", Address: "bb"},
	}
	if got := pickDevice(results, "bb"); got.Name != "GoCube_B" {
		t.Errorf("known device not preferred: %v", got.Name)
	}
	if got := pickDevice(results, "cc"); got.Name != "GoCube_A" {
		t.Errorf("fallback = %v, want first", got.Name)
	}
}

type playFixture struct {
	db    *storage.DB
	state *recorder.StateFile
	model *playModel
}

func newPlayFixture(t *testing.T) *playFixture {
	t.Helper()
	dir := t.TempDir()
	db, err := storage.Open(filepath.Join(dir, "play.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	state, err := recorder.NewStateFile(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Scramble.Length = 6
	logger := verboseLogger(cfg, nil)
	session := newGame(cfg, logger,
		game.WithSteps(2),
		game.WithRand(rand.New(rand.NewPCG(1, 2))),
	)
	model := newPlayModel(cfg, session, recorder.NewSession(db, state), logger)
	return &playFixture{db: db, state: state, model: model}
}

func (f *playFixture) press(keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		f.model.Update(msg)
	}
}

// settle feeds frames until every queued turn is committed.
func (f *playFixture) settle(t *testing.T) {
	t.Helper()
	for i := 0; i < 1000 && !f.model.session.Idle(); i++ {
		f.model.Update(frameMsg(time.Now()))
	}
	if !f.model.session.Idle() {
		t.Fatal("session did not settle")
	}
}

func TestPlayModelTurnsRelativeToView(t *testing.T) {
	f := newPlayFixture(t)
	front := f.model.session.Cube().Resolve(types.Front)

	f.press("f", "2")
	f.settle(t)

	want := []types.Move{types.NewMove(front, types.Double)}
	if diff := cmp.Diff(want, f.model.session.History()); diff != "" {
		t.Errorf("history (-want +got):\n%s", diff)
	}

	f.press("z")
	f.settle(t)
	if !f.model.session.IsSolved() {
		t.Error("undo should restore the solved state")
	}

	// Four steps make a quarter turn of the view.
	f.press("left", "left", "left", "left")
	if f.model.session.Cube().Resolve(types.Front) == front {
		t.Error("a quarter view turn should change the side facing the camera")
	}
}

func TestPlayModelSpinsOnFrames(t *testing.T) {
	f := newPlayFixture(t)
	before := f.model.session.Cube().Orientation()

	f.model.Update(tea.KeyMsg{Type: tea.KeyShiftLeft})
	if !f.model.session.Spinning() {
		t.Fatal("shift+left should start a spin")
	}
	f.model.Update(frameMsg(time.Now()))
	if f.model.session.Cube().Orientation() == before {
		t.Error("a frame should turn a spinning view")
	}

	f.press("c")
	turned := f.model.session.Cube().Orientation()
	f.model.Update(frameMsg(time.Now()))
	if f.model.session.Spinning() || f.model.session.Cube().Orientation() != turned {
		t.Error("c should stop the spin")
	}
}

func TestPlayModelRecordsSolve(t *testing.T) {
	f := newPlayFixture(t)

	f.press("x")
	if len(f.model.scramble) != 6 {
		t.Fatalf("scramble has %d moves, want 6", len(f.model.scramble))
	}
	if f.model.rec.State() != recorder.StateRecording {
		t.Fatalf("recorder state = %v, want recording", f.model.rec.State())
	}
	solveID := f.model.rec.SolveID()
	if f.state.ActiveSolveID() != solveID {
		t.Error("active solve not saved to the state file")
	}

	solution := notation.Invert(f.model.scramble)
	f.model.session.QueueCanonical(solution...)
	f.settle(t)

	if !f.model.session.IsSolved() {
		t.Fatal("inverse scramble should solve")
	}
	if f.model.rec.State() != recorder.StateEnded {
		t.Errorf("recorder state = %v, want ended", f.model.rec.State())
	}

	solve, err := storage.NewSolveRepository(f.db).Get(solveID)
	if err != nil || solve == nil {
		t.Fatalf("Get: %v %v", solve, err)
	}
	if !solve.Solved || solve.EndedAt == nil {
		t.Errorf("stored solve = %+v, want solved and ended", solve)
	}
	if solve.ScrambleText == nil || *solve.ScrambleText != notation.FormatSequence(f.model.scramble) {
		t.Errorf("stored scramble = %v", solve.ScrambleText)
	}

	moves, err := storage.NewMoveRepository(f.db).GetBySolve(solveID)
	if err != nil {
		t.Fatal(err)
	}
	got, err := storage.ToMoves(moves)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(solution, got); diff != "" {
		t.Errorf("stored moves (-want +got):\n%s", diff)
	}

	orientations, err := storage.NewOrientationRepository(f.db).GetBySolve(solveID)
	if err != nil {
		t.Fatal(err)
	}
	if len(orientations) != 1 {
		t.Errorf("got %d orientation records, want 1", len(orientations))
	}
}

func TestPlayModelSmartCubeEvents(t *testing.T) {
	f := newPlayFixture(t)
	f.model.input = inputSmartCube

	// Keyboard turns are ignored while a cube drives the puzzle.
	f.press("r")
	if f.model.session.Pending() != 0 {
		t.Fatal("keyboard turn queued in smart cube mode")
	}

	f.model.Update(cubeEventMsg{event: smartcube.Event{
		Type:  smartcube.MsgTypeRotation,
		Moves: []types.Move{mustMove(t, "R"), mustMove(t, "U")},
	}})
	f.settle(t)

	f.press("x")
	if diff := cmp.Diff([]types.Move{mustMove(t, "R"), mustMove(t, "U")}, f.model.scramble); diff != "" {
		t.Errorf("hand scramble (-want +got):\n%s", diff)
	}
	if !f.model.session.Timer().Armed() {
		t.Error("timer should be armed after marking a scramble")
	}

	f.model.Update(cubeEventMsg{event: smartcube.Event{Type: smartcube.MsgTypeBattery, Battery: 77}})
	if f.model.battery != 77 {
		t.Errorf("battery = %d, want 77", f.model.battery)
	}
}

func TestPlayModelView(t *testing.T) {
	f := newPlayFixture(t)
	f.press("x")
	view := f.model.View()
	for _, want := range []string{"cubeterm", "Scramble:", "q: quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	f.press("q")
	if f.model.View() != "" {
		t.Error("view after quit should be empty")
	}
	if f.model.rec.State() != recorder.StateEnded {
		t.Error("quitting should close the open solve")
	}
}

func TestAbandonActive(t *testing.T) {
	f := newPlayFixture(t)
	f.press("x")
	id := f.model.rec.SolveID()

	// A new run finds the solve still marked active.
	rec := recorder.NewSession(f.db, f.state)
	if err := abandonActive(rec, f.state); err != nil {
		t.Fatal(err)
	}
	if f.state.ActiveSolveID() != "" {
		t.Error("active solve should be cleared")
	}
	solve, err := storage.NewSolveRepository(f.db).Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if solve.EndedAt == nil || solve.Solved {
		t.Errorf("abandoned solve = %+v", solve)
	}

	// A stale id only clears the state file.
	if err := f.state.SetActiveSolve("missing"); err != nil {
		t.Fatal(err)
	}
	if err := abandonActive(rec, f.state); err != nil {
		t.Fatal(err)
	}
	if f.state.ActiveSolveID() != "" {
		t.Error("stale active solve should be cleared")
	}
}

func TestPrintHistoryAndSolve(t *testing.T) {
	f := newPlayFixture(t)

	var buf bytes.Buffer
	if err := printHistory(&buf, f.db, 10); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No solves recorded") {
		t.Errorf("empty history = %q", buf.String())
	}

	f.press("x")
	id := f.model.rec.SolveID()
	f.model.session.QueueCanonical(notation.Invert(f.model.scramble)...)
	f.settle(t)

	buf.Reset()
	if err := printHistory(&buf, f.db, 10); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), id) || !strings.Contains(buf.String(), "solved") {
		t.Errorf("history = %q", buf.String())
	}

	buf.Reset()
	if err := printSolve(&buf, f.db, id); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Scramble: " + notation.FormatSequence(f.model.scramble), "Moves:    6", "Net:      6", "Orientation:"} {
		if !strings.Contains(out, want) {
			t.Errorf("solve details missing %q:\n%s", want, out)
		}
	}

	if err := printSolve(&buf, f.db, "nope"); err == nil {
		t.Error("printSolve of a missing id should fail")
	}
}

func TestPrintStats(t *testing.T) {
	dir := t.TempDir()
	db, err := storage.Open(filepath.Join(dir, "stats.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var buf bytes.Buffer
	if err := printStats(&buf, db, 10, 3); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No solves recorded") {
		t.Errorf("empty stats = %q", buf.String())
	}

	solves := storage.NewSolveRepository(db)
	moves := storage.NewMoveRepository(db)
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, d := range []time.Duration{12 * time.Second, 10 * time.Second, 11 * time.Second, 15 * time.Second, 9 * time.Second} {
		id, err := solves.CreateAt(start.Add(time.Duration(i)*time.Minute), "R U", storage.SourceKeyboard, "")
		if err != nil {
			t.Fatal(err)
		}
		for j, m := range []string{"R", "U", "R'", "U'"} {
			if _, err := moves.Create(id, j, int64(j*500), mustMove(t, m)); err != nil {
				t.Fatal(err)
			}
		}
		if err := solves.End(id, true, d); err != nil {
			t.Fatal(err)
		}
	}

	buf.Reset()
	if err := printStats(&buf, db, 10, 3); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Solves:      5 (5 solved)", "Best:        0:09.00", "Ao5:", "0:11.00", "Repeated sequences:", "R U R'"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}
}

func TestApplyCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"apply", "R", "U", "U'", "R'"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Solved: yes") {
		t.Errorf("apply output:\n%s", out)
	}
	if !strings.Contains(out, "      W W W") {
		t.Errorf("apply output has no net:\n%s", out)
	}

	rootCmd.SetArgs([]string{"apply", "R", "Q"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("apply with a bad move should fail")
	}
}

func TestScrambleCommandIsSeeded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	run := func() string {
		var buf bytes.Buffer
		rootCmd.SetOut(&buf)
		rootCmd.SetArgs([]string{"scramble", "-n", "8", "--seed", "42"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatal(err)
		}
		return strings.TrimSpace(buf.String())
	}

	first := run()
	if first != run() {
		t.Error("the same seed should give the same scramble")
	}
	moves, err := notation.ParseSequence(first)
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 8 {
		t.Errorf("got %d moves, want 8", len(moves))
	}
}

func TestRenderCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"render", "--moves", "R U"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	cfg := config.Default()
	if len(lines) != cfg.Screen.Height {
		t.Fatalf("got %d lines, want %d", len(lines), cfg.Screen.Height)
	}
	if len(lines[0]) != cfg.Screen.Width {
		t.Errorf("line width %d, want %d", len(lines[0]), cfg.Screen.Width)
	}
	if !strings.ContainsAny(buf.String(), "WOGRBY") {
		t.Error("render drew no stickers")
	}
}
