package recorder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/SeamusWaldron/cubeterm/internal/notation"
	"github.com/SeamusWaldron/cubeterm/internal/storage"
	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

type fixture struct {
	db    *storage.DB
	state *StateFile
	clock time.Time
}

func (f *fixture) now() time.Time { return f.clock }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	db, err := storage.Open(filepath.Join(dir, "rec.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	sf, err := NewStateFile(filepath.Join(dir, "state", "state.json"))
	if err != nil {
		t.Fatal(err)
	}
	return &fixture{db: db, state: sf, clock: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (f *fixture) session() *Session {
	s := NewSession(f.db, f.state)
	s.now = f.now
	return s
}

func seq(t *testing.T, s string) []types.Move {
	t.Helper()
	moves, err := notation.ParseSequence(s)
	if err != nil {
		t.Fatal(err)
	}
	return moves
}

func TestRecordSolve(t *testing.T) {
	f := newFixture(t)
	s := f.session()

	if err := s.RecordMove(seq(t, "R")[0]); !errors.Is(err, ErrNotRecording) {
		t.Errorf("RecordMove while idle = %v", err)
	}

	scramble := seq(t, "R U F2 D'")
	id, err := s.Start(scramble, storage.SourceKeyboard, "")
	if err != nil {
		t.Fatal(err)
	}
	if s.State() != StateRecording || f.state.ActiveSolveID() != id {
		t.Fatalf("after Start state=%v active=%q", s.State(), f.state.ActiveSolveID())
	}
	if _, err := s.Start(nil, "", ""); err == nil {
		t.Error("second Start should fail")
	}

	for i, m := range notation.Invert(scramble) {
		f.clock = f.clock.Add(time.Duration(i+1) * 100 * time.Millisecond)
		if err := s.RecordMove(m); err != nil {
			t.Fatal(err)
		}
	}
	if s.MoveCount() != 4 {
		t.Errorf("MoveCount() = %d", s.MoveCount())
	}
	if s.ElapsedMs() != 1000 {
		t.Errorf("ElapsedMs() = %d, want 1000", s.ElapsedMs())
	}

	if err := s.End(true, 0); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateEnded || f.state.ActiveSolveID() != "" {
		t.Errorf("after End state=%v active=%q", s.State(), f.state.ActiveSolveID())
	}

	solve, err := storage.NewSolveRepository(f.db).Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if !solve.Solved || *solve.DurationMs != 1000 || *solve.ScrambleText != "R U F2 D'" {
		t.Errorf("stored solve = %+v", solve)
	}

	gotScramble, gotMoves, err := s.Replay(id)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(scramble, gotScramble); diff != "" {
		t.Errorf("scramble (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(notation.Invert(scramble), gotMoves); diff != "" {
		t.Errorf("moves (-want +got):\n%s", diff)
	}
}

func TestRecordOrientationDeduplicates(t *testing.T) {
	f := newFixture(t)
	s := f.session()
	id, err := s.Start(nil, storage.SourceSmartCube, "GoCube_X")
	if err != nil {
		t.Fatal(err)
	}

	pairs := []struct {
		up, front types.Side
		written   bool
	}{
		{types.Top, types.Front, true},
		{types.Top, types.Front, false},
		{types.Right, types.Front, true},
		{types.Right, types.Front, false},
	}
	for _, p := range pairs {
		written, err := s.RecordOrientation(p.up, p.front)
		if err != nil {
			t.Fatal(err)
		}
		if written != p.written {
			t.Errorf("RecordOrientation(%v, %v) wrote=%v, want %v", p.up, p.front, written, p.written)
		}
	}

	records, err := storage.NewOrientationRepository(f.db).GetBySolve(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[1].UpSide != "R" {
		t.Errorf("records = %+v", records)
	}
}

func TestResume(t *testing.T) {
	f := newFixture(t)
	first := f.session()
	id, err := first.Start(nil, "", "")
	if err != nil {
		t.Fatal(err)
	}
	first.RecordMove(seq(t, "L")[0])
	first.RecordOrientation(types.Top, types.Front)

	// A new process picks the solve up from the state file.
	sf, err := NewStateFile(f.state.path)
	if err != nil {
		t.Fatal(err)
	}
	second := NewSession(f.db, sf)
	second.now = f.now
	if err := second.Resume(sf.ActiveSolveID()); err != nil {
		t.Fatal(err)
	}
	if second.SolveID() != id || second.MoveCount() != 1 {
		t.Errorf("resumed %q with %d moves", second.SolveID(), second.MoveCount())
	}
	if written, _ := second.RecordOrientation(types.Top, types.Front); written {
		t.Error("resumed session should remember the last orientation")
	}
	if err := second.RecordMove(seq(t, "L'")[0]); err != nil {
		t.Fatal(err)
	}
	second.End(true, 0)

	if err := f.session().Resume(id); err == nil {
		t.Error("resuming an ended solve should fail")
	}
	if err := f.session().Resume("missing"); err == nil {
		t.Error("resuming a missing solve should fail")
	}
}

func TestStateFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	sf, err := NewStateFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := sf.SetLastDevice("AA:BB", "GoCube_1"); err != nil {
		t.Fatal(err)
	}

	loaded, err := NewStateFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := AppState{LastDeviceAddress: "AA:BB", LastDeviceName: "GoCube_1"}
	if diff := cmp.Diff(want, loaded.State()); diff != "" {
		t.Errorf("state (-want +got):\n%s", diff)
	}
}

func TestStateFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	sf, err := NewStateFile(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := sf.SetActiveSolve("abc"); err != nil {
		t.Fatal(err)
	}
	if err := sf.ClearActiveSolve(); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "state.json" {
		t.Errorf("directory holds %v", entries)
	}
}

func TestStateFileRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStateFile(path); err == nil {
		t.Error("expected an error for a corrupt state file")
	}
}
