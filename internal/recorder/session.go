package recorder

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SeamusWaldron/cubeterm/internal/notation"
	"github.com/SeamusWaldron/cubeterm/internal/storage"
	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// ErrNotRecording is returned when a solve operation needs an active solve.
var ErrNotRecording = errors.New("recorder: no solve in progress")

// SessionState represents the current state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session records one solve at a time. It is safe for concurrent use so
// smart cube notifications can record from their own goroutine.
type Session struct {
	stateFile *StateFile
	now       func() time.Time

	mu        sync.RWMutex
	state     SessionState
	solveID   string
	startTime time.Time
	moveIndex int

	lastUp, lastFront types.Side
	hasOrientation    bool

	solveRepo       *storage.SolveRepository
	moveRepo        *storage.MoveRepository
	orientationRepo *storage.OrientationRepository
}

// NewSession creates a recorder writing to db. stateFile may be nil.
func NewSession(db *storage.DB, stateFile *StateFile) *Session {
	return &Session{
		stateFile:       stateFile,
		now:             time.Now,
		state:           StateIdle,
		solveRepo:       storage.NewSolveRepository(db),
		moveRepo:        storage.NewMoveRepository(db),
		orientationRepo: storage.NewOrientationRepository(db),
	}
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SolveID returns the current solve ID.
func (s *Session) SolveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.solveID
}

// MoveCount returns the number of turns recorded in the current solve.
func (s *Session) MoveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moveIndex
}

// ElapsedMs returns the time since the solve started in milliseconds.
func (s *Session) ElapsedMs() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateRecording {
		return 0
	}
	return s.now().Sub(s.startTime).Milliseconds()
}

// Start begins recording a new solve.
func (s *Session) Start(scramble []types.Move, source, deviceName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", fmt.Errorf("recorder: solve %s already in progress", s.solveID)
	}

	start := s.now()
	solveID, err := s.solveRepo.CreateAt(start, notation.FormatSequence(scramble), source, deviceName)
	if err != nil {
		return "", fmt.Errorf("failed to create solve: %w", err)
	}

	s.solveID = solveID
	s.startTime = start
	s.moveIndex = 0
	s.hasOrientation = false
	s.state = StateRecording

	if s.stateFile != nil {
		if err := s.stateFile.SetActiveSolve(solveID); err != nil {
			return solveID, fmt.Errorf("failed to save state: %w", err)
		}
	}

	return solveID, nil
}

// RecordMove stores a committed turn.
func (s *Session) RecordMove(m types.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}

	tsMs := s.now().Sub(s.startTime).Milliseconds()
	if _, err := s.moveRepo.Create(s.solveID, s.moveIndex, tsMs, m); err != nil {
		return fmt.Errorf("failed to store move: %w", err)
	}
	s.moveIndex++
	return nil
}

// RecordOrientation stores the sides facing up and front when they differ
// from the last stored pair. It reports whether a record was written.
func (s *Session) RecordOrientation(up, front types.Side) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return false, ErrNotRecording
	}
	if s.hasOrientation && up == s.lastUp && front == s.lastFront {
		return false, nil
	}

	tsMs := s.now().Sub(s.startTime).Milliseconds()
	if _, err := s.orientationRepo.Create(s.solveID, tsMs, up.Letter(), front.Letter()); err != nil {
		return false, fmt.Errorf("failed to store orientation: %w", err)
	}
	s.lastUp, s.lastFront = up, front
	s.hasOrientation = true
	return true, nil
}

// End finishes the current solve. A non-positive duration is measured from
// the start of the recording.
func (s *Session) End(solved bool, duration time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}

	if duration <= 0 {
		duration = s.now().Sub(s.startTime)
	}
	if err := s.solveRepo.End(s.solveID, solved, duration); err != nil {
		return fmt.Errorf("failed to end solve: %w", err)
	}

	s.state = StateEnded

	if s.stateFile != nil {
		if err := s.stateFile.ClearActiveSolve(); err != nil {
			return fmt.Errorf("failed to save state: %w", err)
		}
	}

	return nil
}

// Resume continues an interrupted solve.
func (s *Session) Resume(solveID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	solve, err := s.solveRepo.Get(solveID)
	if err != nil {
		return fmt.Errorf("failed to get solve: %w", err)
	}
	if solve == nil {
		return fmt.Errorf("solve not found: %s", solveID)
	}
	if solve.EndedAt != nil {
		return fmt.Errorf("solve %s already ended", solveID)
	}

	nextIndex, err := s.moveRepo.GetNextIndex(solveID)
	if err != nil {
		return fmt.Errorf("failed to get next move index: %w", err)
	}

	s.solveID = solveID
	s.startTime = solve.StartedAt
	s.moveIndex = nextIndex
	s.state = StateRecording
	s.hasOrientation = false

	last, err := s.orientationRepo.GetLast(solveID)
	if err == nil && last != nil {
		up, upErr := sideFromLetter(last.UpSide)
		front, frontErr := sideFromLetter(last.FrontSide)
		if upErr == nil && frontErr == nil {
			s.lastUp, s.lastFront = up, front
			s.hasOrientation = true
		}
	}

	return nil
}

// Replay returns the stored scramble and turns of a solve.
func (s *Session) Replay(solveID string) (scramble, moves []types.Move, err error) {
	solve, err := s.solveRepo.Get(solveID)
	if err != nil {
		return nil, nil, err
	}
	if solve == nil {
		return nil, nil, fmt.Errorf("solve not found: %s", solveID)
	}
	if solve.ScrambleText != nil {
		if scramble, err = notation.ParseSequence(*solve.ScrambleText); err != nil {
			return nil, nil, fmt.Errorf("stored scramble: %w", err)
		}
	}

	records, err := s.moveRepo.GetBySolve(solveID)
	if err != nil {
		return nil, nil, err
	}
	moves, err = storage.ToMoves(records)
	return scramble, moves, err
}

func sideFromLetter(letter string) (types.Side, error) {
	m, err := types.ParseMove(letter)
	if err != nil {
		return 0, err
	}
	return m.Side, nil
}
