// Package recorder logs play sessions to storage as they happen.
package recorder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/SeamusWaldron/cubeterm/internal/config"
)

// stateFileName lives next to the config file.
const stateFileName = "state.json"

// AppState is what survives between runs: the solve that was recording
// when the program stopped and the smart cube used last.
type AppState struct {
	ActiveSolveID     string `json:"active_solve_id,omitempty"`
	LastDeviceAddress string `json:"last_device_address,omitempty"`
	LastDeviceName    string `json:"last_device_name,omitempty"`
}

// StateFile is an AppState persisted as JSON.
type StateFile struct {
	path  string
	state AppState
}

// NewStateFile opens the state at path. A missing file is an empty state.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return sf, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	if err := json.Unmarshal(data, &sf.state); err != nil {
		return nil, fmt.Errorf("state file %s: %w", path, err)
	}
	return sf, nil
}

// NewDefaultStateFile opens state.json in the cubeterm directory.
func NewDefaultStateFile() (*StateFile, error) {
	dir, err := config.DefaultDir()
	if err != nil {
		return nil, err
	}
	return NewStateFile(filepath.Join(dir, stateFileName))
}

// Path returns the file location.
func (sf *StateFile) Path() string { return sf.path }

// State returns a copy of the current state.
func (sf *StateFile) State() AppState { return sf.state }

// ActiveSolveID returns the solve that is recording, if any.
func (sf *StateFile) ActiveSolveID() string { return sf.state.ActiveSolveID }

// LastDeviceAddress returns the address of the last connected smart cube.
func (sf *StateFile) LastDeviceAddress() string { return sf.state.LastDeviceAddress }

// SetActiveSolve marks solveID as recording.
func (sf *StateFile) SetActiveSolve(solveID string) error {
	return sf.update(func(s *AppState) { s.ActiveSolveID = solveID })
}

// ClearActiveSolve forgets the recording solve.
func (sf *StateFile) ClearActiveSolve() error {
	return sf.update(func(s *AppState) { s.ActiveSolveID = "" })
}

// SetLastDevice remembers the last connected smart cube.
func (sf *StateFile) SetLastDevice(address, name string) error {
	return sf.update(func(s *AppState) {
		s.LastDeviceAddress = address
		s.LastDeviceName = name
	})
}

// update applies fn and writes the result. The in-memory state is left
// unchanged when the write fails.
func (sf *StateFile) update(fn func(*AppState)) error {
	next := sf.state
	fn(&next)
	if err := sf.write(next); err != nil {
		return err
	}
	sf.state = next
	return nil
}

// write replaces the file through a rename so a crash never leaves it
// half written.
func (sf *StateFile) write(s AppState) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	dir := filepath.Dir(sf.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, stateFileName+".*")
	if err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), sf.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
