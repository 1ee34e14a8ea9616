package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeterm/internal/config"
	"github.com/SeamusWaldron/cubeterm/internal/game"
	"github.com/SeamusWaldron/cubeterm/internal/notation"
	"github.com/SeamusWaldron/cubeterm/internal/recorder"
	"github.com/SeamusWaldron/cubeterm/internal/screen"
	"github.com/SeamusWaldron/cubeterm/internal/smartcube"
	"github.com/SeamusWaldron/cubeterm/internal/storage"
	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start an interactive puzzle in the terminal.

Keyboard shortcuts:
  r l u d f b m e s   - Turn the layer facing that way (shift for prime)
  2 / space           - Make the last queued turn a half turn
  arrows , .          - Rotate the view
  shift+arrows < >    - Toggle a continuous spin of the view
  c                   - Stop spinning
  x                   - Scramble and start the timer
  z                   - Undo the last turn
  0                   - Reset to solved
  q/Esc               - Quit

Turns are named relative to the screen, so "f" always turns the layer
facing you. Scrambled solves are stored in the history database.`,
	RunE: runPlay,
}

var playSpeed string

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVar(&playSpeed, "speed", "", "Animation speed: slow, normal or fast")
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	solvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))
)

// Messages
type frameMsg time.Time

type cubeEventMsg struct {
	event smartcube.Event
}

type cubeErrorMsg struct {
	err error
}

// maxShownMoves bounds the move line under the puzzle.
const maxShownMoves = 24

// inputMode says where turns come from.
type inputMode int

const (
	inputKeyboard inputMode = iota
	inputSmartCube
	inputReplay
)

// playModel is the bubbletea model shared by play, connect and replay.
type playModel struct {
	cfg     config.Config
	session *game.Session
	logger  *log.Logger
	palette screen.Palette

	// Recording. rec is nil when no database is available.
	rec        *recorder.Session
	source     string
	deviceName string

	// Smart cube input. client is nil when playing from the keyboard.
	input   inputMode
	client  *smartcube.Client
	events  chan tea.Msg
	battery int

	title string

	scramble []types.Move
	err      error
	quitting bool
}

func newPlayModel(cfg config.Config, session *game.Session, rec *recorder.Session, logger *log.Logger) *playModel {
	m := &playModel{
		cfg:     cfg,
		session: session,
		logger:  logger,
		palette: screen.DefaultPalette,
		rec:     rec,
		source:  storage.SourceKeyboard,
		title:   "cubeterm",
		battery: -1,
	}
	session.SetMoveCallback(m.onMove)
	return m
}

// onMove runs after every committed turn.
func (m *playModel) onMove(mv types.Move) {
	if m.rec == nil || m.rec.State() != recorder.StateRecording {
		return
	}
	if err := m.rec.RecordMove(mv); err != nil {
		m.err = err
		return
	}
	if m.session.IsSolved() {
		m.endSolve(true)
	}
}

// recordOrientation stores the sides facing up and front when they change.
func (m *playModel) recordOrientation() {
	if m.rec == nil || m.rec.State() != recorder.StateRecording {
		return
	}
	c := m.session.Cube()
	if _, err := m.rec.RecordOrientation(c.Resolve(types.Top), c.Resolve(types.Front)); err != nil {
		m.err = err
	}
}

func (m *playModel) startSolve() {
	if m.rec != nil && m.rec.State() == recorder.StateRecording {
		m.endSolve(false)
	}
	if m.input == inputSmartCube {
		// The physical puzzle was scrambled by hand.
		m.scramble = m.session.MarkScrambled()
	} else {
		m.scramble = m.session.Scramble(m.cfg.Scramble.Length)
	}
	m.logger.Printf("scramble: %s", notation.FormatSequence(m.scramble))
	if m.rec == nil {
		return
	}
	if _, err := m.rec.Start(m.scramble, m.source, m.deviceName); err != nil {
		m.err = err
		return
	}
	m.recordOrientation()
}

func (m *playModel) endSolve(solved bool) {
	if m.rec == nil || m.rec.State() != recorder.StateRecording {
		return
	}
	if err := m.rec.End(solved, m.session.Timer().Elapsed()); err != nil {
		m.err = err
	}
}

func (m *playModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.frameCmd()}
	if m.events != nil {
		cmds = append(cmds, m.listenForEvents())
	}
	return tea.Batch(cmds...)
}

func (m *playModel) frameCmd() tea.Cmd {
	return tea.Tick(m.cfg.Animation.FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *playModel) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())

	case frameMsg:
		m.session.Step()
		if m.session.Spin() {
			m.recordOrientation()
		}
		return m, m.frameCmd()

	case cubeEventMsg:
		m.handleCubeEvent(msg.event)
		return m, m.listenForEvents()

	case cubeErrorMsg:
		m.err = msg.err
		return m, m.listenForEvents()
	}

	return m, nil
}

func (m *playModel) handleKey(key string) tea.Cmd {
	act := decodeKey(key)
	m.logger.Printf("key %q", key)

	switch act.kind {
	case actionQuit:
		m.quit()
		return tea.Quit

	case actionView:
		step := act.sign * m.cfg.View.Step
		switch act.axis {
		case viewX:
			m.session.RotateX(step)
		case viewY:
			m.session.RotateY(step)
		case viewZ:
			m.session.RotateZ(step)
		}
		m.recordOrientation()

	case actionSpin:
		m.session.ToggleSpin(act.axis.axis(), act.sign)

	case actionStopSpin:
		m.session.StopSpin()
	}

	switch m.input {
	case inputReplay:
		return nil
	case inputSmartCube:
		switch act.kind {
		case actionScramble:
			m.startSolve()
		case actionReset:
			if m.client != nil {
				if err := m.client.ResetSolved(); err != nil {
					m.err = err
				}
			}
			m.reset()
		}
		return nil
	}

	switch act.kind {
	case actionTurn:
		m.session.Queue(act.move)
	case actionDouble:
		m.session.DoubleLast()
	case actionScramble:
		m.startSolve()
	case actionUndo:
		m.session.Undo()
	case actionReset:
		m.reset()
		m.session.ResetView()
	}
	return nil
}

func (m *playModel) reset() {
	m.endSolve(false)
	m.scramble = nil
	m.session.Reset()
}

func (m *playModel) handleCubeEvent(ev smartcube.Event) {
	switch ev.Type {
	case smartcube.MsgTypeRotation:
		m.session.QueueCanonical(ev.Moves...)
	case smartcube.MsgTypeOrientation:
		m.session.Mirror(smartcube.ToWorld(ev.Orientation))
		m.recordOrientation()
	case smartcube.MsgTypeBattery:
		m.battery = ev.Battery
	case smartcube.MsgTypeCubeType:
		m.logger.Printf("cube type %s", ev.CubeType)
	}
}

func (m *playModel) quit() {
	m.quitting = true
	m.endSolve(false)
	if m.client != nil {
		m.client.Disconnect()
	}
}

func (m *playModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	if m.deviceName != "" {
		status := fmt.Sprintf("  %s", m.deviceName)
		if m.battery >= 0 {
			status += fmt.Sprintf(" (%d%%)", m.battery)
		}
		b.WriteString(statusStyle.Render(status))
	}
	b.WriteString("\n\n")

	b.WriteString(m.session.Frame().View(m.palette))
	b.WriteString("\n\n")

	timer := m.session.Timer()
	switch {
	case timer.Running():
		b.WriteString(timerStyle.Render(formatDuration(timer.Elapsed())))
	case timer.Elapsed() > 0:
		b.WriteString(solvedStyle.Render("Solved in " + formatDuration(timer.Elapsed())))
	case timer.Armed():
		b.WriteString(statusStyle.Render("Scrambled. The timer starts with the first turn."))
	case m.session.IsSolved():
		b.WriteString(statusStyle.Render("Solved"))
	}
	b.WriteString("\n")

	if len(m.scramble) > 0 {
		b.WriteString(statusStyle.Render("Scramble: " + notation.FormatSequence(m.scramble)))
		b.WriteString("\n")
	}
	b.WriteString(moveStyle.Render(recentMoves(m.session.History(), maxShownMoves)))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(keyHelp))
	return b.String()
}

// recentMoves formats the last n moves, with a leading ellipsis when some
// were cut.
func recentMoves(moves []types.Move, n int) string {
	if len(moves) <= n {
		return notation.FormatSequence(moves)
	}
	return "... " + notation.FormatSequence(moves[len(moves)-n:])
}

// formatDuration renders d as m:ss.cc.
func formatDuration(d time.Duration) string {
	cs := d.Milliseconds() / 10
	return fmt.Sprintf("%d:%02d.%02d", cs/6000, (cs/100)%60, cs%100)
}

// runTUI runs model on the alternate screen.
func runTUI(model *playModel) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// tuiLogger opens the debug log for a TUI command. The terminal belongs to
// the TUI, so verbose output goes to ~/.cubeterm/debug.log.
func tuiLogger(cfg config.Config) (*log.Logger, func(), error) {
	if !cfg.Verbose {
		return verboseLogger(cfg, nil), func() {}, nil
	}
	dir, err := config.DefaultDir()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := tea.LogToFile(filepath.Join(dir, "debug.log"), "cubeterm")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return verboseLogger(cfg, f), func() { f.Close() }, nil
}

// openRecorder opens the database and a recorder on it.
func openRecorder(cfg config.Config) (*recorder.Session, *recorder.StateFile, func(), error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("failed to load state: %w", err)
	}
	rec := recorder.NewSession(db, stateFile)
	if err := abandonActive(rec, stateFile); err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	return rec, stateFile, func() { db.Close() }, nil
}

// abandonActive closes a solve left open by a previous run as unsolved.
// The puzzle state it was played on is gone, so it cannot be continued.
func abandonActive(rec *recorder.Session, stateFile *recorder.StateFile) error {
	id := stateFile.ActiveSolveID()
	if id == "" {
		return nil
	}
	if err := rec.Resume(id); err != nil {
		// Missing or already ended: only the state file is stale.
		return stateFile.ClearActiveSolve()
	}
	return rec.End(false, 0)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if playSpeed != "" {
		cfg.Animation.Speed = playSpeed
		cfg.Animation.Steps = 0
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, closeLog, err := tuiLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	rec, _, closeDB, err := openRecorder(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	session := newGame(cfg, logger)
	return runTUI(newPlayModel(cfg, session, rec, logger))
}
