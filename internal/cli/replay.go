package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeterm/internal/grid"
	"github.com/SeamusWaldron/cubeterm/internal/notation"
	"github.com/SeamusWaldron/cubeterm/internal/recorder"
)

var replayCmd = &cobra.Command{
	Use:   "replay [solve-id]",
	Short: "Replay a stored solve",
	Long: `Replay a stored solve in the terminal. The puzzle starts from the
stored scramble and plays every recorded turn. The arrow keys still turn the
view; q quits.

Use --last to replay the most recent solve.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

var (
	replayLast  bool
	replaySpeed string
)

func init() {
	historyCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayLast, "last", false, "Replay the most recent solve")
	replayCmd.Flags().StringVar(&replaySpeed, "speed", "slow", "Animation speed: slow, normal or fast")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Animation.Speed = replaySpeed
	cfg.Animation.Steps = 0
	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := resolveSolveID(db, args, replayLast)
	if err != nil {
		return err
	}
	scramble, moves, err := recorder.NewSession(db, nil).Replay(id)
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		return fmt.Errorf("solve %s has no turns", id)
	}

	logger, closeLog, err := tuiLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	start := grid.New()
	start.ApplyAll(scramble)

	session := newGame(cfg, logger)
	session.Load(start)
	session.Timer().Arm()
	session.QueueCanonical(moves...)

	model := newPlayModel(cfg, session, nil, logger)
	model.input = inputReplay
	model.scramble = scramble
	model.title = fmt.Sprintf("cubeterm replay %s (%d turns)", id, len(moves))
	logger.Printf("replay %s: %s", id, notation.FormatSequence(moves))
	return runTUI(model)
}
