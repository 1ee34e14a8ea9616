package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeterm/internal/notation"
	"github.com/SeamusWaldron/cubeterm/internal/screen"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print a single frame",
	Long: `Apply a move sequence to a solved puzzle and print one frame.

Moves are named by canonical side. The view can be turned with --yaw and
--pitch, in radians, on top of the default view. With --color the frame is
drawn with terminal colors; otherwise each cell is a color letter and '.'
is background.`,
	Example: `  cubeterm render --moves "R U R' U'"
  cubeterm render --yaw 0.4 --color`,
	RunE: runRender,
}

var (
	renderMoves string
	renderYaw   float64
	renderPitch float64
	renderColor bool
)

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderMoves, "moves", "m", "", "Move sequence to apply first")
	renderCmd.Flags().Float64Var(&renderYaw, "yaw", 0, "Extra rotation about the vertical axis")
	renderCmd.Flags().Float64Var(&renderPitch, "pitch", 0, "Extra rotation about the horizontal axis")
	renderCmd.Flags().BoolVar(&renderColor, "color", false, "Use terminal colors")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	moves, err := notation.ParseSequence(renderMoves)
	if err != nil {
		return err
	}

	logger := verboseLogger(cfg, cmd.ErrOrStderr())
	session := newGame(cfg, logger)
	session.QueueCanonical(moves...)
	session.Finish()
	if renderYaw != 0 {
		session.RotateY(renderYaw)
	}
	if renderPitch != 0 {
		session.RotateX(renderPitch)
	}

	frame := session.Frame()
	out := cmd.OutOrStdout()
	if renderColor {
		fmt.Fprintln(out, frame.View(screen.DefaultPalette))
		return nil
	}
	fmt.Fprint(out, frame.ASCII())
	return nil
}
