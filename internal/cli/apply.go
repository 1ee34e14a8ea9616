package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeterm/internal/grid"
	"github.com/SeamusWaldron/cubeterm/internal/notation"
)

var applyCmd = &cobra.Command{
	Use:   "apply [moves...]",
	Short: "Apply moves and print the sticker net",
	Long: `Apply a move sequence to a solved puzzle and print the unfolded net,
whether the result is solved, and, with --explain, what each move does.`,
	Example: `  cubeterm apply "R U R' U'"
  cubeterm apply R U2 F --explain`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

var (
	applyExplain  bool
	applySimplify bool
)

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolVarP(&applyExplain, "explain", "e", false, "Describe each move")
	applyCmd.Flags().BoolVar(&applySimplify, "simplify", false, "Merge consecutive turns of the same side first")
}

func runApply(cmd *cobra.Command, args []string) error {
	moves, err := notation.ParseSequence(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if applySimplify {
		moves = notation.Simplify(moves)
	}

	g := grid.New()
	g.ApplyAll(moves)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Moves: %s (%d)\n\n", notation.FormatSequence(moves), len(moves))
	fmt.Fprint(out, g.String())
	fmt.Fprintln(out)
	if g.IsSolved() {
		fmt.Fprintln(out, "Solved: yes")
	} else {
		fmt.Fprintln(out, "Solved: no")
	}

	if applyExplain {
		fmt.Fprintln(out)
		for i, m := range moves {
			fmt.Fprintf(out, "%3d. %-3s %s\n", i+1, m.Notation(), notation.Describe(m))
		}
	}
	return nil
}
