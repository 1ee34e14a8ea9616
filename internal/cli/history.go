package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeterm/internal/analysis"
	"github.com/SeamusWaldron/cubeterm/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored solves",
	Long:  `Display recent solves with their duration, turn count and source.`,
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [solve-id]",
	Short: "Show details of a solve",
	Long: `Display a stored solve: its scramble, timing, every turn and the
orientation changes. Use --last for the most recent solve.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <solve-id>",
	Short: "Delete a solve",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var (
	historyLimit int
	showLast     bool
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of solves to list")

	historyCmd.AddCommand(historyShowCmd)
	historyShowCmd.Flags().BoolVar(&showLast, "last", false, "Show the most recent solve")

	historyCmd.AddCommand(historyDeleteCmd)
}

// withDB runs fn on the configured database.
func withDB(fn func(db *storage.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func runHistory(cmd *cobra.Command, args []string) error {
	return withDB(func(db *storage.DB) error {
		return printHistory(cmd.OutOrStdout(), db, historyLimit)
	})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	return withDB(func(db *storage.DB) error {
		id, err := resolveSolveID(db, args, showLast)
		if err != nil {
			return err
		}
		return printSolve(cmd.OutOrStdout(), db, id)
	})
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	return withDB(func(db *storage.DB) error {
		repo := storage.NewSolveRepository(db)
		solve, err := repo.Get(args[0])
		if err != nil {
			return err
		}
		if solve == nil {
			return fmt.Errorf("solve not found: %s", args[0])
		}
		if err := repo.Delete(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted solve %s\n", args[0])
		return nil
	})
}

// resolveSolveID picks the solve named in args, or the newest one when
// last is set.
func resolveSolveID(db *storage.DB, args []string, last bool) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if !last {
		return "", fmt.Errorf("specify a solve ID or use --last")
	}
	solve, err := storage.NewSolveRepository(db).GetLast()
	if err != nil {
		return "", err
	}
	if solve == nil {
		return "", fmt.Errorf("no solves recorded")
	}
	return solve.SolveID, nil
}

func printHistory(w io.Writer, db *storage.DB, limit int) error {
	repo := storage.NewSolveRepository(db)
	solves, err := repo.List(limit)
	if err != nil {
		return err
	}
	if len(solves) == 0 {
		fmt.Fprintln(w, "No solves recorded")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tDURATION\tMOVES\tSOURCE\tRESULT")
	for _, s := range solves {
		count, err := repo.GetMoveCount(s.SolveID)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			s.SolveID,
			s.StartedAt.Local().Format("2006-01-02 15:04"),
			solveDuration(s),
			count,
			s.Source,
			solveResult(s),
		)
	}
	return tw.Flush()
}

func printSolve(w io.Writer, db *storage.DB, solveID string) error {
	solve, err := storage.NewSolveRepository(db).Get(solveID)
	if err != nil {
		return err
	}
	if solve == nil {
		return fmt.Errorf("solve not found: %s", solveID)
	}

	moves, err := storage.NewMoveRepository(db).GetBySolve(solveID)
	if err != nil {
		return err
	}
	orientations, err := storage.NewOrientationRepository(db).GetBySolve(solveID)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Solve:    %s\n", solve.SolveID)
	fmt.Fprintf(w, "Started:  %s\n", solve.StartedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(w, "Source:   %s", solve.Source)
	if solve.DeviceName != nil {
		fmt.Fprintf(w, " (%s)", *solve.DeviceName)
	}
	fmt.Fprintln(w)
	if solve.ScrambleText != nil {
		fmt.Fprintf(w, "Scramble: %s\n", *solve.ScrambleText)
	}
	fmt.Fprintf(w, "Duration: %s\n", solveDuration(*solve))
	fmt.Fprintf(w, "Result:   %s\n", solveResult(*solve))
	fmt.Fprintf(w, "Moves:    %d", len(moves))
	timed, err := analysis.FromRecords(moves)
	if err != nil {
		return err
	}
	var durationMs int64
	if solve.DurationMs != nil {
		durationMs = *solve.DurationMs
	}
	summary := analysis.Summarize(timed, durationMs, analysis.DefaultPauseThresholdMs)
	if summary.TPS > 0 {
		fmt.Fprintf(w, " (%.2f TPS)", summary.TPS)
	}
	fmt.Fprintln(w)
	if len(moves) > 0 {
		fmt.Fprintf(w, "Net:      %d after merging (%.0f%%)\n", summary.SimplifiedMoves, summary.Efficiency*100)
		fmt.Fprintf(w, "Undone:   %d turns reversed straight away\n", summary.Reversals)
		fmt.Fprintf(w, "Pauses:   %d over %s, longest %s\n",
			len(summary.Pauses),
			formatDuration(analysis.DefaultPauseThresholdMs*time.Millisecond),
			formatDuration(time.Duration(summary.LongestPauseMs)*time.Millisecond))
	}

	if len(moves) > 0 {
		fmt.Fprintln(w)
		for _, m := range moves {
			fmt.Fprintf(w, "  %4d  %8s  %s\n", m.MoveIndex+1, formatDuration(time.Duration(m.TsMs)*time.Millisecond), m.Notation)
		}
	}

	if len(orientations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Orientation:")
		for _, o := range orientations {
			fmt.Fprintf(w, "  %8s  up %s, front %s\n", formatDuration(time.Duration(o.TsMs)*time.Millisecond), o.UpSide, o.FrontSide)
		}
	}
	return nil
}

func solveDuration(s storage.Solve) string {
	if s.DurationMs == nil {
		return "-"
	}
	return formatDuration(time.Duration(*s.DurationMs) * time.Millisecond)
}

func solveResult(s storage.Solve) string {
	switch {
	case s.EndedAt == nil:
		return "in progress"
	case s.Solved:
		return "solved"
	default:
		return "abandoned"
	}
}
