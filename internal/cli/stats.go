package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeterm/internal/analysis"
	"github.com/SeamusWaldron/cubeterm/internal/storage"
)

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics over recent solves",
	Long: `Summarize recent solves: best and worst times, rolling averages,
consistency and the turn sequences you repeat most often.`,
	Args: cobra.NoArgs,
	RunE: runHistoryStats,
}

var (
	statsLimit int
	statsTop   int
)

func init() {
	historyCmd.AddCommand(historyStatsCmd)
	historyStatsCmd.Flags().IntVarP(&statsLimit, "limit", "n", 100, "Number of recent solves to analyze")
	historyStatsCmd.Flags().IntVar(&statsTop, "top", 3, "Sequences to list per length")
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	return withDB(func(db *storage.DB) error {
		return printStats(cmd.OutOrStdout(), db, statsLimit, statsTop)
	})
}

func ms(v float64) string {
	return formatDuration(time.Duration(v * float64(time.Millisecond)))
}

func printStats(w io.Writer, db *storage.DB, limit, top int) error {
	solves, err := storage.NewSolveRepository(db).List(limit)
	if err != nil {
		return err
	}
	if len(solves) == 0 {
		fmt.Fprintln(w, "No solves recorded")
		return nil
	}

	moveRepo := storage.NewMoveRepository(db)
	data := make([]analysis.SolveData, 0, len(solves))
	var segments []analysis.Segment
	for _, s := range solves {
		records, err := moveRepo.GetBySolve(s.SolveID)
		if err != nil {
			return err
		}
		moves, err := analysis.FromRecords(records)
		if err != nil {
			return fmt.Errorf("solve %s: %w", s.SolveID, err)
		}
		d := analysis.SolveData{
			SolveID:   s.SolveID,
			StartedAt: s.StartedAt,
			MoveCount: len(moves),
			Solved:    s.Solved,
		}
		if s.DurationMs != nil {
			d.DurationMs = *s.DurationMs
		}
		data = append(data, d)
		segments = append(segments, analysis.Segment{SolveID: s.SolveID, Moves: moves})
	}

	r := analysis.AnalyzeTrends(data)
	fmt.Fprintf(w, "Solves:      %d (%d solved)\n", r.TotalSolves, r.CompletedSolves)
	if r.CompletedSolves > 0 {
		fmt.Fprintf(w, "Best:        %s (%d moves)\n", ms(float64(r.BestSolve.DurationMs)), r.BestSolve.MoveCount)
		fmt.Fprintf(w, "Worst:       %s\n", ms(float64(r.WorstSolve.DurationMs)))
		fmt.Fprintf(w, "Mean:        %s, %.1f moves, %.2f TPS\n", ms(r.AvgDurationMs), r.AvgMoves, r.AvgTPS)
		for _, n := range analysis.AverageWindows {
			if avg, ok := r.Averages[n]; ok {
				fmt.Fprintf(w, "%-13s%s\n", fmt.Sprintf("Ao%d:", n), ms(avg))
			}
		}
		fmt.Fprintf(w, "Consistency: %.0f/100\n", r.ConsistencyScore)
		if r.CompletedSolves >= 4 {
			fmt.Fprintf(w, "Improvement: %+.1f%%\n", r.ImprovementPct)
		}
	}

	report := analysis.MineNGrams(segments, 3, 6, top)
	if len(report.TopNGrams) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Repeated sequences:")
	for n := 3; n <= 6; n++ {
		for _, g := range report.TopNGrams[n] {
			fmt.Fprintf(w, "  %-20s x%d\n", g.Sequence, g.Count)
		}
	}
	return nil
}
