package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeterm/internal/config"
	"github.com/SeamusWaldron/cubeterm/internal/recorder"
	"github.com/SeamusWaldron/cubeterm/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and history status",
	Long:  `Display the effective configuration, the database, the last solve, any unfinished solve and the last connected smart cube.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return printStatus(cmd.OutOrStdout(), cfg, db, stateFile.State())
}

func printStatus(w io.Writer, cfg config.Config, db *storage.DB, state recorder.AppState) error {
	fmt.Fprintln(w, "cubeterm status")
	fmt.Fprintln(w, "===============")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Screen:   %dx%d cells\n", cfg.Screen.Width, cfg.Screen.Height)
	fmt.Fprintf(w, "Speed:    %s (%d frames per turn)\n", cfg.Animation.Speed, cfg.Steps())
	fmt.Fprintf(w, "Scramble: %d moves\n", cfg.Scramble.Length)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Database: %s\n", db.Path())
	repo := storage.NewSolveRepository(db)
	last, err := repo.GetLast()
	if err != nil {
		return err
	}
	if last != nil {
		fmt.Fprintf(w, "Last solve: %s (%s, %s)\n", last.StartedAt.Local().Format(time.RFC3339), solveResult(*last), solveDuration(*last))
	} else {
		fmt.Fprintln(w, "No solves recorded")
	}
	fmt.Fprintln(w)

	if state.ActiveSolveID != "" {
		fmt.Fprintf(w, "Unfinished solve: %s\n", state.ActiveSolveID)
		fmt.Fprintln(w, "  (It is closed as abandoned the next time you play)")
	} else {
		fmt.Fprintln(w, "No unfinished solve")
	}

	if state.LastDeviceAddress != "" {
		fmt.Fprintf(w, "Last device: %s (%s)\n", state.LastDeviceName, state.LastDeviceAddress)
	} else {
		fmt.Fprintln(w, "No device history")
	}
	return nil
}
