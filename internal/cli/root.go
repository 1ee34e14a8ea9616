// Package cli implements the command-line interface for cubeterm.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeterm/internal/config"
	"github.com/SeamusWaldron/cubeterm/internal/game"
	"github.com/SeamusWaldron/cubeterm/internal/screen"
	"github.com/SeamusWaldron/cubeterm/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubeterm",
	Short: "A 3x3x3 puzzle in the terminal",
	Long: `cubeterm - a 3x3x3 twisty puzzle rendered in the terminal.

Turn layers from the keyboard or mirror a GoCube smart cube over Bluetooth,
scramble and time solves, and keep a history of every session.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.cubeterm/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubeterm/cubeterm.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// loadConfig reads the configuration and applies the global flags on top.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// openDB opens the session database named by the configuration.
func openDB(cfg config.Config) (*storage.DB, error) {
	path, err := cfg.ResolveDBPath()
	if err != nil {
		return nil, err
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// newScreen builds the render target described by the configuration.
func newScreen(cfg config.Config) *screen.Screen {
	var opts []screen.Option
	if cfg.Screen.OffsetX != 0 || cfg.Screen.OffsetY != 0 {
		opts = append(opts, screen.WithOffset(cfg.Screen.OffsetX, cfg.Screen.OffsetY))
	}
	return screen.New(cfg.Screen.Width, cfg.Screen.Height, cfg.Screen.Focal, cfg.Screen.Scale, opts...)
}

// newGame builds a session from the configuration. Extra options are
// applied last.
func newGame(cfg config.Config, logger *log.Logger, opts ...game.Option) *game.Session {
	base := []game.Option{
		game.WithSpeed(cfg.Speed()),
		game.WithSteps(cfg.Steps()),
		game.WithDistance(cfg.View.Distance),
		game.WithLogger(logger),
	}
	return game.New(newScreen(cfg), append(base, opts...)...)
}

// verboseLogger writes to w when verbose output is on and discards
// otherwise.
func verboseLogger(cfg config.Config, w io.Writer) *log.Logger {
	if !cfg.Verbose {
		w = io.Discard
	}
	return log.New(w, "cubeterm: ", log.Ltime)
}
