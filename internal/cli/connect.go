package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeterm/internal/smartcube"
	"github.com/SeamusWaldron/cubeterm/internal/storage"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Mirror a GoCube smart cube",
	Long: `Connect to a GoCube over Bluetooth and mirror it in the terminal.

Turns and the orientation of the physical cube drive the picture. The last
connected cube is preferred when several are found.

Keyboard shortcuts:
  x        - Mark the cube as scrambled and start the timer
  0        - Tell the cube it is solved
  arrows   - Rotate the view
  q/Esc    - Quit`,
	RunE: runConnect,
}

var (
	connectScan    time.Duration
	connectRetries int
)

func init() {
	rootCmd.AddCommand(connectCmd)
	connectCmd.Flags().DurationVar(&connectScan, "scan", 5*time.Second, "How long each scan listens for advertisements")
	connectCmd.Flags().IntVar(&connectRetries, "retries", 3, "Number of scans before giving up")
}

// eventBuffer bounds the notifications waiting for the TUI.
const eventBuffer = 100

// scanForCube scans up to attempts times and returns the first non-empty
// result set.
func scanForCube(client *smartcube.Client, timeout time.Duration, attempts int) ([]smartcube.ScanResult, error) {
	fmt.Println("Scanning for GoCube devices...")

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		results, err := client.Scan(ctx, timeout)
		cancel()

		if err != nil {
			lastErr = err
			fmt.Printf("Scan %d failed: %v\n", attempt, err)
			continue
		}
		if len(results) > 0 {
			return results, nil
		}
		if attempt < attempts {
			fmt.Printf("Scan %d: No devices found, retrying...\n", attempt)
		}
	}
	return nil, lastErr
}

// pickDevice prefers the last connected address and falls back to the
// first result.
func pickDevice(results []smartcube.ScanResult, lastAddress string) smartcube.ScanResult {
	if lastAddress != "" {
		for _, r := range results {
			if r.Address == lastAddress {
				return r
			}
		}
	}
	return results[0]
}

// forwardEvents sends client notifications to ch without blocking the BLE
// goroutine. Notifications are dropped while the channel is full.
func forwardEvents(client *smartcube.Client, ch chan tea.Msg) {
	client.SetEventCallback(func(ev smartcube.Event) {
		select {
		case ch <- cubeEventMsg{event: ev}:
		default:
		}
	})
	client.SetErrorCallback(func(err error) {
		select {
		case ch <- cubeErrorMsg{err: err}:
		default:
		}
	})
}

func runConnect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if connectRetries < 1 {
		connectRetries = 1
	}

	rec, stateFile, closeDB, err := openRecorder(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	client, err := smartcube.NewClient()
	if err != nil {
		return fmt.Errorf("BLE not available: %w", err)
	}

	results, err := scanForCube(client, connectScan, connectRetries)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	if len(results) == 0 {
		fmt.Println("No GoCube devices found")
		fmt.Println()
		fmt.Println("Tips:")
		fmt.Println("  - Ensure your GoCube is powered on")
		fmt.Println("  - Move the cube to wake it up")
		fmt.Println("  - Check that Bluetooth is enabled")
		return nil
	}

	target := pickDevice(results, stateFile.LastDeviceAddress())
	fmt.Printf("Connecting to %s (%s)...\n", target.Name, target.Address)

	events := make(chan tea.Msg, eventBuffer)
	forwardEvents(client, events)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := client.ConnectToResult(ctx, target); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer client.Disconnect()

	if err := stateFile.SetLastDevice(client.Address(), client.DeviceName()); err != nil {
		fmt.Printf("Warning: failed to save state: %v\n", err)
	}

	logger, closeLog, err := tuiLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	// Orientation is optional; without it the view stays where the keys put it.
	if err := client.EnableOrientation(); err != nil {
		logger.Printf("enable orientation: %v", err)
	}

	session := newGame(cfg, logger)
	model := newPlayModel(cfg, session, rec, logger)
	model.input = inputSmartCube
	model.client = client
	model.events = events
	model.source = storage.SourceSmartCube
	model.deviceName = client.DeviceName()
	model.battery = client.Battery()

	return runTUI(model)
}
