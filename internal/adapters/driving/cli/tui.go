package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui"
	"github.com/custodia-labs/recetasu/internal/logger"
)

// tuiLogFile receives log output while the TUI owns the terminal.
const tuiLogFile = "recetasu-tui.log"

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for RecetasU.

Controls:
  ↑/k, ↓/j - Navigate recipes
  /        - Search by name or ingredient
  tab      - Cycle category filter
  n, e, d  - New, edit, delete recipe
  Enter    - Open recipe
  r        - Reload
  Esc      - Back
  ?        - Help
  ctrl+c   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if catalogService == nil || commentService == nil {
		return errors.New("catalog service not configured")
	}

	restore, err := redirectLogs()
	if err != nil {
		return err
	}
	defer restore()

	watchConfig(cmd.Context())

	ports := tui.NewPorts(catalogService, commentService)
	ports.Settings = settingsService

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// redirectLogs keeps log lines off the alternate screen. Verbose runs
// log to a file in the temp directory; otherwise logs are discarded.
func redirectLogs() (func(), error) {
	if !logger.IsVerbose() {
		prev := logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(prev) }, nil
	}

	path := filepath.Join(os.TempDir(), tuiLogFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open TUI log: %w", err)
	}
	prev := logger.SetOutput(f)
	fmt.Fprintf(os.Stderr, "Logging to %s\n", path)
	return func() {
		logger.SetOutput(prev)
		_ = f.Close()
	}, nil
}
