// runner is an endless runner that streams tile segments through the terminal.
//
// Usage:
//
//	runner play [variant]    - Play a variant, or pick one from the menu
//	runner list              - List available variants
//	runner levels            - Inspect the segment library
//	runner runs              - Browse recorded runs
//	runner replay <id>       - Replay a recorded run
//	runner serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible runs
//	--db <path>       - Set database path (default: ~/.runner/runs.db)
//	--levels <path>   - Segment library file or directory (default: embedded)
//	--config <path>   - Runner config YAML
//	--debug           - Verbose logging
//	--log-file <path> - Write logs to a file while the TUI is up
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/level"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLevels  string
	flagConfig  string
	flagDebug   bool
	flagLogFile string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "runner",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "TUI Runner - an endless runner in your terminal",
	Long: `TUI Runner streams hand-authored tile segments past a player who
keeps running faster. Hold jump for a higher leap and don't fall.

Available commands:
  play     - Play a variant (menu when none is given)
  list     - Show all variants
  levels   - Inspect and validate the segment library
  runs     - Browse recorded runs
  replay   - Replay a recorded run
  serve    - Start SSH server for remote play

Examples:
  runner play
  runner play runner_graph --seed 42
  runner levels --levels ./segments
  runner replay 3 --headless
  runner serve --ssh :2222`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.runner/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Segment library file or directory (empty = embedded)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to runner config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file used while the TUI owns the terminal")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup applies the global flags to the logger and the runner package.
func setup(_ *cobra.Command, _ []string) error {
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	runner.SetLevelsPath(flagLevels)
	runner.SetConfigPath(flagConfig)
	runner.SetLogger(logger)
	return nil
}

// checkLevels loads the segment library at path so a broken library stops
// the command before a run starts.
func checkLevels(path string) error {
	if _, err := level.Load(path); err != nil {
		logger.Error("invalid segment library", "path", path, "error", err)
		return err
	}
	return nil
}

// quietLogger redirects logging away from the terminal while a TUI runs.
// The returned function restores stderr output.
func quietLogger() (restore func(), err error) {
	if flagLogFile == "" {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }, nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		f.Close()
	}, nil
}

// terminalConfig builds a runtime config sized to the controlling terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
