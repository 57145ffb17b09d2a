package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a runner variant",
	Long: `Start a run. Without a variant a menu lets you pick one and browse
recorded runs.

Controls:
  Up/W       - Jump (hold for a higher jump)
  Space/R    - Restart
  P          - Pause
  D          - Toggle debug overlay
  Esc/B      - Back to menu (paused or fallen)
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Variants:
  runner        - Segments picked uniformly at random
  runner_graph  - Segments follow the library's successor lists

Examples:
  runner play
  runner play runner --seed 7
  runner play runner_graph --levels ./segments.yaml
  runner play --config ./my-runner.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	if err := checkLevels(flagLevels); err != nil {
		return err
	}
	opts := sessionOptions()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database, runs will not be recorded", "error", err)
	} else {
		opts.Store = store
		defer store.Close()
	}

	restore, err := quietLogger()
	if err != nil {
		return err
	}
	defer restore()

	cfg := terminalConfig()

	if len(args) == 0 {
		return tui.RunSession(cfg, opts)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'runner list' to see available variants", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	final, err := tui.Run(game, cfg, opts)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	if id := final.RunID(); id != 0 {
		fmt.Printf("Run #%d saved: distance %d, %d ticks\n", id, final.State().Distance, len(final.Trace()))
	}
	return nil
}

// sessionOptions builds the TUI options shared by play and serve.
func sessionOptions() tui.Options {
	holdMs := config.DefaultRunnerConfig().View.HoldWindowMs
	if cfg, err := config.LoadRunner(flagConfig); err == nil {
		holdMs = cfg.View.HoldWindowMs
	} else {
		logger.Warn("using default hold window", "error", err)
	}

	return tui.Options{
		HoldWindowMs: holdMs,
		Levels:       flagLevels,
		ConfigPath:   flagConfig,
		Logger:       logger,
	}
}
