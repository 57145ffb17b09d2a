package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagHeadless bool
	flagRender   bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Replay a recorded run",
	Long: `Play a recorded run back from its input trace. The run's seed, tick
rate and screen size are restored, so the replay matches the original.

With --headless the run is simulated without a terminal and the final
distance is compared with the recorded one.

Examples:
  runner replay 12
  runner replay 12 --headless
  runner replay 12 --headless --render`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Simulate without a terminal and verify the result")
	replayCmd.Flags().BoolVar(&flagRender, "render", false, "Print the last frame of a headless replay")
}

func runReplay(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	run, err := store.LoadRun(id)
	if errors.Is(err, storage.ErrRunNotFound) {
		return fmt.Errorf("run #%d does not exist, see 'runner runs'", id)
	}
	if err != nil {
		return err
	}

	if err := useRecordedResources(cmd, run); err != nil {
		return err
	}

	game, err := registry.Create(run.GameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	if flagHeadless {
		return printHeadless(game, run)
	}

	restore, err := quietLogger()
	if err != nil {
		return err
	}
	defer restore()

	_, err = tui.Run(game, terminalConfig(), tui.Options{Replay: run, Logger: logger})
	return err
}

// useRecordedResources points the runner at the level library and config a
// run was recorded with, unless they were overridden on the command line,
// and checks that the library still loads.
func useRecordedResources(cmd *cobra.Command, run *storage.Run) error {
	levels := flagLevels
	if !cmd.Flags().Changed("levels") {
		levels = run.Levels
		runner.SetLevelsPath(levels)
	}
	if !cmd.Flags().Changed("config") {
		runner.SetConfigPath(run.Config)
	}
	return checkLevels(levels)
}

// replayResult summarizes a headless replay.
type replayResult struct {
	State    core.GameState
	Ticks    int
	Restarts int
}

// replayHeadless steps game through every recorded frame of run.
func replayHeadless(game registry.Game, run *storage.Run) replayResult {
	game.Reset(core.RuntimeConfig{
		ScreenW:  run.ScreenW,
		ScreenH:  run.ScreenH,
		TickRate: run.TickRate,
		Seed:     run.Seed,
	})

	var res replayResult
	for _, mask := range run.Inputs {
		step := game.Step(core.FrameFromMask(mask))
		res.State = step.State
		res.Ticks++
		if step.Restarted {
			res.Restarts++
		}
	}
	return res
}

func printHeadless(game registry.Game, run *storage.Run) error {
	res := replayHeadless(game, run)

	if flagRender {
		screen := core.NewScreen(run.ScreenW, run.ScreenH)
		game.Render(screen)
		fmt.Println(screen.String())
	}

	fmt.Printf("Run #%d (%s, seed %d)\n", run.ID, run.GameID, run.Seed)
	fmt.Printf("  ticks     %d\n", res.Ticks)
	fmt.Printf("  restarts  %d (recorded %d)\n", res.Restarts, run.Restarts)
	fmt.Printf("  distance  %d (recorded %d)\n", res.State.Distance, run.Distance)

	if res.State.Distance != run.Distance || res.Restarts != run.Restarts {
		return fmt.Errorf("replay of run #%d diverged from the recording", run.ID)
	}
	fmt.Println("Replay matches the recording.")
	return nil
}
