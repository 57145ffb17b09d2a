package main

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagPlain  bool
	flagLimit  int
	flagDelete int64
)

var runsCmd = &cobra.Command{
	Use:   "runs [variant]",
	Short: "Browse recorded runs",
	Long: `Show recorded runs. Without --plain an interactive browser opens
where a run can be replayed or deleted.

Examples:
  runner runs
  runner runs --plain
  runner runs runner_graph --plain --limit 5
  runner runs --delete 12`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print runs instead of opening the browser")
	runsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum runs to print")
	runsCmd.Flags().Int64Var(&flagDelete, "delete", 0, "Delete the run with this id")
}

func runRuns(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if flagDelete != 0 {
		if err := store.DeleteRun(flagDelete); err != nil {
			return err
		}
		fmt.Printf("Deleted run #%d\n", flagDelete)
		return nil
	}

	if !flagPlain {
		return browseRuns(cmd, store)
	}

	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
	}
	return printRuns(store, gameID)
}

// browseRuns opens the runs browser and replays whatever run gets picked,
// returning to the browser afterwards.
func browseRuns(cmd *cobra.Command, store *storage.Store) error {
	restore, err := quietLogger()
	if err != nil {
		return err
	}
	defer restore()

	for {
		cfg := terminalConfig()
		m, err := tui.RunRunsBrowser(store, cfg.ScreenW, cfg.ScreenH)
		if err != nil {
			return err
		}
		id := m.Selected()
		if id == 0 || m.IsQuitting() || m.IsGoingBack() {
			return nil
		}

		run, err := store.LoadRun(id)
		if err != nil {
			return err
		}
		if err := useRecordedResources(cmd, run); err != nil {
			return err
		}
		game, err := registry.Create(run.GameID)
		if err != nil {
			return err
		}
		final, err := tui.Run(game, cfg, tui.Options{Replay: run, Logger: logger})
		if err != nil {
			return err
		}
		if final.IsQuitting() {
			return nil
		}
	}
}

func printRuns(store *storage.Store, gameID string) error {
	runs, err := store.ListRuns(gameID, flagLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to record the first one!")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("ID", "Variant", "Distance", "Ticks", "Restarts", "Seed", "Date")

	for _, r := range runs {
		t.Row(
			fmt.Sprint(r.ID),
			r.GameID,
			fmt.Sprint(r.Distance),
			fmt.Sprint(r.Ticks),
			fmt.Sprint(r.Restarts),
			fmt.Sprint(r.Seed),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	fmt.Println(t.Render())

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println()
	for _, id := range ids {
		s := stats[id]
		fmt.Printf("%s: %d runs, best distance %d, last played %s\n",
			id, s.RunsCount, s.BestDistance, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
