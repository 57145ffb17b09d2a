package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available variants",
	Long: `Shows every registered runner variant with the strategy it uses to
pick the next segment: "uniform" draws from the whole library, "successor"
follows each template's declared next list.`,
	Run: runList,
}

func runList(cmd *cobra.Command, args []string) {
	variants := registry.List()
	if len(variants) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println(variantTable(variants))
	fmt.Println("Run 'runner play <id>' to play a variant.")
}

// variantTable renders the variant listing.
func variantTable(variants []registry.GameInfo) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("ID", "Title", "Selection", "Course")

	for _, v := range variants {
		selection := v.Selection
		if selection == "" {
			selection = "-"
		}
		t.Row(v.ID, v.Title, selection, v.Description)
	}
	return t.Render()
}
