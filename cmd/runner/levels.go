package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/level"
)

var flagPreview string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Inspect the segment library",
	Long: `Load the segment library, print its templates and check that every
declared successor exists.

Examples:
  runner levels
  runner levels --levels ./segments
  runner levels --preview hurdle`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagPreview, "preview", "", "Draw the template with this key")
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func runLevels(cmd *cobra.Command, args []string) error {
	lib, err := level.Load(flagLevels)
	if err != nil {
		return err
	}

	if flagPreview != "" {
		t, ok := lib.Lookup(flagPreview)
		if !ok {
			return fmt.Errorf("no template %q in %s", flagPreview, lib.Source())
		}
		fmt.Print(previewTemplate(t))
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
		Headers("#", "Key", "Size", "Solid", "Next")

	for i, tpl := range lib.Templates() {
		t.Row(
			fmt.Sprint(i),
			tpl.Key,
			fmt.Sprintf("%dx%d", tpl.Cols(), tpl.Rows()),
			fmt.Sprint(solidCount(tpl)),
			strings.Join(tpl.Next, ", "),
		)
	}

	fmt.Printf("Library %s: %d templates\n", lib.Source(), lib.Len())
	fmt.Println(t.Render())

	if err := lib.Validate(); err != nil {
		fmt.Printf("Successor graph: %v\n", err)
		fmt.Println("The runner_graph variant needs every successor to exist.")
		return nil
	}
	fmt.Println("Successor graph: ok")
	return nil
}

func solidCount(t *level.Template) int {
	n := 0
	for row := 0; row < t.Rows(); row++ {
		for col := 0; col < t.Cols(); col++ {
			if t.Solid(col, row) {
				n++
			}
		}
	}
	return n
}

// previewTemplate draws solid tiles as blocks and empty ones as dots.
func previewTemplate(t *level.Template) string {
	var sb strings.Builder
	for row := 0; row < t.Rows(); row++ {
		for col := 0; col < t.Cols(); col++ {
			if t.Solid(col, row) {
				sb.WriteRune('█')
			} else {
				sb.WriteRune('·')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
