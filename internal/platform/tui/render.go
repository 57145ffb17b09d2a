package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// palette maps core colors to terminal colors. Tiles cycle through the
// saturated entries; markers and HUD use gray and bright yellow.
var palette = map[core.Color]lipgloss.Style{
	core.ColorRed:          fg("1"),
	core.ColorGreen:        fg("2"),
	core.ColorYellow:       fg("3"),
	core.ColorBlue:         fg("4"),
	core.ColorMagenta:      fg("5"),
	core.ColorCyan:         fg("6"),
	core.ColorWhite:        fg("7"),
	core.ColorGray:         fg("245"),
	core.ColorBrightYellow: fg("11"),
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// RenderScreen converts a Screen buffer to a styled string, cropped to
// maxW x maxH cells. A limit <= 0 means the screen's own size.
// Each run of equally colored cells gets a single style.
func RenderScreen(s *core.Screen, maxW, maxH int) string {
	w, h := s.Width(), s.Height()
	if maxW > 0 {
		w = min(w, maxW)
	}
	if maxH > 0 {
		h = min(h, maxH)
	}

	var sb strings.Builder
	sb.Grow(w*h*2 + h)

	var run strings.Builder
	for y := 0; y < h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}

		color := s.GetCell(0, y).Color
		for x := 0; x < w; x++ {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				writeRun(&sb, run.String(), color)
				run.Reset()
				color = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		writeRun(&sb, run.String(), color)
		run.Reset()
	}
	return sb.String()
}

func writeRun(sb *strings.Builder, text string, c core.Color) {
	if text == "" {
		return
	}
	style, ok := palette[c]
	if !ok {
		sb.WriteString(text)
		return
	}
	sb.WriteString(style.Render(text))
}
