package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI palette entries in the TUI renderer.
type Color uint8

// Palette used by the runner view.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
	ColorBrightYellow
)

// tilePalette cycles through distinct colors for tile ids.
var tilePalette = [...]Color{ColorGreen, ColorBlue, ColorMagenta, ColorCyan, ColorRed}

// TileColor returns the color for a tile id. Id 0 is empty space.
func TileColor(id int) Color {
	if id <= 0 {
		return ColorDefault
	}
	return tilePalette[(id-1)%len(tilePalette)]
}
