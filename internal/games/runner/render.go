package runner

import (
	"math"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// Visual characters for rendering
const (
	TileChar        = '█'
	PlayerChar      = '█'
	PlayerJumpChar  = '▓'
	MarkerStrong    = '▒'
	MarkerWeak      = '░'
	OverlayEdgeChar = '┊'
)

// viewport maps world pixels to screen cells.
type viewport struct {
	camX      float64
	ppc, ppr  float64
	originRow int // Screen row of world y = 0
}

func newViewport(snap Snapshot, view config.ViewConfig, worldRows, screenH int) viewport {
	worldH := int(float64(worldRows) * snap.TileH / view.PixelsPerRow)
	return viewport{
		camX:      snap.Camera.X,
		ppc:       view.PixelsPerColumn,
		ppr:       view.PixelsPerRow,
		originRow: max(1, screenH-worldH),
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor((x - v.camX) / v.ppc))
}

func (v viewport) row(y float64) int {
	return v.originRow + int(math.Floor(y/v.ppr))
}

// fill paints the cells covering the world box [x, x+w) x [y, y+h).
func (v viewport) fill(dst *core.Screen, x, y, w, h float64, r rune, c core.Color) {
	c0, c1 := v.col(x), max(v.col(x), v.col(x+w)-1)
	r0, r1 := v.row(y), max(v.row(y), v.row(y+h)-1)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			dst.SetColored(col, row, r, c)
		}
	}
}

func drawMarkers(dst *core.Screen, v viewport, markers []MarkerView) {
	for _, m := range markers {
		var r rune
		switch {
		case m.Alpha > 0.66:
			r = MarkerStrong
		case m.Alpha > 0.2:
			r = MarkerWeak
		default:
			continue
		}
		c0, c1 := v.col(m.X), v.col(m.X+m.Width)-1
		for row := v.originRow; row < dst.Height(); row++ {
			for col := c0; col <= c1; col++ {
				dst.SetColored(col, row, r, core.ColorGray)
			}
		}
	}
}

func drawSegments(dst *core.Screen, v viewport, snap Snapshot, overlays map[Handle]bool) {
	for _, seg := range snap.Segments {
		tpl := seg.Template
		for row, cells := range tpl.Data {
			for col, id := range cells {
				if id <= 0 {
					continue
				}
				x := seg.OriginX + float64(col)*snap.TileW
				y := seg.OffsetY + float64(row)*snap.TileH
				v.fill(dst, x, y, snap.TileW, snap.TileH, TileChar, core.TileColor(id))
			}
		}

		if overlays[seg.Handle] {
			left := v.col(seg.OriginX)
			top := v.row(seg.OffsetY)
			for row := top; row < dst.Height(); row++ {
				if dst.Get(left, row) == ' ' {
					dst.SetColored(left, row, OverlayEdgeChar, core.ColorYellow)
				}
			}
			dst.DrawTextColored(left+1, top, tpl.Key, core.ColorYellow)
		}
	}
}

func drawPlayer(dst *core.Screen, v viewport, p Body, jumping bool) {
	r := PlayerChar
	if jumping {
		r = PlayerJumpChar
	}
	v.fill(dst, p.X, p.Y, p.W, p.H, r, core.ColorBrightYellow)
}

func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
