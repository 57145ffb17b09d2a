package runner

import (
	"cmp"
	"math"
	"slices"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

const solidTag = "solid"

// tileObject is one solid tile registered in the space.
type tileObject struct {
	obj      *resolv.Object
	col, row int
}

// tileGroup holds the tile objects of one segment.
type tileGroup struct {
	seg     *ActiveSegment
	tiles   []tileObject
	offsetY float64 // OffsetY the objects were last placed at
}

// TileSpace indexes the colliding tiles of active segments in a resolv
// space. resolv spaces are bounded while the course is not, so objects are
// stored relative to an origin that moves right when the queue outgrows the
// space.
type TileSpace struct {
	space   *resolv.Space
	cellW   int
	cellH   int
	width   int
	height  int
	originX float64
	originY float64

	groups map[Handle]*tileGroup
	body   *resolv.Object
}

// NewTileSpace creates an empty space sized for the configured look-ahead.
func NewTileSpace(cfg config.RunnerConfig) *TileSpace {
	ts := &TileSpace{
		cellW:  max(1, int(cfg.Tiles.Width)),
		cellH:  max(1, int(cfg.Tiles.Height)),
		groups: make(map[Handle]*tileGroup),
		body:   resolv.NewObject(0, 0, 1, 1, "player"),
	}
	ts.originY = ts.floorY(min(0, cfg.Segments.SpawnY))
	ts.width = ts.ceilX(2 * float64(cfg.Segments.LookAhead+1) * cfg.SegmentWidthPx())
	ts.height = ts.ceilY(max(cfg.Physics.FallLimit, 0) - ts.originY)
	ts.space = resolv.NewSpace(ts.width, ts.height, ts.cellW, ts.cellH)
	ts.space.Add(ts.body)
	return ts
}

// AddSegment registers the tiles of seg whose ids fall in [tileMin, tileMax].
// Adding a handle twice replaces its tiles.
func (ts *TileSpace) AddSegment(seg *ActiveSegment, tileMin, tileMax int) {
	ts.Remove(seg.Handle)

	g := &tileGroup{seg: seg, offsetY: seg.OffsetY}
	for row, cells := range seg.Template.Data {
		for col, id := range cells {
			if id <= 0 || id < tileMin || id > tileMax {
				continue
			}
			obj := resolv.NewObject(0, 0, seg.tileW, seg.tileH, solidTag)
			obj.Data = seg.Handle
			g.tiles = append(g.tiles, tileObject{obj: obj, col: col, row: row})
		}
	}
	if len(g.tiles) == 0 {
		return
	}
	ts.groups[seg.Handle] = g

	if !ts.fits(seg) {
		ts.rebuild()
		return
	}
	for _, t := range g.tiles {
		ts.space.Add(t.obj)
	}
	ts.place(g)
}

// Remove drops the tiles registered for h. Unknown handles are ignored.
func (ts *TileSpace) Remove(h Handle) {
	g, ok := ts.groups[h]
	if !ok {
		return
	}
	for _, t := range g.tiles {
		ts.space.Remove(t.obj)
	}
	delete(ts.groups, h)
}

// Clear drops every registered tile.
func (ts *TileSpace) Clear() {
	for h := range ts.groups {
		ts.Remove(h)
	}
}

// Len returns the number of registered tile objects.
func (ts *TileSpace) Len() int {
	n := 0
	for _, g := range ts.groups {
		n += len(g.tiles)
	}
	return n
}

// Sync moves the tiles of segments whose vertical offset changed since they
// were last placed.
func (ts *TileSpace) Sync() {
	for _, g := range ts.groups {
		if g.seg.OffsetY == g.offsetY {
			continue
		}
		if !ts.fits(g.seg) {
			ts.rebuild()
			return
		}
		g.offsetY = g.seg.OffsetY
		ts.place(g)
	}
}

// Check moves the query object to box and returns the world boxes of the
// solid tiles box would overlap after moving by (dx, dy). A nil space has no
// tiles.
func (ts *TileSpace) Check(box core.Box, dx, dy float64, dst []core.Box) []core.Box {
	if ts == nil {
		return dst
	}
	// resolv trims one pixel off the far edges when mapping to cells; the
	// extra pixel keeps the broad phase a superset of the exact overlap.
	ts.body.X = box.X - ts.originX
	ts.body.Y = box.Y - ts.originY
	ts.body.W = box.W + 1
	ts.body.H = box.H + 1
	ts.body.Update()

	c := ts.body.Check(dx, dy, solidTag)
	if c == nil {
		return dst
	}
	moved := core.NewBox(box.X+dx, box.Y+dy, box.W, box.H)
	start := len(dst)
	for _, o := range c.Objects {
		tile := core.NewBox(o.X+ts.originX, o.Y+ts.originY, o.W, o.H)
		if tile.Intersects(moved) {
			dst = append(dst, tile)
		}
	}
	// resolv orders hits by distance; row-major keeps resolution stable.
	slices.SortFunc(dst[start:], func(a, b core.Box) int {
		return cmp.Or(cmp.Compare(a.Y, b.Y), cmp.Compare(a.X, b.X))
	})
	return dst
}

// place writes the world position of every tile in g into the space.
func (ts *TileSpace) place(g *tileGroup) {
	seg := g.seg
	for _, t := range g.tiles {
		t.obj.X = seg.OriginX + float64(t.col)*seg.tileW - ts.originX
		t.obj.Y = seg.OffsetY + float64(t.row)*seg.tileH - ts.originY
		t.obj.Update()
	}
}

// fits reports whether seg lies inside the space bounds.
func (ts *TileSpace) fits(seg *ActiveSegment) bool {
	bottom := seg.OffsetY + float64(seg.Template.Rows())*seg.tileH
	return seg.OriginX >= ts.originX && seg.RightEdge() <= ts.originX+float64(ts.width) &&
		seg.OffsetY >= ts.originY && bottom <= ts.originY+float64(ts.height)
}

// rebuild recreates the space around the live segments, moving the origin
// to the leftmost one and growing the bounds as needed.
func (ts *TileSpace) rebuild() {
	left, right := math.Inf(1), math.Inf(-1)
	top, bottom := ts.originY, ts.originY+float64(ts.height)
	for _, g := range ts.groups {
		seg := g.seg
		left = min(left, seg.OriginX)
		right = max(right, seg.RightEdge())
		top = min(top, seg.OffsetY)
		bottom = max(bottom, seg.OffsetY+float64(seg.Template.Rows())*seg.tileH)
		for _, t := range g.tiles {
			ts.space.Remove(t.obj)
		}
	}
	ts.space.Remove(ts.body)

	ts.originX = math.Floor(left/float64(ts.cellW)) * float64(ts.cellW)
	ts.originY = ts.floorY(top)
	ts.width = max(ts.width, ts.ceilX(2*(right-ts.originX)))
	ts.height = max(ts.height, ts.ceilY(bottom-ts.originY))
	ts.space = resolv.NewSpace(ts.width, ts.height, ts.cellW, ts.cellH)
	ts.space.Add(ts.body)

	for _, g := range ts.groups {
		for _, t := range g.tiles {
			ts.space.Add(t.obj)
		}
		g.offsetY = g.seg.OffsetY
		ts.place(g)
	}
}

func (ts *TileSpace) floorY(v float64) float64 {
	return math.Floor(v/float64(ts.cellH)) * float64(ts.cellH)
}

func (ts *TileSpace) ceilX(v float64) int {
	return int(math.Ceil(v/float64(ts.cellW))) * ts.cellW
}

func (ts *TileSpace) ceilY(v float64) int {
	return max(1, int(math.Ceil(v/float64(ts.cellH)))) * ts.cellH
}
