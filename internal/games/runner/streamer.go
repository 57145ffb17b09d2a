package runner

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/level"
)

// HintMarker is the decorative cue drawn at a segment's origin. It fades out
// as the player approaches the segment.
type HintMarker struct {
	Handle Handle
	X      float64
	Width  float64
	Alpha  float64
}

// ActiveSegment is one live instance of a template.
type ActiveSegment struct {
	Template         *level.Template
	Handle           Handle
	OriginX          float64
	OffsetY          float64 // Animated from the spawn offset to 0 on entry
	AnimationStarted bool
	Marker           *HintMarker // Owned marker; nil once evicted

	widthPx float64
	tileW   float64
	tileH   float64
}

// WidthPx returns the segment's width in pixels.
func (s *ActiveSegment) WidthPx() float64 {
	return s.widthPx
}

// RightEdge returns the x-coordinate of the segment's right edge.
func (s *ActiveSegment) RightEdge() float64 {
	return s.OriginX + s.widthPx
}

// TileBox returns the world box of the tile at (col, row).
func (s *ActiveSegment) TileBox(col, row int) core.Box {
	return core.NewBox(
		s.OriginX+float64(col)*s.tileW,
		s.OffsetY+float64(row)*s.tileH,
		s.tileW,
		s.tileH,
	)
}

// SegmentStreamer keeps the queue of active segments filled ahead of the
// player and retires segments and markers that scrolled behind the camera.
type SegmentStreamer struct {
	cfg      config.RunnerConfig
	selector Selector
	out      *Outbox
	logger   *log.Logger
	space    *TileSpace

	segments     []*ActiveSegment
	markers      []*HintMarker
	nextPosition float64
	tail         *level.Template
	debug        bool
}

// NewSegmentStreamer creates an empty streamer.
func NewSegmentStreamer(cfg config.RunnerConfig, selector Selector, out *Outbox, logger *log.Logger) *SegmentStreamer {
	return &SegmentStreamer{
		cfg:      cfg,
		selector: selector,
		out:      out,
		logger:   logger,
		space:    NewTileSpace(cfg),
	}
}

// SetDebug toggles debug-overlay requests on slide-in completion.
func (st *SegmentStreamer) SetDebug(on bool) {
	st.debug = on
}

// SetLookAhead raises or lowers the minimum queue length. Values below 1
// are ignored.
func (st *SegmentStreamer) SetLookAhead(n int) {
	if n >= 1 {
		st.cfg.Segments.LookAhead = n
	}
}

// LookAhead returns the minimum queue length.
func (st *SegmentStreamer) LookAhead() int {
	return st.cfg.Segments.LookAhead
}

// Segments returns the active queue in placement order. Callers must not
// modify it.
func (st *SegmentStreamer) Segments() []*ActiveSegment {
	return st.segments
}

// Markers returns the active hint markers in placement order.
func (st *SegmentStreamer) Markers() []*HintMarker {
	return st.markers
}

// NextPosition returns where the next segment will be placed.
func (st *SegmentStreamer) NextPosition() float64 {
	return st.nextPosition
}

// Space returns the collision space holding the active segments' tiles.
func (st *SegmentStreamer) Space() *TileSpace {
	return st.space
}

// Clean evicts segments and markers whose right edge is behind
// playerX - cameraWidth, releasing their handles.
func (st *SegmentStreamer) Clean(playerX, cameraWidth float64, tweens *Tweens) {
	cameraStart := playerX - cameraWidth

	kept := st.segments[:0]
	for _, seg := range st.segments {
		if seg.RightEdge() < cameraStart {
			st.destroy(seg.Handle, tweens)
			st.logger.Debug("segment evicted", "key", seg.Template.Key, "x", seg.OriginX)
			continue
		}
		kept = append(kept, seg)
	}
	clearTail(st.segments, len(kept))
	st.segments = kept

	keptMarkers := st.markers[:0]
	for _, m := range st.markers {
		if m.X+m.Width < cameraStart {
			st.destroy(m.Handle, tweens)
			st.detachMarker(m)
			continue
		}
		keptMarkers = append(keptMarkers, m)
	}
	clearTail(st.markers, len(keptMarkers))
	st.markers = keptMarkers
}

// Generate appends segments until the queue holds LookAhead of them.
func (st *SegmentStreamer) Generate() {
	for len(st.segments) < st.cfg.Segments.LookAhead {
		tpl := st.selector.Next(st.tail)
		st.spawn(tpl)
		st.tail = tpl
	}
}

func (st *SegmentStreamer) spawn(tpl *level.Template) {
	seg := &ActiveSegment{
		Template: tpl,
		Handle:   st.out.NewHandle(),
		OriginX:  st.nextPosition,
		OffsetY:  st.cfg.Segments.SpawnY,
		widthPx:  float64(tpl.Cols()) * st.cfg.Tiles.Width,
		tileW:    st.cfg.Tiles.Width,
		tileH:    st.cfg.Tiles.Height,
	}
	st.out.Emit(Request{
		Kind:   RequestSpawnSegment,
		Handle: seg.Handle,
		Key:    tpl.Key,
		X:      seg.OriginX,
		Y:      seg.OffsetY,
	})
	st.out.Emit(Request{
		Kind:    RequestEnableCollision,
		Handle:  seg.Handle,
		TileMin: st.cfg.Segments.CollisionMin,
		TileMax: st.cfg.Segments.CollisionMax,
	})
	st.space.AddSegment(seg, st.cfg.Segments.CollisionMin, st.cfg.Segments.CollisionMax)

	marker := &HintMarker{
		Handle: st.out.NewHandle(),
		X:      st.nextPosition,
		Width:  st.cfg.Segments.MarkerWidth,
		Alpha:  1,
	}
	st.out.Emit(Request{
		Kind:   RequestSpawnMarker,
		Handle: marker.Handle,
		X:      marker.X,
	})
	seg.Marker = marker

	st.segments = append(st.segments, seg)
	st.markers = append(st.markers, marker)
	st.nextPosition += st.cfg.SegmentWidthPx()

	st.logger.Debug("segment spawned", "key", tpl.Key, "x", seg.OriginX)
}

// TriggerEntries starts the entry transition of every segment the player
// has come within TriggerDistance of. Each segment triggers at most once.
func (st *SegmentStreamer) TriggerEntries(playerX float64, tweens *Tweens) {
	tc := st.cfg.Transitions
	for _, seg := range st.segments {
		if seg.AnimationStarted || seg.OriginX-playerX >= tc.TriggerDistance {
			continue
		}
		seg.AnimationStarted = true
		st.logger.Debug("segment entry", "key", seg.Template.Key, "x", seg.OriginX)

		slide := Transition{Property: "y", Target: 0, Duration: tc.SlideMs, Ease: tc.SlideEase}
		st.out.Emit(Request{Kind: RequestPlayTransition, Handle: seg.Handle, Transition: slide})

		s := seg
		tweens.Add(
			Tween{Owner: s.Handle, To: slide.Target, Duration: slide.Duration, Ease: EaseByName(slide.Ease)},
			func() float64 { return s.OffsetY },
			func(v float64) { s.OffsetY = v },
			func() {
				if st.debug {
					st.out.Emit(Request{Kind: RequestDebugOverlay, Handle: s.Handle})
				}
			},
		)

		m := seg.Marker
		if m == nil {
			continue
		}
		fade := Transition{
			Property: "alpha",
			Target:   0,
			Duration: tc.FadeMs,
			Delay:    tc.FadeDelayMs,
			Ease:     tc.FadeEase,
		}
		st.out.Emit(Request{Kind: RequestPlayTransition, Handle: m.Handle, Transition: fade})
		tweens.Add(
			Tween{Owner: m.Handle, To: fade.Target, Duration: fade.Duration, Delay: fade.Delay, Ease: EaseByName(fade.Ease)},
			func() float64 { return m.Alpha },
			func(v float64) { m.Alpha = v },
			nil,
		)
	}
}

// Reset releases every owned handle and empties both queues.
func (st *SegmentStreamer) Reset(tweens *Tweens) {
	for _, seg := range st.segments {
		st.destroy(seg.Handle, tweens)
	}
	for _, m := range st.markers {
		st.destroy(m.Handle, tweens)
	}
	st.space.Clear()
	st.segments = nil
	st.markers = nil
	st.nextPosition = 0
	st.tail = nil
}

func (st *SegmentStreamer) destroy(h Handle, tweens *Tweens) {
	tweens.Kill(h)
	st.space.Remove(h)
	st.out.Emit(Request{Kind: RequestDestroy, Handle: h})
}

// detachMarker drops the owning segment's reference to an evicted marker.
func (st *SegmentStreamer) detachMarker(m *HintMarker) {
	for _, seg := range st.segments {
		if seg.Marker == m {
			seg.Marker = nil
			return
		}
	}
}

// clearTail nils out the slots past n so dropped entries can be collected.
func clearTail[T any](s []*T, n int) {
	for i := n; i < len(s); i++ {
		s[i] = nil
	}
}
