package runner

import (
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
)

func newTestStreamer(t *testing.T, cfg config.RunnerConfig) (*SegmentStreamer, *Outbox, *Tweens) {
	t.Helper()
	lib := newTestLibrary(t, flatLayer("flat"))
	out := &Outbox{}
	sel := NewUniformSelector(lib, rand.New(rand.NewSource(1)))
	return NewSegmentStreamer(cfg, sel, out, log.New(io.Discard)), out, &Tweens{}
}

func countKind(reqs []Request, kind RequestKind) int {
	n := 0
	for _, r := range reqs {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

func TestStreamerGenerateFillsLookAhead(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	st, out, _ := newTestStreamer(t, cfg)

	st.Generate()

	segs := st.Segments()
	if len(segs) != 12 {
		t.Fatalf("len(Segments()) = %d, want 12", len(segs))
	}
	for i, seg := range segs {
		if want := float64(i) * 80; seg.OriginX != want {
			t.Errorf("segment %d at x=%v, want %v", i, seg.OriginX, want)
		}
		if seg.OffsetY != -280 {
			t.Errorf("segment %d OffsetY = %v, want -280", i, seg.OffsetY)
		}
		if seg.Marker == nil || seg.Marker.X != seg.OriginX {
			t.Errorf("segment %d marker = %+v", i, seg.Marker)
		}
	}
	if st.NextPosition() != 960 {
		t.Errorf("NextPosition() = %v, want 960", st.NextPosition())
	}

	reqs := out.Drain()
	if countKind(reqs, RequestSpawnSegment) != 12 || countKind(reqs, RequestSpawnMarker) != 12 {
		t.Errorf("spawn requests: %d segments, %d markers", countKind(reqs, RequestSpawnSegment), countKind(reqs, RequestSpawnMarker))
	}
	for _, r := range reqs {
		if r.Kind == RequestEnableCollision && (r.TileMin != 1 || r.TileMax != 9999) {
			t.Errorf("collision range = %d..%d, want 1..9999", r.TileMin, r.TileMax)
		}
	}

	st.Generate()
	if len(st.Segments()) != 12 || len(out.Drain()) != 0 {
		t.Error("Generate on a full queue changed state")
	}
}

func TestStreamerCleanEvictsBehindCamera(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	st, out, tweens := newTestStreamer(t, cfg)
	st.Generate()
	first := st.Segments()[0]
	segHandle, markerHandle := first.Handle, first.Marker.Handle
	out.Drain()

	// Right edge 80 equals the camera start: kept.
	st.Clean(80+640, 640, tweens)
	if len(st.Segments()) != 12 {
		t.Fatalf("segment at the camera edge evicted")
	}

	st.Clean(80.5+640, 640, tweens)
	if len(st.Segments()) != 11 || len(st.Markers()) != 11 {
		t.Fatalf("after Clean: %d segments, %d markers, want 11 each", len(st.Segments()), len(st.Markers()))
	}

	destroyed := make(map[Handle]bool)
	for _, r := range out.Drain() {
		if r.Kind == RequestDestroy {
			destroyed[r.Handle] = true
		}
	}
	if !destroyed[segHandle] || !destroyed[markerHandle] {
		t.Errorf("destroy requests %v missing segment %d or marker %d", destroyed, segHandle, markerHandle)
	}

	st.Generate()
	segs := st.Segments()
	if len(segs) != 12 || segs[len(segs)-1].OriginX != 960 {
		t.Errorf("refill placed tail at %v", segs[len(segs)-1].OriginX)
	}
}

func TestStreamerMarkersEvictIndependently(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Segments.MarkerWidth = 200
	st, _, tweens := newTestStreamer(t, cfg)
	st.Generate()

	st.Clean(100, 0, tweens)
	if len(st.Segments()) != 11 {
		t.Fatalf("segments = %d, want 11", len(st.Segments()))
	}
	if len(st.Markers()) != 12 {
		t.Fatalf("markers = %d, want 12: the first marker outlives its segment", len(st.Markers()))
	}

	st.Clean(250, 0, tweens)
	if len(st.Segments()) != 9 {
		t.Errorf("segments = %d, want 9", len(st.Segments()))
	}
	if len(st.Markers()) != 11 {
		t.Errorf("markers = %d, want 11", len(st.Markers()))
	}
	if st.Segments()[0].Marker == nil {
		t.Error("live segment lost its live marker")
	}
}

func TestStreamerEntryTriggersOnce(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	st, out, tweens := newTestStreamer(t, cfg)
	st.Generate()
	out.Drain()

	st.TriggerEntries(0, tweens)

	for i, seg := range st.Segments() {
		want := seg.OriginX < 175
		if seg.AnimationStarted != want {
			t.Errorf("segment %d at %v: AnimationStarted = %v, want %v", i, seg.OriginX, seg.AnimationStarted, want)
		}
	}
	if n := countKind(out.Drain(), RequestPlayTransition); n != 6 {
		t.Errorf("transition requests = %d, want 6", n)
	}
	if tweens.Len() != 6 {
		t.Errorf("tweens = %d, want 6", tweens.Len())
	}

	st.TriggerEntries(0, tweens)
	if n := len(out.Drain()); n != 0 {
		t.Errorf("second trigger emitted %d requests", n)
	}
}

func TestStreamerSlideAndFade(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	st, _, tweens := newTestStreamer(t, cfg)
	st.Generate()
	st.TriggerEntries(0, tweens)
	seg := st.Segments()[0]

	tweens.Update(400)
	if seg.OffsetY != 0 {
		t.Errorf("OffsetY after slide = %v, want 0", seg.OffsetY)
	}
	if a := seg.Marker.Alpha; a >= 1 || a < 0.9 {
		t.Errorf("marker alpha 100ms into fade = %v", a)
	}

	tweens.Update(600)
	if seg.Marker.Alpha != 0 {
		t.Errorf("marker alpha after fade = %v, want 0", seg.Marker.Alpha)
	}
}

func TestStreamerDebugOverlay(t *testing.T) {
	for _, debug := range []bool{false, true} {
		cfg := config.DefaultRunnerConfig()
		st, out, tweens := newTestStreamer(t, cfg)
		st.SetDebug(debug)
		st.Generate()
		st.TriggerEntries(0, tweens)
		tweens.Update(400)

		want := 0
		if debug {
			want = 3
		}
		if n := countKind(out.Drain(), RequestDebugOverlay); n != want {
			t.Errorf("debug=%v: overlay requests = %d, want %d", debug, n, want)
		}
	}
}

func TestStreamerEvictionKillsTweens(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	st, _, tweens := newTestStreamer(t, cfg)
	st.Generate()
	st.TriggerEntries(0, tweens)
	seg := st.Segments()[0]
	markerHandle := seg.Marker.Handle

	st.Clean(1000, 0, tweens)
	if tweens.CountFor(seg.Handle) != 0 || tweens.CountFor(markerHandle) != 0 {
		t.Error("evicted segment still has running tweens")
	}
}

func TestStreamerReset(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	st, out, tweens := newTestStreamer(t, cfg)
	st.Generate()
	st.TriggerEntries(0, tweens)
	out.Drain()

	st.Reset(tweens)

	if len(st.Segments()) != 0 || len(st.Markers()) != 0 || st.NextPosition() != 0 {
		t.Errorf("after Reset: %d segments, %d markers, next=%v", len(st.Segments()), len(st.Markers()), st.NextPosition())
	}
	if n := countKind(out.Drain(), RequestDestroy); n != 24 {
		t.Errorf("destroy requests = %d, want 24", n)
	}
	if tweens.Len() != 0 {
		t.Errorf("tweens = %d after Reset, want 0", tweens.Len())
	}
}

func TestStreamerSetLookAhead(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	st, _, _ := newTestStreamer(t, cfg)

	st.SetLookAhead(20)
	st.SetLookAhead(0)
	st.Generate()

	if st.LookAhead() != 20 || len(st.Segments()) != 20 {
		t.Errorf("LookAhead()=%d segments=%d, want 20", st.LookAhead(), len(st.Segments()))
	}
}

func TestStreamerSpaceTracksSegments(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	st, _, tweens := newTestStreamer(t, cfg)

	st.Generate()
	// Two ground rows of five tiles per segment.
	if n := st.Space().Len(); n != 120 {
		t.Fatalf("tiles after Generate = %d, want 120", n)
	}

	st.Clean(80.5+640, 640, tweens)
	if n := st.Space().Len(); n != 110 {
		t.Errorf("tiles after evicting one segment = %d, want 110", n)
	}

	st.Generate()
	if n := st.Space().Len(); n != 120 {
		t.Errorf("tiles after refill = %d, want 120", n)
	}

	st.Reset(tweens)
	if n := st.Space().Len(); n != 0 {
		t.Errorf("tiles after Reset = %d, want 0", n)
	}
}

func TestStreamerSpaceHonorsCollisionRange(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Segments.CollisionMin = 2
	st, _, _ := newTestStreamer(t, cfg)

	st.Generate()

	// Ground tiles use id 1, below the range.
	if n := st.Space().Len(); n != 0 {
		t.Errorf("tiles = %d, want 0", n)
	}
}
