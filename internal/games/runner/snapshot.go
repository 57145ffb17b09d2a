package runner

import "github.com/vovakirdan/tui-runner/internal/level"

// SegmentView is a read-only copy of an active segment.
type SegmentView struct {
	Handle           Handle
	Template         *level.Template // Shared, immutable
	OriginX          float64
	OffsetY          float64
	AnimationStarted bool
}

// MarkerView is a read-only copy of a hint marker.
type MarkerView struct {
	Handle Handle
	X      float64
	Width  float64
	Alpha  float64
}

// Snapshot is an immutable copy of the simulation state for renderers.
type Snapshot struct {
	Tick      int
	Player    Body
	IsJumping bool
	Speed     float64
	RampFires int
	Camera    Camera
	TileW     float64
	TileH     float64
	Segments  []SegmentView
	Markers   []MarkerView
	Fallen    bool
}

// Snapshot copies the current state.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      s.ticks,
		Player:    s.player,
		IsJumping: s.jump.IsJumping(),
		Speed:     s.speed.CurrentSpeed(),
		RampFires: s.speed.Fires(),
		Camera:    s.camera,
		TileW:     s.cfg.Tiles.Width,
		TileH:     s.cfg.Tiles.Height,
		Segments:  make([]SegmentView, 0, len(s.streamer.segments)),
		Markers:   make([]MarkerView, 0, len(s.streamer.markers)),
		Fallen:    s.fallen,
	}
	for _, seg := range s.streamer.segments {
		snap.Segments = append(snap.Segments, SegmentView{
			Handle:           seg.Handle,
			Template:         seg.Template,
			OriginX:          seg.OriginX,
			OffsetY:          seg.OffsetY,
			AnimationStarted: seg.AnimationStarted,
		})
	}
	for _, m := range s.streamer.markers {
		snap.Markers = append(snap.Markers, MarkerView{
			Handle: m.Handle,
			X:      m.X,
			Width:  m.Width,
			Alpha:  m.Alpha,
		})
	}
	return snap
}
