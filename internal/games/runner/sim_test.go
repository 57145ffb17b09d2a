package runner

import (
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/level"
	"github.com/vovakirdan/tui-runner/internal/level/formats"
)

// groundGrid returns a cols x rows grid whose two bottom rows are solid,
// except for the listed hole columns.
func groundGrid(cols, rows int, holes ...int) [][]int {
	grid := make([][]int, rows)
	for r := range grid {
		grid[r] = make([]int, cols)
		if r < rows-2 {
			continue
		}
		for c := range grid[r] {
			grid[r][c] = 1
		}
		for _, h := range holes {
			grid[r][h] = 0
		}
	}
	return grid
}

func flatLayer(name string) formats.Layer {
	return formats.Layer{
		Name:       name,
		Properties: map[string]string{"next": name},
		Grid:       groundGrid(5, 12),
	}
}

func newTestLibrary(t *testing.T, layers ...formats.Layer) *level.Library {
	t.Helper()
	lib, err := level.FromLayers("test", layers)
	if err != nil {
		t.Fatalf("FromLayers: %v", err)
	}
	return lib
}

func newTestSim(t *testing.T, layers ...formats.Layer) *Simulation {
	t.Helper()
	if len(layers) == 0 {
		layers = []formats.Layer{flatLayer("flat")}
	}
	return NewSimulation(newTestLibrary(t, layers...), config.DefaultRunnerConfig(), WithSeed(7))
}

func run(s *Simulation, ticks int, in Input) {
	for i := 0; i < ticks; i++ {
		s.Step(tickMs, in)
	}
}

func TestSimulationGeneratesOnFirstStep(t *testing.T) {
	s := newTestSim(t)
	if n := len(s.Streamer().Segments()); n != 0 {
		t.Fatalf("segments before first Step = %d, want 0", n)
	}

	s.Step(tickMs, Input{})
	if n := len(s.Streamer().Segments()); n != 12 {
		t.Errorf("segments after first Step = %d, want 12", n)
	}
}

func TestSimulationRunsOnGround(t *testing.T) {
	s := newTestSim(t)
	run(s, 120, Input{})

	p := s.Player()
	if !p.Grounded() {
		t.Fatalf("player not grounded after 2s: %+v", p)
	}
	if p.Y != 144 {
		t.Errorf("player Y = %v, want 144", p.Y)
	}
	if p.X <= 8 {
		t.Errorf("player did not move: X = %v", p.X)
	}
	if s.Fallen() {
		t.Error("player fell on flat ground")
	}
}

func TestSimulationJump(t *testing.T) {
	s := newTestSim(t)
	run(s, 120, Input{})
	s.Drain()

	s.Step(tickMs, Input{JumpHeld: true})
	if !s.Jump().IsJumping() {
		t.Fatal("jump did not start")
	}
	if countKind(s.Drain(), RequestSetVelocityY) != 1 {
		t.Error("no vertical velocity request on launch")
	}

	run(s, 10, Input{JumpHeld: true})
	if s.Player().Y >= 144 {
		t.Errorf("player did not rise: Y = %v", s.Player().Y)
	}
}

func TestSimulationCommandsSpeedEveryTick(t *testing.T) {
	s := newTestSim(t)
	for i := 0; i < 30; i++ {
		s.Step(tickMs, Input{})
		reqs := s.Drain()
		if countKind(reqs, RequestSetVelocityX) != 1 {
			t.Fatalf("tick %d: want exactly one horizontal velocity request", i)
		}
		for _, r := range reqs {
			if r.Kind == RequestSetVelocityX && r.Value != s.Player().VelX {
				t.Fatalf("tick %d: requested %v, body has %v", i, r.Value, s.Player().VelX)
			}
		}
	}
}

func TestSimulationEvictsBehindCamera(t *testing.T) {
	s := newTestSim(t)
	for i := 0; i < 60*30; i++ {
		s.Step(tickMs, Input{})
		if s.Fallen() {
			t.Fatalf("fell at tick %d", i)
		}
	}

	st := s.Streamer()
	if len(st.Segments()) < 12 {
		t.Errorf("look-ahead dropped to %d", len(st.Segments()))
	}
	if st.Segments()[0].OriginX == 0 {
		t.Error("first segment never evicted")
	}
}

func TestSimulationRestart(t *testing.T) {
	s := newTestSim(t)
	run(s, 600, Input{})
	live := len(s.Streamer().Segments()) + len(s.Streamer().Markers())
	s.Drain()

	s.Step(tickMs, Input{RestartRequested: true})

	st := s.Streamer()
	if len(st.Segments()) != 0 || len(st.Markers()) != 0 || st.NextPosition() != 0 {
		t.Fatalf("after restart: %d segments, %d markers, next=%v", len(st.Segments()), len(st.Markers()), st.NextPosition())
	}
	cfg := config.DefaultRunnerConfig()
	p := s.Player()
	if p.X != cfg.Player.SpawnX || p.Y != cfg.Player.SpawnY {
		t.Errorf("player at (%v, %v), want spawn", p.X, p.Y)
	}
	if s.Speed().CurrentSpeed() != cfg.Speed.Initial {
		t.Errorf("speed = %v, want %v", s.Speed().CurrentSpeed(), cfg.Speed.Initial)
	}
	if s.Jump().IsJumping() || s.Jump().TimerActive() {
		t.Error("jump state survived restart")
	}
	if n := countKind(s.Drain(), RequestDestroy); n < live {
		t.Errorf("destroy requests = %d, want at least %d", n, live)
	}

	s.Step(tickMs, Input{})
	if len(st.Segments()) != 12 || st.Segments()[0].OriginX != 0 {
		t.Error("scene not regenerated from x=0 after restart")
	}
}

func TestSimulationDeterministic(t *testing.T) {
	layers := []formats.Layer{
		flatLayer("flat"),
		{Name: "hole", Properties: map[string]string{"next": "flat"}, Grid: groundGrid(5, 12, 2)},
	}
	a := newTestSim(t, layers...)
	b := newTestSim(t, layers...)

	for i := 0; i < 900; i++ {
		in := Input{JumpHeld: i%90 < 12, RestartRequested: i == 500}
		a.Step(tickMs, in)
		b.Step(tickMs, in)
	}

	sa, sb := a.Snapshot(), b.Snapshot()
	if sa.Player != sb.Player {
		t.Fatalf("players diverged: %+v vs %+v", sa.Player, sb.Player)
	}
	if len(sa.Segments) != len(sb.Segments) {
		t.Fatalf("segment counts diverged: %d vs %d", len(sa.Segments), len(sb.Segments))
	}
	for i := range sa.Segments {
		if sa.Segments[i].Template.Key != sb.Segments[i].Template.Key {
			t.Fatalf("segment %d diverged: %s vs %s", i, sa.Segments[i].Template.Key, sb.Segments[i].Template.Key)
		}
	}
}

func TestSimulationFallsThroughGap(t *testing.T) {
	pit := formats.Layer{Name: "pit", Properties: map[string]string{"next": "pit"}, Grid: make([][]int, 12)}
	for r := range pit.Grid {
		pit.Grid[r] = make([]int, 5)
	}
	s := newTestSim(t, pit)

	run(s, 180, Input{})
	if !s.Fallen() {
		t.Errorf("player did not fall: Y = %v", s.Player().Y)
	}
}

func TestSimulationCameraFollowsPlayer(t *testing.T) {
	s := newTestSim(t)
	s.SetCameraWidth(640)
	run(s, 600, Input{})

	snap := s.Snapshot()
	want := snap.Player.X - 640*0.25
	if snap.Camera.X != want {
		t.Errorf("camera X = %v, want %v", snap.Camera.X, want)
	}
}
