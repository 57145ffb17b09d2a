// Package runner implements an endless side-scrolling runner. The world is
// streamed from fixed-width segment templates placed edge to edge ahead of
// the player, the horizontal speed ramps up over time, and holding jump
// extends the jump for a short window.
package runner

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/level"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

// configPath and levelsPath store the custom paths set via CLI.
var (
	configPath string
	levelsPath string
	logger     *log.Logger
)

// SetConfigPath sets the custom runner config path.
func SetConfigPath(path string) {
	configPath = path
}

// SetLevelsPath sets the custom segment library file or directory.
func SetLevelsPath(path string) {
	levelsPath = path
}

// SetLogger routes simulation debug events to l.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game adapts a Simulation to the registry.Game interface.
type Game struct {
	id        string
	title     string
	selection string

	sim      *Simulation
	runtime  core.RuntimeConfig
	cfg      config.RunnerConfig
	lib      *level.Library
	loadErr  error
	paused   bool
	debug    bool
	overlays map[Handle]bool // Segments whose debug overlay was requested
}

// New creates a runner that picks segments uniformly.
func New() *Game {
	return &Game{id: "runner", title: "Endless Runner", selection: config.SelectionUniform}
}

// NewGraph creates a runner that follows each template's declared successors.
func NewGraph() *Game {
	return &Game{id: "runner_graph", title: "Endless Runner (graph)", selection: config.SelectionSuccessor}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Selection returns the segment selection strategy.
func (g *Game) Selection() string {
	return g.selection
}

// Description summarizes how the variant builds its course.
func (g *Game) Description() string {
	if g.selection == config.SelectionSuccessor {
		return "follows each segment's declared successors"
	}
	return "any segment may follow any other"
}

// Reset loads config and segments and starts a fresh scene.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false
	g.overlays = make(map[Handle]bool)

	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		if logger != nil {
			logger.Warn("using default runner config", "error", err)
		}
		cfg = config.DefaultRunnerConfig()
	}
	g.cfg = cfg

	lib, err := level.Load(levelsPath)
	if err != nil {
		if logger != nil {
			logger.Error("cannot load segments", "path", levelsPath, "error", err)
		}
		g.loadErr = err
		g.lib = nil
		g.sim = nil
		return
	}
	g.loadErr = nil
	g.lib = lib

	opts := []Option{
		WithSeed(runtime.Seed),
		WithSelection(g.selection),
		WithCameraWidth(g.cameraWidth(runtime.ScreenW)),
	}
	if logger != nil {
		opts = append(opts, WithLogger(logger))
	}
	g.sim = NewSimulation(lib, cfg, opts...)
	g.sim.SetDebug(g.debug)
	g.fitLookAhead()
}

// Resize adapts the camera to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	if g.sim != nil {
		g.sim.SetCameraWidth(g.cameraWidth(w))
		g.fitLookAhead()
	}
}

func (g *Game) cameraWidth(cols int) float64 {
	return float64(cols) * g.cfg.View.PixelsPerColumn
}

// fitLookAhead keeps enough segments queued to cover both the span kept
// behind the player (one camera width) and the visible span ahead of it.
// The configured look-ahead is a floor.
func (g *Game) fitLookAhead() {
	camW := g.cameraWidth(g.runtime.ScreenW)
	span := camW * (2 - g.cfg.View.FollowOffset)
	need := int(math.Ceil(span/g.cfg.SegmentWidthPx())) + 2
	g.sim.Streamer().SetLookAhead(max(g.cfg.Segments.LookAhead, need))
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.sim == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(core.ActionDebug) {
		g.debug = !g.debug
		g.sim.SetDebug(g.debug)
		if !g.debug {
			clear(g.overlays)
		}
	}

	restart := in.Has(core.ActionRestart)
	if g.paused && !restart {
		return core.StepResult{State: g.State()}
	}
	if restart {
		g.paused = false
	}

	g.sim.Step(g.runtime.TickMillis(), Input{
		JumpHeld:         in.Has(core.ActionJump),
		RestartRequested: restart,
	})
	g.apply(g.sim.Drain())

	return core.StepResult{State: g.State(), Restarted: restart}
}

// apply tracks the requests this view cares about. Everything else is
// already mirrored in the snapshot.
func (g *Game) apply(reqs []Request) {
	for _, r := range reqs {
		switch r.Kind {
		case RequestDebugOverlay:
			g.overlays[r.Handle] = true
		case RequestDestroy:
			delete(g.overlays, r.Handle)
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{Paused: g.paused}
	}
	p := g.sim.Player()
	return core.GameState{
		Distance: int(p.X - g.cfg.Player.SpawnX),
		Fallen:   g.sim.Fallen(),
		Paused:   g.paused,
	}
}

// Simulation exposes the underlying simulation, nil if loading failed.
func (g *Game) Simulation() *Simulation {
	return g.sim
}

// Render draws the current state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.loadErr != nil {
		dst.DrawTextCentered(dst.Height()/2-1, "Cannot load segments")
		dst.DrawTextCentered(dst.Height()/2+1, g.loadErr.Error())
		return
	}
	if g.sim == nil {
		return
	}

	snap := g.sim.Snapshot()
	v := newViewport(snap, g.cfg.View, g.worldRows(), dst.Height())

	drawMarkers(dst, v, snap.Markers)
	drawSegments(dst, v, snap, g.overlays)
	drawPlayer(dst, v, snap.Player, snap.IsJumping)
	g.drawHUD(dst, snap)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if snap.Fallen {
		drawCenteredMessage(dst, "YOU FELL", fmt.Sprintf("Distance: %d  |  Press R to restart", g.State().Distance))
	}
}

// worldRows returns the tallest template height, used to pin the ground to
// the bottom of the terminal.
func (g *Game) worldRows() int {
	rows := 0
	for _, t := range g.lib.Templates() {
		rows = max(rows, t.Rows())
	}
	return rows
}

func (g *Game) drawHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawText(2, 0, fmt.Sprintf(" Distance: %d ", g.State().Distance))

	right := fmt.Sprintf(" Spd: %.0f ", snap.Speed)
	if g.debug {
		right = fmt.Sprintf(" seg:%d mk:%d ramp:%d ts:%.1f %s", len(snap.Segments), len(snap.Markers),
			snap.RampFires, g.sim.Speed().TimeScale(), right)
	}
	dst.DrawText(dst.Width()-len(right)-2, 0, right)
}

func init() {
	registry.Register("runner", func() registry.Game { return New() })
	registry.Register("runner_graph", func() registry.Game { return NewGraph() })
}
