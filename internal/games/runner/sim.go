package runner

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/level"
)

// Input is the logical input consumed by one tick.
type Input struct {
	JumpHeld         bool
	RestartRequested bool
}

// Camera is the horizontal view window in world pixels.
type Camera struct {
	X     float64
	Width float64
}

// Simulation is the runner's per-tick loop. It composes the speed and jump
// controllers, the segment streamer and the physics stepper, and owns all of
// their state. It is not safe for concurrent use; hosts read Snapshot copies.
type Simulation struct {
	cfg    config.RunnerConfig
	lib    *level.Library
	logger *log.Logger

	out      *Outbox
	tweens   *Tweens
	streamer *SegmentStreamer
	speed    *SpeedController
	jump     *JumpController
	physics  *Physics

	player   Body
	camera   Camera
	ticks    int
	restarts int
	fallen   bool
}

// Option configures a Simulation.
type Option func(*simOptions)

type simOptions struct {
	seed        int64
	selector    string
	cameraWidth float64
	logger      *log.Logger
}

// WithSeed seeds the segment selection RNG.
func WithSeed(seed int64) Option {
	return func(o *simOptions) { o.seed = seed }
}

// WithSelection overrides the configured selection strategy.
func WithSelection(name string) Option {
	return func(o *simOptions) { o.selector = name }
}

// WithCameraWidth sets the camera width in world pixels.
func WithCameraWidth(w float64) Option {
	return func(o *simOptions) { o.cameraWidth = w }
}

// WithLogger routes streaming and restart events to logger at debug level.
func WithLogger(l *log.Logger) Option {
	return func(o *simOptions) { o.logger = l }
}

// NewSimulation creates a simulation in its initial state. The active queue
// is empty until the first Step.
func NewSimulation(lib *level.Library, cfg config.RunnerConfig, opts ...Option) *Simulation {
	o := simOptions{
		selector:    cfg.Selection,
		cameraWidth: 640,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	rng := rand.New(rand.NewSource(o.seed))
	out := &Outbox{}

	s := &Simulation{
		cfg:      cfg,
		lib:      lib,
		logger:   o.logger,
		out:      out,
		tweens:   &Tweens{},
		streamer: NewSegmentStreamer(cfg, newSelector(o.selector, lib, rng), out, o.logger),
		speed:    NewSpeedController(cfg.Speed),
		jump:     NewJumpController(cfg.Jump),
		physics:  NewPhysics(cfg.Physics),
		camera:   Camera{Width: o.cameraWidth},
	}
	s.initScene()
	return s
}

// initScene puts the player at spawn with fresh controllers.
func (s *Simulation) initScene() {
	s.player = Body{
		X: s.cfg.Player.SpawnX,
		Y: s.cfg.Player.SpawnY,
		W: s.cfg.Player.Width,
		H: s.cfg.Player.Height,
	}
	s.speed.Reset()
	s.jump.Reset()
	s.tweens.Clear()
	s.ticks = 0
	s.fallen = false
	s.player.VelX = s.speed.CurrentSpeed()
	s.updateCamera()
}

// Reset discards the scene: every segment and marker handle is released,
// the queues are emptied and the controllers start over. The next Step
// regenerates the look-ahead.
func (s *Simulation) Reset() {
	s.streamer.Reset(s.tweens)
	s.initScene()
	s.restarts++
	s.logger.Debug("scene reset", "restarts", s.restarts)
}

// Step advances the simulation by elapsed milliseconds.
func (s *Simulation) Step(elapsed float64, in Input) {
	s.ticks++

	// Whole-pixel x keeps adjacent segments seamless.
	snapX(&s.player)

	s.streamer.Clean(s.player.X, s.camera.Width, s.tweens)
	s.streamer.Generate()

	space := s.streamer.Space()
	space.Sync()
	s.physics.Step(&s.player, elapsed, space)
	s.updateCamera()

	s.streamer.TriggerEntries(s.player.X, s.tweens)
	s.tweens.Update(elapsed)

	s.player.VelX = s.speed.CurrentSpeed()
	s.out.Emit(Request{Kind: RequestSetVelocityX, Value: s.player.VelX})

	s.speed.OnTick(elapsed)

	if s.jump.Update(elapsed, in.JumpHeld, &s.player) {
		s.out.Emit(Request{Kind: RequestSetVelocityY, Value: s.player.VelY})
	}

	if s.cfg.Physics.FallLimit > 0 && s.player.Y > s.cfg.Physics.FallLimit {
		s.fallen = true
	}

	if in.RestartRequested {
		s.Reset()
	}
}

func (s *Simulation) updateCamera() {
	follow := s.camera.Width * s.cfg.View.FollowOffset
	s.camera.X = math.Max(0, s.player.X-follow)
}

// SetCameraWidth changes the view width, e.g. after a terminal resize.
func (s *Simulation) SetCameraWidth(w float64) {
	s.camera.Width = w
	s.updateCamera()
}

// SetDebug toggles debug-overlay requests.
func (s *Simulation) SetDebug(on bool) {
	s.streamer.SetDebug(on)
}

// Drain returns and clears the requests emitted since the last Drain.
func (s *Simulation) Drain() []Request {
	return s.out.Drain()
}

// Player returns a copy of the player body.
func (s *Simulation) Player() Body {
	return s.player
}

// Speed returns the speed controller.
func (s *Simulation) Speed() *SpeedController {
	return s.speed
}

// Jump returns the jump controller.
func (s *Simulation) Jump() *JumpController {
	return s.jump
}

// Streamer returns the segment streamer.
func (s *Simulation) Streamer() *SegmentStreamer {
	return s.streamer
}

// Fallen reports whether the player dropped below the world.
func (s *Simulation) Fallen() bool {
	return s.fallen
}

// Ticks returns the number of steps since the last reset.
func (s *Simulation) Ticks() int {
	return s.ticks
}
