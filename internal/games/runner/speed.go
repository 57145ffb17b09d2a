package runner

import (
	"math"

	"github.com/vovakirdan/tui-runner/internal/config"
)

// SpeedController owns the player's horizontal speed and its ramp timer.
//
// The ramp timer fires every RampIntervalMs of its own clock and raises the
// speed by Step up to Max. Whenever the timer has just fired (progress below
// ProgressThreshold) its clock is sped up by TimeScaleStep, so the ramp
// cadence itself shortens over the life of the scene.
type SpeedController struct {
	cfg   config.SpeedConfig
	speed float64
	ramp  *Timer
}

// NewSpeedController creates a controller at the initial speed with the
// ramp timer running.
func NewSpeedController(cfg config.SpeedConfig) *SpeedController {
	sc := &SpeedController{
		cfg:  cfg,
		ramp: NewTimer(cfg.RampIntervalMs, true),
	}
	sc.Reset()
	return sc
}

// Reset restores the initial speed and restarts the ramp from scratch.
func (sc *SpeedController) Reset() {
	sc.speed = sc.cfg.Initial
	sc.ramp.Reset()
	sc.ramp.Start()
}

// OnTick advances the ramp timer by elapsed milliseconds.
func (sc *SpeedController) OnTick(elapsed float64) {
	if sc.ramp.Advance(elapsed) && sc.speed < sc.cfg.Max {
		sc.speed = math.Min(sc.cfg.Max, sc.speed+sc.cfg.Step)
	}

	if sc.ramp.Progress() < sc.cfg.ProgressThreshold {
		sc.ramp.TimeScale += sc.cfg.TimeScaleStep
	}
}

// CurrentSpeed returns the horizontal velocity to command this tick.
func (sc *SpeedController) CurrentSpeed() float64 {
	return sc.speed
}

// Fires returns how many times the ramp has fired.
func (sc *SpeedController) Fires() int {
	return sc.ramp.Fires()
}

// TimeScale returns the ramp timer's current playback rate.
func (sc *SpeedController) TimeScale() float64 {
	return sc.ramp.TimeScale
}
