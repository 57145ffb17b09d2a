package runner

import "github.com/vovakirdan/tui-runner/internal/config"

// JumpPhase names the jump state machine's states.
type JumpPhase int

const (
	JumpIdle JumpPhase = iota
	JumpLaunched
	JumpSustained
	JumpReleased
)

// JumpController turns the held jump input and ground contact into vertical
// velocity commands.
//
// A launch from the ground sets the takeoff impulse and arms the auto-clear
// timer. While the input stays held and the timer has not run out, each tick
// applies a velocity-dependent upward assist, so holding longer jumps higher.
// Releasing the input, hitting a ceiling, or the timer running out ends the
// sustain; the timer is canceled on every exit from the jumping state.
type JumpController struct {
	cfg       config.JumpConfig
	isJumping bool
	autoClear *Timer
	phase     JumpPhase
}

// NewJumpController creates an idle controller.
func NewJumpController(cfg config.JumpConfig) *JumpController {
	return &JumpController{
		cfg:       cfg,
		autoClear: NewTimer(cfg.AutoClearMs, false),
	}
}

// Reset returns the controller to idle.
func (jc *JumpController) Reset() {
	jc.isJumping = false
	jc.autoClear.Cancel()
	jc.phase = JumpIdle
}

// IsJumping reports whether a sustain is still available.
func (jc *JumpController) IsJumping() bool {
	return jc.isJumping
}

// Phase returns what the last Update did.
func (jc *JumpController) Phase() JumpPhase {
	return jc.phase
}

// TimerActive reports whether the auto-clear timer is armed.
func (jc *JumpController) TimerActive() bool {
	return jc.autoClear.Active()
}

// Update runs one tick of the state machine and returns true when it
// changed the body's vertical velocity.
func (jc *JumpController) Update(elapsed float64, held bool, b *Body) bool {
	expired := jc.autoClear.Advance(elapsed)
	if expired {
		jc.isJumping = false
	}

	switch {
	case held && b.Blocked.Down:
		b.VelY = jc.cfg.Impulse
		jc.isJumping = true
		jc.autoClear.Start()
		jc.phase = JumpLaunched
		return true

	case held && jc.isJumping && !b.Blocked.Up:
		b.VelY = jc.Sustain(b.VelY)
		jc.phase = JumpSustained
		return true

	default:
		if jc.isJumping || expired || jc.autoClear.Active() {
			jc.phase = JumpReleased
		} else {
			jc.phase = JumpIdle
		}
		jc.isJumping = false
		jc.autoClear.Cancel()
		return false
	}
}

// Sustain returns the assisted velocity for one held tick:
// v - assist*(ceiling+v)/ceiling. Upward speed converges on -ceiling.
func (jc *JumpController) Sustain(v float64) float64 {
	return v - jc.cfg.Assist*(jc.cfg.AssistCeiling+v)/jc.cfg.AssistCeiling
}
