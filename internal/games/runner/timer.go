package runner

// Timer is a logical, time-accumulating timer serviced from the tick.
// It never runs on its own; Advance moves it forward by the tick's elapsed
// milliseconds scaled by TimeScale.
type Timer struct {
	Delay     float64 // Period in milliseconds
	Loop      bool    // Re-arm after firing
	TimeScale float64 // Playback rate of the timer's own clock

	elapsed float64
	active  bool
	fires   int
}

// NewTimer creates a stopped timer.
func NewTimer(delay float64, loop bool) *Timer {
	return &Timer{
		Delay:     delay,
		Loop:      loop,
		TimeScale: 1,
	}
}

// Start arms the timer from zero.
func (t *Timer) Start() {
	t.elapsed = 0
	t.active = true
}

// Cancel disarms the timer. A canceled timer never fires.
func (t *Timer) Cancel() {
	t.active = false
	t.elapsed = 0
}

// Reset disarms the timer and restores its time scale and fire count.
func (t *Timer) Reset() {
	t.Cancel()
	t.TimeScale = 1
	t.fires = 0
}

// Active reports whether the timer is armed.
func (t *Timer) Active() bool {
	return t.active
}

// Fires returns how many times the timer has fired since the last Reset.
func (t *Timer) Fires() int {
	return t.fires
}

// Progress returns the fraction of the current period that has elapsed.
func (t *Timer) Progress() float64 {
	if t.Delay <= 0 {
		return 1
	}
	return t.elapsed / t.Delay
}

// Advance moves the timer forward and reports whether it fired.
// A timer fires at most once per call; a looping timer carries the
// overshoot into its next period, a one-shot timer disarms.
func (t *Timer) Advance(ms float64) bool {
	if !t.active {
		return false
	}

	t.elapsed += ms * t.TimeScale
	if t.elapsed < t.Delay {
		return false
	}

	t.fires++
	if t.Loop {
		t.elapsed -= t.Delay
		if t.elapsed >= t.Delay {
			// Clamp so a huge step cannot queue extra fires.
			t.elapsed = t.Delay - 1e-9
		}
	} else {
		t.active = false
		t.elapsed = 0
	}
	return true
}
