package tui

// HoldTracker emulates a held key on terminals, which only report presses
// and auto-repeats. A key counts as held for a window of ticks after its
// last press, so auto-repeat keeps it held continuously.
type HoldTracker struct {
	window     int // Ticks a press stays held
	sincePress int
	pressed    bool
}

// NewHoldTracker creates a tracker with a hold window of windowTicks.
func NewHoldTracker(windowTicks int) *HoldTracker {
	return &HoldTracker{window: max(1, windowTicks)}
}

// HoldWindowTicks converts a hold window in milliseconds to ticks.
func HoldWindowTicks(windowMs, tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	return max(1, (windowMs*tickRate+999)/1000)
}

// Press records a key press for the current tick.
func (h *HoldTracker) Press() {
	h.pressed = true
	h.sincePress = 0
}

// Release drops the held state immediately.
func (h *HoldTracker) Release() {
	h.pressed = false
}

// Held reports whether the key counts as down this tick.
func (h *HoldTracker) Held() bool {
	return h.pressed
}

// Tick ages the last press by one tick; call after the tick consumed Held.
func (h *HoldTracker) Tick() {
	if !h.pressed {
		return
	}
	h.sincePress++
	if h.sincePress >= h.window {
		h.pressed = false
	}
}
