package runner

import "math"

// Ease maps linear progress in [0, 1] to eased progress.
type Ease func(v float64) float64

// EaseLinear is the identity ease.
func EaseLinear(v float64) float64 { return v }

// EaseExpoIn accelerates exponentially from zero velocity.
func EaseExpoIn(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Pow(2, 10*(v-1)) - 0.001
}

// EaseExpoInOut accelerates until halfway, then decelerates.
func EaseExpoInOut(v float64) float64 {
	v *= 2
	if v < 1 {
		return 0.5 * math.Pow(2, 10*(v-1))
	}
	return 0.5 * (2 - math.Pow(2, -10*(v-1)))
}

// EaseByName resolves the names used in configuration files.
// Unknown names fall back to linear.
func EaseByName(name string) Ease {
	switch name {
	case "Expo.easeIn", "expo-in":
		return EaseExpoIn
	case "Expo.easeInOut", "expo-in-out":
		return EaseExpoInOut
	default:
		return EaseLinear
	}
}

// Tween animates one float property from its value at start time to To.
type Tween struct {
	Owner    Handle  // Object the property belongs to
	To       float64 // Target value
	Duration float64 // Milliseconds
	Delay    float64 // Milliseconds before the tween starts
	Ease     Ease

	get        func() float64
	set        func(float64)
	onComplete func()

	from    float64
	elapsed float64
	started bool
	done    bool
}

// Tweens owns every running tween of a simulation.
type Tweens struct {
	active []*Tween
}

// Add schedules a tween. get/set access the animated property; onComplete
// may be nil.
func (ts *Tweens) Add(tw Tween, get func() float64, set func(float64), onComplete func()) {
	if tw.Ease == nil {
		tw.Ease = EaseLinear
	}
	tw.get = get
	tw.set = set
	tw.onComplete = onComplete
	ts.active = append(ts.active, &tw)
}

// Update advances every tween and drops finished ones.
func (ts *Tweens) Update(ms float64) {
	// onComplete may Add; only tweens present at entry are advanced.
	n := len(ts.active)
	for _, tw := range ts.active[:n] {
		tw.advance(ms)
	}

	kept := ts.active[:0]
	for _, tw := range ts.active {
		if !tw.done {
			kept = append(kept, tw)
		}
	}
	for i := len(kept); i < len(ts.active); i++ {
		ts.active[i] = nil
	}
	ts.active = kept
}

// Kill drops every tween of owner without completing it.
func (ts *Tweens) Kill(owner Handle) {
	kept := ts.active[:0]
	for _, tw := range ts.active {
		if tw.Owner != owner {
			kept = append(kept, tw)
		}
	}
	for i := len(kept); i < len(ts.active); i++ {
		ts.active[i] = nil
	}
	ts.active = kept
}

// Clear drops every tween.
func (ts *Tweens) Clear() {
	ts.active = nil
}

// Len returns the number of running or pending tweens.
func (ts *Tweens) Len() int {
	return len(ts.active)
}

// CountFor returns the number of tweens owned by h.
func (ts *Tweens) CountFor(h Handle) int {
	n := 0
	for _, tw := range ts.active {
		if tw.Owner == h {
			n++
		}
	}
	return n
}

func (tw *Tween) advance(ms float64) {
	if tw.done {
		return
	}

	if !tw.started {
		if tw.Delay > ms {
			tw.Delay -= ms
			return
		}
		ms -= tw.Delay
		tw.Delay = 0
		tw.started = true
		tw.from = tw.get()
	}

	tw.elapsed += ms
	if tw.Duration <= 0 || tw.elapsed >= tw.Duration {
		tw.set(tw.To)
		tw.done = true
		if tw.onComplete != nil {
			tw.onComplete()
		}
		return
	}

	p := tw.Ease(tw.elapsed / tw.Duration)
	tw.set(tw.from + (tw.To-tw.from)*p)
}
