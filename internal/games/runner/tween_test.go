package runner

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestEasing(t *testing.T) {
	tests := []struct {
		name string
		ease Ease
		in   float64
		want float64
	}{
		{"linear mid", EaseLinear, 0.5, 0.5},
		{"expo in start", EaseExpoIn, 0, 0},
		{"expo in end", EaseExpoIn, 1, 0.999},
		{"expo in-out mid", EaseExpoInOut, 0.5, 0.5},
		{"expo in-out start", EaseExpoInOut, 0, 0.5 * math.Pow(2, -10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ease(tt.in); !approx(got, tt.want) {
				t.Errorf("ease(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEaseByName(t *testing.T) {
	if !approx(EaseByName("Expo.easeIn")(1), 0.999) {
		t.Error("Expo.easeIn not resolved")
	}
	if !approx(EaseByName("Expo.easeInOut")(0.5), 0.5) {
		t.Error("Expo.easeInOut not resolved")
	}
	if !approx(EaseByName("bogus")(0.3), 0.3) {
		t.Error("unknown ease should be linear")
	}
}

func TestTweenSnapsToTarget(t *testing.T) {
	var ts Tweens
	value := -280.0
	completed := 0

	ts.Add(Tween{Owner: 1, To: 0, Duration: 400, Ease: EaseExpoIn},
		func() float64 { return value },
		func(v float64) { value = v },
		func() { completed++ },
	)

	ts.Update(200)
	if value <= -280 || value >= 0 {
		t.Errorf("mid-tween value = %v, want strictly between -280 and 0", value)
	}
	ts.Update(200)
	if value != 0 {
		t.Errorf("final value = %v, want 0", value)
	}
	if completed != 1 {
		t.Errorf("onComplete called %d times, want 1", completed)
	}
	if ts.Len() != 0 {
		t.Errorf("Len() = %d after completion, want 0", ts.Len())
	}

	ts.Update(100)
	if completed != 1 {
		t.Error("onComplete called again after removal")
	}
}

func TestTweenDelayCapturesStartValue(t *testing.T) {
	var ts Tweens
	value := 1.0

	ts.Add(Tween{Owner: 1, To: 0, Duration: 100, Delay: 300},
		func() float64 { return value },
		func(v float64) { value = v },
		nil,
	)

	ts.Update(200)
	if value != 1 {
		t.Fatalf("value changed during delay: %v", value)
	}

	// Changed before the tween starts; the tween must animate from here.
	value = 0.5
	ts.Update(150) // 100ms of delay left, 50ms into the tween
	if !approx(value, 0.25) {
		t.Errorf("value = %v, want 0.25", value)
	}
}

func TestTweensKill(t *testing.T) {
	var ts Tweens
	value := 1.0
	completed := false

	ts.Add(Tween{Owner: 7, To: 0, Duration: 100},
		func() float64 { return value },
		func(v float64) { value = v },
		func() { completed = true },
	)
	ts.Add(Tween{Owner: 8, To: 0, Duration: 100},
		func() float64 { return 0 },
		func(float64) {},
		nil,
	)

	ts.Kill(7)
	ts.Update(1000)

	if completed || value != 1 {
		t.Errorf("killed tween still ran: value=%v completed=%v", value, completed)
	}
	if ts.CountFor(7) != 0 {
		t.Error("killed owner still has tweens")
	}
}
