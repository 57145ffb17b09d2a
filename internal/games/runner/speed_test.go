package runner

import (
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
)

const tickMs = 1000.0 / 60.0

func TestSpeedRampsToMax(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Speed
	sc := NewSpeedController(cfg)

	if sc.CurrentSpeed() != cfg.Initial {
		t.Fatalf("initial speed = %v, want %v", sc.CurrentSpeed(), cfg.Initial)
	}

	prev := sc.CurrentSpeed()
	reached := false
	for i := 0; i < 60*60*10; i++ {
		sc.OnTick(tickMs)
		cur := sc.CurrentSpeed()
		if cur < prev {
			t.Fatalf("tick %d: speed decreased from %v to %v", i, prev, cur)
		}
		if cur > cfg.Max {
			t.Fatalf("tick %d: speed %v exceeds max %v", i, cur, cfg.Max)
		}
		prev = cur
		if cur == cfg.Max {
			reached = true
			break
		}
	}

	if !reached {
		t.Fatalf("speed never reached %v, stuck at %v", cfg.Max, prev)
	}
	if sc.Fires() < 75 {
		t.Errorf("reached max after %d fires, want at least 75", sc.Fires())
	}
}

func TestSpeedTimeScaleGrows(t *testing.T) {
	sc := NewSpeedController(config.DefaultRunnerConfig().Speed)

	sc.OnTick(tickMs)
	if !approx(sc.TimeScale(), 1.1) {
		t.Errorf("TimeScale() after first tick = %v, want 1.1", sc.TimeScale())
	}

	for i := 0; i < 600; i++ {
		sc.OnTick(tickMs)
	}
	if sc.TimeScale() <= 1.1 {
		t.Errorf("TimeScale() = %v, want growth past 1.1", sc.TimeScale())
	}
}

func TestSpeedClampsAtMax(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Speed
	cfg.Initial = 199
	cfg.Step = 5
	cfg.RampIntervalMs = 10
	sc := NewSpeedController(cfg)

	sc.OnTick(20)
	if sc.CurrentSpeed() != cfg.Max {
		t.Errorf("speed = %v, want clamp to %v", sc.CurrentSpeed(), cfg.Max)
	}
}

func TestSpeedReset(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Speed
	sc := NewSpeedController(cfg)
	for i := 0; i < 2000; i++ {
		sc.OnTick(tickMs)
	}
	sc.Reset()

	if sc.CurrentSpeed() != cfg.Initial || sc.Fires() != 0 || sc.TimeScale() != 1 {
		t.Errorf("after Reset: speed=%v fires=%d scale=%v", sc.CurrentSpeed(), sc.Fires(), sc.TimeScale())
	}
}
