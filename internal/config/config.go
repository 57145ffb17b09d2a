// Package config provides YAML-based runner configuration loading.
package config

import "fmt"

// RunnerConfig contains all tunables of the runner simulation and its view.
type RunnerConfig struct {
	Tiles       TileConfig       `yaml:"tiles"`
	Segments    SegmentConfig    `yaml:"segments"`
	Speed       SpeedConfig      `yaml:"speed"`
	Jump        JumpConfig       `yaml:"jump"`
	Physics     PhysicsConfig    `yaml:"physics"`
	Player      PlayerConfig     `yaml:"player"`
	Transitions TransitionConfig `yaml:"transitions"`
	View        ViewConfig       `yaml:"view"`
	Selection   string           `yaml:"selection"` // "uniform" or "successor"
}

// TileConfig defines the tile size in world pixels.
type TileConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SegmentConfig defines segment streaming parameters.
type SegmentConfig struct {
	WidthTiles   int     `yaml:"width_tiles"`   // Spacing between segment origins, in tiles
	LookAhead    int     `yaml:"look_ahead"`    // Minimum active segments kept queued
	SpawnY       float64 `yaml:"spawn_y"`       // Vertical offset a segment is created at
	MarkerWidth  float64 `yaml:"marker_width"`  // Hint marker width in pixels
	CollisionMin int     `yaml:"collision_min"` // First colliding tile index
	CollisionMax int     `yaml:"collision_max"` // Last colliding tile index
}

// SpeedConfig defines the horizontal speed ramp.
type SpeedConfig struct {
	Initial           float64 `yaml:"initial"`
	Max               float64 `yaml:"max"`
	Step              float64 `yaml:"step"`
	RampIntervalMs    float64 `yaml:"ramp_interval_ms"`
	TimeScaleStep     float64 `yaml:"time_scale_step"`
	ProgressThreshold float64 `yaml:"progress_threshold"`
}

// JumpConfig defines the jump state machine.
type JumpConfig struct {
	Impulse       float64 `yaml:"impulse"`        // Takeoff vertical velocity
	Assist        float64 `yaml:"assist"`         // Sustain strength
	AssistCeiling float64 `yaml:"assist_ceiling"` // Velocity at which sustain is neutral (negated)
	AutoClearMs   float64 `yaml:"auto_clear_ms"`  // Max time the sustain stays available
}

// PhysicsConfig defines host physics parameters.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`        // px/s^2, positive is down
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // px/s
	FallLimit    float64 `yaml:"fall_limit"`     // Player y past which the run is lost
}

// PlayerConfig defines the player body.
type PlayerConfig struct {
	SpawnX float64 `yaml:"spawn_x"`
	SpawnY float64 `yaml:"spawn_y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TransitionConfig defines segment entry effects.
type TransitionConfig struct {
	TriggerDistance float64 `yaml:"trigger_distance"`
	SlideMs         float64 `yaml:"slide_ms"`
	SlideEase       string  `yaml:"slide_ease"`
	FadeMs          float64 `yaml:"fade_ms"`
	FadeDelayMs     float64 `yaml:"fade_delay_ms"`
	FadeEase        string  `yaml:"fade_ease"`
}

// ViewConfig maps world pixels to terminal cells.
type ViewConfig struct {
	PixelsPerColumn float64 `yaml:"pixels_per_column"`
	PixelsPerRow    float64 `yaml:"pixels_per_row"`
	FollowOffset    float64 `yaml:"follow_offset"` // Fraction of the view left of the player
	HoldWindowMs    int     `yaml:"hold_window_ms"`
}

// Selection strategies.
const (
	SelectionUniform   = "uniform"
	SelectionSuccessor = "successor"
)

// SegmentWidthPx returns the fixed spacing between segment origins.
func (c RunnerConfig) SegmentWidthPx() float64 {
	return float64(c.Segments.WidthTiles) * c.Tiles.Width
}

// Validate rejects configurations the simulation cannot run with.
func (c RunnerConfig) Validate() error {
	switch {
	case c.Tiles.Width <= 0 || c.Tiles.Height <= 0:
		return fmt.Errorf("config: tile size must be positive, got %vx%v", c.Tiles.Width, c.Tiles.Height)
	case c.Segments.WidthTiles <= 0:
		return fmt.Errorf("config: segments.width_tiles must be positive, got %d", c.Segments.WidthTiles)
	case c.Segments.LookAhead <= 0:
		return fmt.Errorf("config: segments.look_ahead must be positive, got %d", c.Segments.LookAhead)
	case c.Speed.Initial > c.Speed.Max:
		return fmt.Errorf("config: speed.initial %v exceeds speed.max %v", c.Speed.Initial, c.Speed.Max)
	case c.Speed.Step < 0:
		return fmt.Errorf("config: speed.step must not be negative, got %v", c.Speed.Step)
	case c.Speed.RampIntervalMs <= 0:
		return fmt.Errorf("config: speed.ramp_interval_ms must be positive, got %v", c.Speed.RampIntervalMs)
	case c.Jump.AssistCeiling <= 0:
		return fmt.Errorf("config: jump.assist_ceiling must be positive, got %v", c.Jump.AssistCeiling)
	case c.View.PixelsPerColumn <= 0 || c.View.PixelsPerRow <= 0:
		return fmt.Errorf("config: view pixel scale must be positive")
	}

	switch c.Selection {
	case "", SelectionUniform, SelectionSuccessor:
	default:
		return fmt.Errorf("config: unknown selection %q", c.Selection)
	}
	return nil
}
