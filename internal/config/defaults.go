package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the hardcoded runner configuration.
// The embedded runner.yaml carries the same values.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Tiles: TileConfig{
			Width:  16,
			Height: 16,
		},
		Segments: SegmentConfig{
			WidthTiles:   5,
			LookAhead:    12,
			SpawnY:       -280,
			MarkerWidth:  80,
			CollisionMin: 1,
			CollisionMax: 9999,
		},
		Speed: SpeedConfig{
			Initial:           50,
			Max:               200,
			Step:              2,
			RampIntervalMs:    5000,
			TimeScaleStep:     0.1,
			ProgressThreshold: 0.01,
		},
		Jump: JumpConfig{
			Impulse:       -15,
			Assist:        20,
			AssistCeiling: 200,
			AutoClearMs:   200,
		},
		Physics: PhysicsConfig{
			Gravity:      400,
			MaxFallSpeed: 600,
			FallLimit:    480,
		},
		Player: PlayerConfig{
			SpawnX: 8,
			SpawnY: 8,
			Width:  16,
			Height: 16,
		},
		Transitions: TransitionConfig{
			TriggerDistance: 175,
			SlideMs:         400,
			SlideEase:       "Expo.easeIn",
			FadeMs:          600,
			FadeDelayMs:     300,
			FadeEase:        "Expo.easeInOut",
		},
		View: ViewConfig{
			PixelsPerColumn: 8,
			PixelsPerRow:    16,
			FollowOffset:    0.25,
			HoldWindowMs:    150,
		},
		Selection: SelectionUniform,
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultRunnerYAML
}
