package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	var cfg RunnerConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded runner.yaml does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultRunnerConfig()) {
		t.Errorf("embedded YAML and DefaultRunnerConfig diverge:\nyaml: %+v\ngo:   %+v", cfg, DefaultRunnerConfig())
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultRunnerConfig().Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadRunnerPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	data := []byte("speed:\n  max: 120\nselection: successor\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner failed: %v", err)
	}
	if cfg.Speed.Max != 120 {
		t.Errorf("Speed.Max = %v, expected 120", cfg.Speed.Max)
	}
	if cfg.Speed.Initial != 50 {
		t.Errorf("Speed.Initial = %v, expected default 50", cfg.Speed.Initial)
	}
	if cfg.Selection != SelectionSuccessor {
		t.Errorf("Selection = %q, expected successor", cfg.Selection)
	}
}

func TestLoadRunnerCustomPathErrors(t *testing.T) {
	if _, err := LoadRunner(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("speed: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRunner(path); err == nil {
		t.Error("expected error for malformed custom config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunnerConfig)
	}{
		{"zero tile width", func(c *RunnerConfig) { c.Tiles.Width = 0 }},
		{"no look-ahead", func(c *RunnerConfig) { c.Segments.LookAhead = 0 }},
		{"initial above max", func(c *RunnerConfig) { c.Speed.Initial = 300 }},
		{"negative step", func(c *RunnerConfig) { c.Speed.Step = -1 }},
		{"zero ramp interval", func(c *RunnerConfig) { c.Speed.RampIntervalMs = 0 }},
		{"zero assist ceiling", func(c *RunnerConfig) { c.Jump.AssistCeiling = 0 }},
		{"unknown selection", func(c *RunnerConfig) { c.Selection = "markov" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSegmentWidthPx(t *testing.T) {
	if got := DefaultRunnerConfig().SegmentWidthPx(); got != 80 {
		t.Errorf("SegmentWidthPx() = %v, expected 80", got)
	}
}
