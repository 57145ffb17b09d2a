package runner

import (
	"math/rand"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/level"
)

// Selector chooses the template appended after tail.
// tail is nil for the first segment of a scene.
type Selector interface {
	Next(tail *level.Template) *level.Template
}

// UniformSelector picks uniformly from the whole library and ignores
// declared successors.
type UniformSelector struct {
	lib *level.Library
	rng *rand.Rand
}

// NewUniformSelector creates a uniform selector.
func NewUniformSelector(lib *level.Library, rng *rand.Rand) *UniformSelector {
	return &UniformSelector{lib: lib, rng: rng}
}

// Next returns a uniformly random template.
func (s *UniformSelector) Next(_ *level.Template) *level.Template {
	return s.lib.At(s.rng.Intn(s.lib.Len()))
}

// SuccessorSelector walks the "next" adjacency graph: it picks uniformly
// among tail's declared successors, and falls back to the whole library
// for the first segment or when tail has no known successor.
type SuccessorSelector struct {
	lib      *level.Library
	rng      *rand.Rand
	fallback *UniformSelector
}

// NewSuccessorSelector creates a successor-walking selector.
func NewSuccessorSelector(lib *level.Library, rng *rand.Rand) *SuccessorSelector {
	return &SuccessorSelector{
		lib:      lib,
		rng:      rng,
		fallback: NewUniformSelector(lib, rng),
	}
}

// Next returns a random declared successor of tail.
func (s *SuccessorSelector) Next(tail *level.Template) *level.Template {
	if tail == nil {
		return s.fallback.Next(nil)
	}
	succ := s.lib.Successors(tail)
	if len(succ) == 0 {
		return s.fallback.Next(tail)
	}
	return succ[s.rng.Intn(len(succ))]
}

// newSelector builds the selector named by a config value.
func newSelector(name string, lib *level.Library, rng *rand.Rand) Selector {
	if name == config.SelectionSuccessor {
		return NewSuccessorSelector(lib, rng)
	}
	return NewUniformSelector(lib, rng)
}
