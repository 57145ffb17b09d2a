package main

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/registry"
)

func TestVariantTableShowsSelection(t *testing.T) {
	out := variantTable(registry.List())

	for _, want := range []string{"runner_graph", "successor", "uniform", "Endless Runner"} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q:\n%s", want, out)
		}
	}
}

func TestVariantTableWithoutDescriber(t *testing.T) {
	out := variantTable([]registry.GameInfo{{ID: "plain", Title: "Plain"}})

	lines := strings.Split(out, "\n")
	found := false
	for _, line := range lines {
		if strings.Contains(line, "plain") && strings.Contains(line, " - ") {
			found = true
		}
	}
	if !found {
		t.Errorf("variant without a selection not shown as '-':\n%s", out)
	}
}
