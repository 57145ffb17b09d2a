package registry

import (
	"testing"

	"github.com/vovakirdan/tui-runner/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_b", func() Game { return stubGame{id: "stub_b"} })
	Register("stub_a", func() Game { return stubGame{id: "stub_a"} })

	if !Exists("stub_a") {
		t.Fatal("stub_a not registered")
	}

	g, err := Create("stub_b")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "stub_b" {
		t.Errorf("ID() = %q", g.ID())
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Errorf("List not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

type describedGame struct{ stubGame }

func (describedGame) Selection() string   { return "successor" }
func (describedGame) Description() string { return "follows declared successors" }

func TestListDescribesVariants(t *testing.T) {
	Register("stub_plain", func() Game { return stubGame{id: "stub_plain"} })
	Register("stub_described", func() Game { return describedGame{stubGame{id: "stub_described"}} })

	info, ok := Lookup("stub_described")
	if !ok {
		t.Fatal("stub_described not found")
	}
	if info.Title != "Stub stub_described" || info.Selection != "successor" || info.Description != "follows declared successors" {
		t.Errorf("Lookup = %+v", info)
	}

	plain, _ := Lookup("stub_plain")
	if plain.Selection != "" || plain.Description != "" {
		t.Errorf("variant without a Describer got %+v", plain)
	}

	found := false
	for _, g := range List() {
		if g.ID == "stub_described" {
			found = g == info
		}
	}
	if !found {
		t.Error("List entry differs from Lookup")
	}

	if _, ok := Lookup("no_such_game"); ok {
		t.Error("Lookup found an unregistered id")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); err == nil {
		t.Error("expected error for unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("stub_dup", func() Game { return stubGame{id: "stub_dup"} })
}
