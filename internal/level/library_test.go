package level

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/level/formats"
)

func TestLoadTiledJSON(t *testing.T) {
	lib, err := Load(filepath.Join("testdata", "segments.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Object layers are skipped
	if lib.Len() != 2 {
		t.Fatalf("expected 2 templates, got %d", lib.Len())
	}

	flat, ok := lib.Lookup("flat")
	if !ok {
		t.Fatal("template 'flat' not found")
	}
	if !reflect.DeepEqual(flat.Next, []string{"flat", "hole"}) {
		t.Errorf("flat.Next = %v, expected [flat hole]", flat.Next)
	}
	if flat.Cols() != 5 || flat.Rows() != 4 {
		t.Errorf("flat is %dx%d, expected 5x4", flat.Cols(), flat.Rows())
	}

	hole, _ := lib.Lookup("hole")
	if hole.Solid(2, 2) {
		t.Error("hole should be empty at (2, 2)")
	}
	if !hole.Solid(1, 2) {
		t.Error("hole should be solid at (1, 2)")
	}
}

func TestJSONAndYAMLAgree(t *testing.T) {
	fromJSON, err := Load(filepath.Join("testdata", "segments.json"))
	if err != nil {
		t.Fatalf("Load json failed: %v", err)
	}
	fromYAML, err := Load(filepath.Join("testdata", "segments.yaml"))
	if err != nil {
		t.Fatalf("Load yaml failed: %v", err)
	}

	if fromJSON.Len() != fromYAML.Len() {
		t.Fatalf("template counts differ: %d vs %d", fromJSON.Len(), fromYAML.Len())
	}
	for i := 0; i < fromJSON.Len(); i++ {
		a, b := fromJSON.At(i), fromYAML.At(i)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("template %d differs:\njson: %+v\nyaml: %+v", i, a, b)
		}
	}
}

func TestMissingNextIsConfigError(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "broken", "missing_next.yaml"))
	if err == nil {
		t.Fatal("expected error for layer without next property")
	}

	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConfigError, got %T: %v", err, err)
	}
	if ce.Layer != "orphan" {
		t.Errorf("ConfigError.Layer = %q, expected 'orphan'", ce.Layer)
	}
}

func TestFromLayersErrors(t *testing.T) {
	grid := [][]int{{0, 0}, {1, 1}}
	next := map[string]string{"next": "a"}

	tests := []struct {
		name   string
		layers []formats.Layer
	}{
		{"no layers", nil},
		{"missing next", []formats.Layer{{Name: "a", Grid: grid}}},
		{"empty grid", []formats.Layer{{Name: "a", Properties: next}}},
		{"ragged grid", []formats.Layer{{Name: "a", Properties: next, Grid: [][]int{{0, 0}, {1}}}}},
		{"duplicate key", []formats.Layer{
			{Name: "a", Properties: next, Grid: grid},
			{Name: "a", Properties: next, Grid: grid},
		}},
		{"unnamed layer", []formats.Layer{{Properties: next, Grid: grid}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromLayers("test", tc.layers)
			if !IsConfigError(err) {
				t.Errorf("expected ConfigError, got %v", err)
			}
		})
	}
}

func TestEmptyNextIsAllowed(t *testing.T) {
	// The property must exist, but it may list nothing.
	lib, err := FromLayers("test", []formats.Layer{
		{Name: "solo", Properties: map[string]string{"next": " , "}, Grid: [][]int{{1}}},
	})
	if err != nil {
		t.Fatalf("FromLayers failed: %v", err)
	}
	if got := lib.At(0).Next; len(got) != 0 {
		t.Errorf("Next = %v, expected empty", got)
	}
}

func TestValidateUnknownSuccessor(t *testing.T) {
	lib, err := FromLayers("test", []formats.Layer{
		{Name: "a", Properties: map[string]string{"next": "a, ghost"}, Grid: [][]int{{1}}},
	})
	if err != nil {
		t.Fatalf("FromLayers failed: %v", err)
	}

	if err := lib.Validate(); !IsConfigError(err) {
		t.Errorf("Validate() = %v, expected ConfigError", err)
	}

	// Unknown keys are dropped from the successor set
	if got := lib.Successors(lib.At(0)); len(got) != 1 || got[0].Key != "a" {
		t.Errorf("Successors = %v, expected only 'a'", got)
	}
}

func TestDefaultLibrary(t *testing.T) {
	lib, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if lib.Len() == 0 {
		t.Fatal("default library is empty")
	}
	if err := lib.Validate(); err != nil {
		t.Errorf("default library does not validate: %v", err)
	}
	for _, tpl := range lib.Templates() {
		if tpl.Cols() != 5 {
			t.Errorf("template %q is %d tiles wide, expected 5", tpl.Key, tpl.Cols())
		}
	}
}

func TestLoadDirMergesFiles(t *testing.T) {
	dir := t.TempDir()
	a := "segments:\n  - key: a\n    properties: {next: b}\n    rows: [\"#\"]\n"
	b := "segments:\n  - key: b\n    properties: {next: a}\n    rows: [\"#\"]\n"
	if err := os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(a), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.yml"), []byte(b), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600); err != nil {
		t.Fatal(err)
	}

	lib, err := Load(dir)
	if err != nil {
		t.Fatalf("Load(dir) failed: %v", err)
	}
	if lib.Len() != 2 || lib.At(0).Key != "a" || lib.At(1).Key != "b" {
		t.Errorf("unexpected templates from dir: %d", lib.Len())
	}
}

func TestLoadMissingPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if IsConfigError(err) {
		t.Error("a missing file is an I/O error, not a ConfigError")
	}
}

func TestParseYAMLTopLevelNext(t *testing.T) {
	doc := []byte(`
segments:
  - key: flat
    next: flat, hole
    rows: ["....", "####"]
  - key: hole
    next: [flat]
    rows: ["....", "#..#"]
`)
	lib, err := Parse("inline", doc, ".yaml")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	flat, _ := lib.Lookup("flat")
	if !reflect.DeepEqual(flat.Next, []string{"flat", "hole"}) {
		t.Errorf("flat.Next = %v, expected [flat hole]", flat.Next)
	}
	hole, _ := lib.Lookup("hole")
	if !reflect.DeepEqual(hole.Next, []string{"flat"}) {
		t.Errorf("hole.Next = %v, expected [flat]", hole.Next)
	}
}
