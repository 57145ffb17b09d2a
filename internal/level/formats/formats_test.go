package formats

import "testing"

func TestParseRows(t *testing.T) {
	grid, err := parseRows([]string{". #", "123"})
	if err != nil {
		t.Fatalf("parseRows failed: %v", err)
	}
	want := [][]int{{0, 0, 1}, {1, 2, 3}}
	for y := range want {
		for x := range want[y] {
			if grid[y][x] != want[y][x] {
				t.Errorf("grid[%d][%d] = %d, expected %d", y, x, grid[y][x], want[y][x])
			}
		}
	}

	if _, err := parseRows([]string{"x"}); err == nil {
		t.Error("expected error for unknown tile character")
	}
}

func TestParseTiledRejectsShortData(t *testing.T) {
	doc := `{"layers":[{"name":"a","type":"tilelayer","width":2,"height":2,"data":[1,1,1]}]}`
	if _, err := ParseTiled([]byte(doc)); err == nil {
		t.Error("expected error for data length mismatch")
	}
}

func TestParseTiledPropertyValues(t *testing.T) {
	doc := `{"layers":[{"name":"a","type":"tilelayer","width":1,"height":1,"data":[0],
		"properties":[{"name":"next","type":"string","value":"a,b"},{"name":"weight","type":"int","value":3}]}]}`
	layers, err := ParseTiled([]byte(doc))
	if err != nil {
		t.Fatalf("ParseTiled failed: %v", err)
	}
	if v, ok := layers[0].Property("next"); !ok || v != "a,b" {
		t.Errorf("next = %q, %v", v, ok)
	}
	if v, _ := layers[0].Property("weight"); v != "3" {
		t.Errorf("weight = %q, expected \"3\"", v)
	}
}

func TestParseUnsupportedExtension(t *testing.T) {
	if _, err := Parse([]byte("{}"), ".tmx"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestParseTiledLegacyPropertyObject(t *testing.T) {
	doc := `{"layers":[{"name":"a","type":"tilelayer","width":1,"height":1,"data":[0],
		"properties":{"next":"a, b","weight":2}}]}`
	layers, err := ParseTiled([]byte(doc))
	if err != nil {
		t.Fatalf("ParseTiled failed: %v", err)
	}
	if v, ok := layers[0].Property("next"); !ok || v != "a, b" {
		t.Errorf("next = %q, %v", v, ok)
	}
	if v, _ := layers[0].Property("weight"); v != "2" {
		t.Errorf("weight = %q, expected \"2\"", v)
	}
}

func TestParseTiledFlattensGroups(t *testing.T) {
	doc := `{"layers":[
		{"name":"first","type":"tilelayer","width":1,"height":1,"data":[1]},
		{"name":"outer","type":"group","layers":[
			{"name":"second","type":"tilelayer","width":1,"height":1,"data":[1]},
			{"name":"spawns","type":"objectgroup"},
			{"name":"inner","type":"group","layers":[
				{"name":"third","type":"tilelayer","width":1,"height":1,"data":[1]}
			]}
		]}
	]}`
	layers, err := ParseTiled([]byte(doc))
	if err != nil {
		t.Fatalf("ParseTiled failed: %v", err)
	}
	want := []string{"first", "second", "third"}
	if len(layers) != len(want) {
		t.Fatalf("got %d layers, expected %d", len(layers), len(want))
	}
	for i, name := range want {
		if layers[i].Name != name {
			t.Errorf("layers[%d] = %q, expected %q", i, layers[i].Name, name)
		}
	}
}

func TestParseTiledGroupChildErrors(t *testing.T) {
	doc := `{"layers":[{"name":"g","type":"group","layers":[
		{"name":"bad","type":"tilelayer","width":2,"height":1,"data":[1]}]}]}`
	if _, err := ParseTiled([]byte(doc)); err == nil {
		t.Error("expected error for a broken layer inside a group")
	}
}

func TestParseYAMLTopLevelNext(t *testing.T) {
	doc := `
segments:
  - key: a
    next: b
    rows: ["#"]
  - key: b
    next: [a, b]
    rows: ["#"]
  - key: c
    next: a
    properties:
      next: b
      author: someone
    rows: ["#"]
  - key: d
    properties:
      next: c
    rows: ["#"]
`
	layers, err := ParseYAML([]byte(doc))
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	want := []string{"b", "a,b", "a", "c"}
	for i, w := range want {
		if v, ok := layers[i].Property("next"); !ok || v != w {
			t.Errorf("%s next = %q, %v, expected %q", layers[i].Name, v, ok, w)
		}
	}
	if v, _ := layers[2].Property("author"); v != "someone" {
		t.Errorf("author = %q, expected other properties kept", v)
	}
}

func TestParseYAMLRejectsMappingNext(t *testing.T) {
	doc := "segments:\n  - key: a\n    next: {x: 1}\n    rows: [\"#\"]\n"
	if _, err := ParseYAML([]byte(doc)); err == nil {
		t.Error("expected error for a mapping next")
	}
}

func TestParseYAMLEmptyTopLevelNext(t *testing.T) {
	doc := "segments:\n  - key: end\n    next: []\n    rows: [\"#\"]\n"
	layers, err := ParseYAML([]byte(doc))
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if v, ok := layers[0].Property("next"); !ok || v != "" {
		t.Errorf("next = %q, %v, expected present and empty", v, ok)
	}
}
