// Package level loads the segment library: the immutable catalog of segment
// templates the runner streams from. Templates are parsed once from a tile
// map document and only read afterwards.
package level

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-runner/internal/level/formats"
)

// NextProperty is the layer property listing successor template keys.
const NextProperty = "next"

// Template is the immutable blueprint for a segment.
type Template struct {
	Key  string   // Layer name
	Next []string // Declared successor keys, in authored order
	Data [][]int  // Tile grid, rows x columns; values > 0 are solid tile ids
}

// Cols returns the template width in tiles.
func (t *Template) Cols() int {
	if len(t.Data) == 0 {
		return 0
	}
	return len(t.Data[0])
}

// Rows returns the template height in tiles.
func (t *Template) Rows() int {
	return len(t.Data)
}

// Solid reports whether the tile at (col, row) blocks movement.
// Out-of-range cells are empty.
func (t *Template) Solid(col, row int) bool {
	if row < 0 || row >= len(t.Data) || col < 0 || col >= len(t.Data[row]) {
		return false
	}
	return t.Data[row][col] > 0
}

// Library is the ordered set of templates loaded at startup.
type Library struct {
	source    string
	templates []*Template
	byKey     map[string]*Template
}

// Source returns where the library was loaded from.
func (l *Library) Source() string {
	return l.source
}

// Len returns the number of templates.
func (l *Library) Len() int {
	return len(l.templates)
}

// At returns the i-th template in load order.
func (l *Library) At(i int) *Template {
	return l.templates[i]
}

// Templates returns the templates in load order.
// The slice is a copy; the templates themselves are shared and must not be mutated.
func (l *Library) Templates() []*Template {
	out := make([]*Template, len(l.templates))
	copy(out, l.templates)
	return out
}

// Lookup returns the template with the given key.
func (l *Library) Lookup(key string) (*Template, bool) {
	t, ok := l.byKey[key]
	return t, ok
}

// Successors returns the declared successors of t that exist in the library.
func (l *Library) Successors(t *Template) []*Template {
	out := make([]*Template, 0, len(t.Next))
	for _, key := range t.Next {
		if next, ok := l.byKey[key]; ok {
			out = append(out, next)
		}
	}
	return out
}

// Validate checks cross-template rules: every declared successor must exist.
// Loading does not call it, since the default streaming ignores successors.
func (l *Library) Validate() error {
	for _, t := range l.templates {
		for _, key := range t.Next {
			if _, ok := l.byKey[key]; !ok {
				return &ConfigError{
					Source: l.source,
					Layer:  t.Key,
					Reason: fmt.Sprintf("unknown successor %q", key),
				}
			}
		}
	}
	return nil
}

// FromLayers builds a library from parsed layers.
// Every layer must carry a "next" property and a rectangular, non-empty grid.
func FromLayers(source string, layers []formats.Layer) (*Library, error) {
	if len(layers) == 0 {
		return nil, &ConfigError{Source: source, Reason: "no tile layers"}
	}

	lib := &Library{
		source:    source,
		templates: make([]*Template, 0, len(layers)),
		byKey:     make(map[string]*Template, len(layers)),
	}

	for _, layer := range layers {
		t, err := newTemplate(source, layer)
		if err != nil {
			return nil, err
		}
		if _, dup := lib.byKey[t.Key]; dup {
			return nil, &ConfigError{Source: source, Layer: t.Key, Reason: "duplicate layer name"}
		}
		lib.templates = append(lib.templates, t)
		lib.byKey[t.Key] = t
	}
	return lib, nil
}

func newTemplate(source string, layer formats.Layer) (*Template, error) {
	if layer.Name == "" {
		return nil, &ConfigError{Source: source, Reason: "layer without a name"}
	}

	raw, ok := layer.Property(NextProperty)
	if !ok {
		return nil, &ConfigError{Source: source, Layer: layer.Name, Reason: "missing \"next\" property"}
	}

	if len(layer.Grid) == 0 || len(layer.Grid[0]) == 0 {
		return nil, &ConfigError{Source: source, Layer: layer.Name, Reason: "empty tile grid"}
	}
	cols := len(layer.Grid[0])
	data := make([][]int, len(layer.Grid))
	for y, row := range layer.Grid {
		if len(row) != cols {
			return nil, &ConfigError{
				Source: source,
				Layer:  layer.Name,
				Reason: fmt.Sprintf("row %d has %d tiles, expected %d", y, len(row), cols),
			}
		}
		data[y] = append([]int(nil), row...)
	}

	return &Template{
		Key:  layer.Name,
		Next: splitNext(raw),
		Data: data,
	}, nil
}

// splitNext splits a comma-separated successor list, trimming blanks.
func splitNext(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if key := strings.TrimSpace(p); key != "" {
			out = append(out, key)
		}
	}
	return out
}
