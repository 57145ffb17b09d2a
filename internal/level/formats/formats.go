// Package formats provides pluggable tile-map document parsers.
// Every parser yields the same neutral Layer shape; the level package turns
// layers into segment templates and enforces the template rules.
package formats

import "fmt"

// Layer is one named tile layer read from a level document.
type Layer struct {
	Name       string
	Properties map[string]string
	Grid       [][]int // rows x columns, 0 = empty
}

// Property returns a layer property and whether it was present.
func (l Layer) Property(name string) (string, bool) {
	if l.Properties == nil {
		return "", false
	}
	v, ok := l.Properties[name]
	return v, ok
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".json", ".yaml", ".yml"}
}

// Parse routes to the parser registered for ext.
func Parse(data []byte, ext string) ([]Layer, error) {
	switch ext {
	case ".json":
		return ParseTiled(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}
