package formats

import (
	"fmt"
	"maps"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLDocument represents the YAML structure for a segment file.
type YAMLDocument struct {
	Segments []YAMLSegment `yaml:"segments"`
}

// YAMLSegment is one tile layer in YAML form.
// The grid is given either as Rows (one character per tile) or as Data.
// Successors go in Next or in the "next" property; Next wins when both are set.
type YAMLSegment struct {
	Key        string            `yaml:"key"`
	Next       *YAMLNext         `yaml:"next,omitempty"`
	Properties map[string]string `yaml:"properties"`
	Rows       []string          `yaml:"rows,omitempty"`
	Data       [][]int           `yaml:"data,omitempty"`
}

// YAMLNext accepts successor keys as a comma-separated string or a list.
type YAMLNext string

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *YAMLNext) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*n = YAMLNext(value.Value)
		return nil
	case yaml.SequenceNode:
		var keys []string
		if err := value.Decode(&keys); err != nil {
			return err
		}
		*n = YAMLNext(strings.Join(keys, ","))
		return nil
	default:
		return fmt.Errorf("line %d: next must be a string or a list", value.Line)
	}
}

// ParseYAML parses a YAML segment file.
func ParseYAML(data []byte) ([]Layer, error) {
	var doc YAMLDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	layers := make([]Layer, 0, len(doc.Segments))
	for _, s := range doc.Segments {
		grid := s.Data
		if len(s.Rows) > 0 {
			var err error
			grid, err = parseRows(s.Rows)
			if err != nil {
				return nil, fmt.Errorf("segment %q: %w", s.Key, err)
			}
		}
		props := s.Properties
		if s.Next != nil {
			props = make(map[string]string, len(s.Properties)+1)
			maps.Copy(props, s.Properties)
			props["next"] = string(*s.Next)
		}
		layers = append(layers, Layer{
			Name:       s.Key,
			Properties: props,
			Grid:       grid,
		})
	}
	return layers, nil
}

// parseRows converts character rows to tile indices.
// '.' and ' ' are empty, '#' is tile 1, digits are their own tile id.
func parseRows(rows []string) ([][]int, error) {
	grid := make([][]int, len(rows))
	for y, row := range rows {
		cells := make([]int, 0, len(row))
		for _, r := range row {
			switch {
			case r == '.' || r == ' ':
				cells = append(cells, 0)
			case r == '#':
				cells = append(cells, 1)
			case r >= '0' && r <= '9':
				cells = append(cells, int(r-'0'))
			default:
				return nil, fmt.Errorf("row %d: unknown tile %q", y, r)
			}
		}
		grid[y] = cells
	}
	return grid, nil
}
