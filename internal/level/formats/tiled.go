package formats

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// tiledMap is the subset of a Tiled JSON map the runner reads.
type tiledMap struct {
	Layers []tiledLayer `json:"layers"`
}

type tiledLayer struct {
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Data       []int           `json:"data"`
	Properties tiledProperties `json:"properties"`
	Layers     []tiledLayer    `json:"layers"` // Children of a group layer
}

type tiledProperty struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// tiledProperties holds custom properties. Tiled 1.2 and later write them as
// an array of typed entries; older exports write a plain name to value object.
type tiledProperties map[string]string

// UnmarshalJSON implements json.Unmarshaler.
func (p *tiledProperties) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = nil
		return nil
	}

	out := make(tiledProperties)
	if len(data) > 0 && data[0] == '{' {
		var obj map[string]any
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		for name, v := range obj {
			out[name] = fmt.Sprint(v)
		}
	} else {
		var list []tiledProperty
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		for _, prop := range list {
			out[prop.Name] = fmt.Sprint(prop.Value)
		}
	}
	if len(out) == 0 {
		out = nil
	}
	*p = out
	return nil
}

// ParseTiled parses a Tiled map exported as JSON.
// Only tile layers are returned, with group layers flattened in document
// order; object and image layers are skipped.
// Tile data is row-major with 0 meaning no tile.
func ParseTiled(data []byte) ([]Layer, error) {
	var m tiledMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return appendTiledLayers(nil, m.Layers)
}

func appendTiledLayers(layers []Layer, tls []tiledLayer) ([]Layer, error) {
	for _, tl := range tls {
		switch tl.Type {
		case "group":
			var err error
			if layers, err = appendTiledLayers(layers, tl.Layers); err != nil {
				return nil, err
			}
			continue
		case "", "tilelayer":
		default:
			continue
		}

		if tl.Width <= 0 || tl.Height <= 0 {
			return nil, fmt.Errorf("layer %q: invalid size %dx%d", tl.Name, tl.Width, tl.Height)
		}
		if len(tl.Data) != tl.Width*tl.Height {
			return nil, fmt.Errorf("layer %q: data has %d tiles, expected %d",
				tl.Name, len(tl.Data), tl.Width*tl.Height)
		}

		grid := make([][]int, tl.Height)
		for y := range grid {
			grid[y] = append([]int(nil), tl.Data[y*tl.Width:(y+1)*tl.Width]...)
		}

		layers = append(layers, Layer{
			Name:       tl.Name,
			Properties: tl.Properties,
			Grid:       grid,
		})
	}
	return layers, nil
}
