package level

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-runner/internal/level/formats"
)

//go:embed data/segments.yaml
var defaultSegmentsYAML []byte

// Default returns the library built into the binary.
func Default() (*Library, error) {
	return Parse("embedded", defaultSegmentsYAML, ".yaml")
}

// Parse builds a library from a document held in memory.
// ext selects the format (".json", ".yaml", ".yml").
func Parse(source string, data []byte, ext string) (*Library, error) {
	layers, err := formats.Parse(data, strings.ToLower(ext))
	if err != nil {
		return nil, &ConfigError{Source: source, Reason: err.Error()}
	}
	return FromLayers(source, layers)
}

// Load reads a library from a file or, when path is a directory, from every
// supported file inside it. An empty path selects the embedded default.
func Load(path string) (*Library, error) {
	if path == "" {
		return Default()
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("level: cannot open %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	return LoadFile(path)
}

// LoadFile loads a single level document.
func LoadFile(path string) (*Library, error) {
	layers, err := readLayers(path)
	if err != nil {
		return nil, err
	}
	return FromLayers(path, layers)
}

// LoadDir recursively scans root and merges the layers of every supported
// file. Files are visited in lexical order so template order is stable.
func LoadDir(root string) (*Library, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("level: walking directory %s: %w", root, err)
	}
	sort.Strings(paths)

	var layers []formats.Layer
	for _, path := range paths {
		fileLayers, err := readLayers(path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, fileLayers...)
	}
	return FromLayers(root, layers)
}

func readLayers(path string) ([]formats.Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: reading file %s: %w", path, err)
	}
	layers, err := formats.Parse(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, &ConfigError{Source: path, Reason: err.Error()}
	}
	return layers, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
