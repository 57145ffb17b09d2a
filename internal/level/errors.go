package level

import "fmt"

// ConfigError reports a malformed or incomplete level definition.
// It is fatal at load time: a library that fails to load has nothing valid
// to stream.
type ConfigError struct {
	Source string // File path or "embedded"
	Layer  string // Offending layer, empty for document-level problems
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Layer == "" {
		return fmt.Sprintf("level: %s: %s", e.Source, e.Reason)
	}
	return fmt.Sprintf("level: %s: layer %q: %s", e.Source, e.Layer, e.Reason)
}
