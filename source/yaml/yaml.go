// Package yaml decodes YAML bytes into the external representation taffy
// types accept. Mapping keys are normalized to strings, so documents with
// non-string scalar keys still load through Dict and Object schemas.
package yaml

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Decode parses a single YAML document.
func Decode(b []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return normalize(v), nil
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}
