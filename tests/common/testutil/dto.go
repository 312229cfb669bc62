//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"
)

// DtoMap marshals a DTO through JSON into a mutable map so tests can
// tweak or drop individual fields before sending the request.
func DtoMap(t *testing.T, v any, muts ...func(map[string]any)) map[string]any {
	t.Helper()
	b, _ := json.Marshal(v)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	for _, f := range muts {
		f(m)
	}
	return m
}

// Field sets a key in the request map, or deletes it when value is nil.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}
