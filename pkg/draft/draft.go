// Package draft models provider-native request payloads as JSON value trees.
//
// A Draft is a JSON object whose values are nil, bool, float64 (or
// json.Number when parsed), int (when built), string, []any or
// map[string]any. The package provides the tree operations the engine is
// built from: parsing, cloning, null pruning, flat and deep merges,
// numeric-tolerant equality, the promotion diff and loose value coercion.
// None of these operations mutate their inputs.
package draft

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/agentstation/genctl/pkg/errors"
)

// Draft is a provider-native JSON object.
type Draft map[string]any

// Parse decodes a JSON object. Numbers are kept as json.Number so values
// survive a round trip through the engine with their original spelling.
func Parse(data []byte) (Draft, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var d Draft
	if err := dec.Decode(&d); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	if dec.More() {
		return nil, errors.NewParseError("json", "", "unexpected data after top-level object", nil)
	}
	if d == nil {
		d = Draft{}
	}
	return d, nil
}

// MustParse is like Parse but panics on error. It is meant for tests and fixtures.
func MustParse(s string) Draft {
	d, err := Parse([]byte(s))
	if err != nil {
		panic(err)
	}
	return d
}

// JSON encodes the draft with sorted keys, indented when indent is true.
func (d Draft) JSON(indent bool) ([]byte, error) {
	if d == nil {
		d = Draft{}
	}
	if indent {
		return json.MarshalIndent(d, "", "  ")
	}
	return json.Marshal(d)
}

// String returns the compact JSON encoding, or "{}" if encoding fails.
func (d Draft) String() string {
	b, err := d.JSON(false)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Keys returns the top-level keys in sorted order.
func (d Draft) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy. Cloning nil returns nil.
func (d Draft) Clone() Draft {
	if d == nil {
		return nil
	}
	out := make(Draft, len(d))
	for k, v := range d {
		out[k] = CloneValue(v)
	}
	return out
}

// CloneValue deep-copies a JSON value. Nested Drafts become plain maps.
func CloneValue(v any) any {
	switch t := v.(type) {
	case Draft:
		return cloneMap(t)
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = CloneValue(e)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneMap(e)
		}
		return out
	default:
		return v
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = CloneValue(v)
	}
	return out
}

// Lookup walks nested objects along path.
func Lookup(m map[string]any, path ...string) (any, bool) {
	var cur any = m
	for _, key := range path {
		obj, ok := Object(cur)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Set stores value at path, creating intermediate objects as needed.
// An intermediate that is not an object is replaced.
func Set(m map[string]any, value any, path ...string) {
	if len(path) == 0 {
		return
	}
	cur := m
	for _, key := range path[:len(path)-1] {
		next, ok := Object(cur[key])
		if !ok {
			next = map[string]any{}
			cur[key] = next
		}
		cur = next
	}
	cur[path[len(path)-1]] = value
}
