package draft

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// PruneNulls removes every literal null from d, recursively, together with
// any object or array that became empty because all of its members were
// null. Containers that were already empty are kept: `{"google_search":{}}`
// is meaningful on the wire.
func PruneNulls(d Draft) Draft {
	out := make(Draft, len(d))
	for k, v := range d {
		if pv, keep := pruneValue(v); keep {
			out[k] = pv
		}
	}
	return out
}

func pruneValue(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case Draft:
		return pruneValue(map[string]any(t))
	case map[string]any:
		if len(t) == 0 {
			return map[string]any{}, true
		}
		out := make(map[string]any, len(t))
		for k, e := range t {
			if pe, keep := pruneValue(e); keep {
				out[k] = pe
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	case []any:
		if len(t) == 0 {
			return []any{}, true
		}
		out := make([]any, 0, len(t))
		for _, e := range t {
			if pe, keep := pruneValue(e); keep {
				out = append(out, pe)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	default:
		return CloneValue(v), true
	}
}

// MergeFlat overwrites base's top-level keys with overlay's. A nil overlay
// value deletes the key.
func MergeFlat(base, overlay Draft) Draft {
	out := base.Clone()
	if out == nil {
		out = Draft{}
	}
	for k, v := range overlay {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = CloneValue(v)
	}
	return out
}

// MergeDeep merges overlay into base key by key, recursing where both sides
// hold objects. Arrays and scalars are replaced. A nil overlay value deletes
// the key at that level.
func MergeDeep(base, overlay Draft) Draft {
	out := base.Clone()
	if out == nil {
		out = Draft{}
	}
	mergeInto(out, overlay)
	return out
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		if v == nil {
			delete(dst, k)
			continue
		}
		sm, ok := Object(v)
		if !ok {
			dst[k] = CloneValue(v)
			continue
		}
		dm, ok := Object(dst[k])
		if !ok {
			dm = map[string]any{}
		}
		mergeInto(dm, sm)
		dst[k] = dm
	}
}

// Equal reports whether two JSON values are structurally equal. Numbers
// compare by value regardless of their Go type, so the int a builder emits
// equals the json.Number or float64 a parser produced.
func Equal(a, b any) bool {
	return cmp.Equal(normalize(a), normalize(b))
}

func normalize(v any) any {
	switch t := v.(type) {
	case Draft:
		return normalize(map[string]any(t))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case []string, []map[string]any:
		return normalize(CloneValue(t))
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}

// Remainder returns the part of observed that rebuilt does not reproduce.
//
// A top-level key is dropped only when its observed value equals the rebuilt
// one. With nested set, differing objects are diffed key by key so that only
// the differing sub-keys remain; that output is meant to be merged back with
// MergeDeep. Keys present in rebuilt but missing from observed are recorded as
// nil, which both merge functions treat as a deletion, so merging the
// remainder into the rebuilt draft reproduces observed exactly.
func Remainder(observed, rebuilt Draft, nested bool) Draft {
	return Draft(diff(observed, rebuilt, nested))
}

func diff(observed, rebuilt map[string]any, nested bool) map[string]any {
	out := map[string]any{}
	for k, ov := range observed {
		rv, ok := rebuilt[k]
		if !ok {
			out[k] = CloneValue(ov)
			continue
		}
		if Equal(ov, rv) {
			continue
		}
		if nested {
			om, ook := Object(ov)
			rm, rok := Object(rv)
			if ook && rok {
				out[k] = diff(om, rm, true)
				continue
			}
		}
		out[k] = CloneValue(ov)
	}
	for k := range rebuilt {
		if _, ok := observed[k]; !ok {
			out[k] = nil
		}
	}
	return out
}

// Object returns v as a JSON object.
func Object(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case Draft:
		return t, true
	default:
		return nil, false
	}
}

// Array returns v as a JSON array.
func Array(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []map[string]any, []string:
		return CloneValue(t).([]any), true
	default:
		return nil, false
	}
}

// Strings returns v as a list of strings. Any non-string element fails.
func Strings(v any) ([]string, bool) {
	if s, ok := v.([]string); ok {
		return append([]string(nil), s...), true
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		s, ok := e.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// Float coerces numbers and numeric strings.
func Float(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t) && !math.IsInf(t, 0)
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return 0, false
	}
}

// Int coerces integral numbers and numeric strings. Fractional values fail.
func Int(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i), true
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return i, true
		}
	}
	f, ok := Float(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32*float64(1<<31) {
		return 0, false
	}
	return int(f), true
}

// String returns v when it is a JSON string.
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// Bool coerces booleans, "true"/"false" strings and the numbers 0 and 1.
func Bool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return false, false
	}
	if f, ok := Float(v); ok {
		switch f {
		case 0:
			return false, true
		case 1:
			return true, true
		}
	}
	return false, false
}
