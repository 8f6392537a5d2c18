package result

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// cyclicRef replaces map or slice values already seen on the current path.
const cyclicRef = "#ref"

// removeCyclicReferences returns a deep copy of the map with any value that
// refers back to one of its ancestors replaced by a marker, so the result
// is always serializable.
func removeCyclicReferences(m map[string]any) map[string]any {
	seen := map[uintptr]bool{}
	return pruneMap(m, seen)
}

func pruneMap(m map[string]any, seen map[uintptr]bool) map[string]any {
	ptr := reflect.ValueOf(m).Pointer()
	if seen[ptr] {
		return nil
	}
	seen[ptr] = true
	defer delete(seen, ptr)

	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = pruneValue(v, seen)
	}
	return out
}

func pruneValue(v any, seen map[uintptr]bool) any {
	switch t := v.(type) {
	case map[string]any:
		if seen[reflect.ValueOf(t).Pointer()] {
			return cyclicRef
		}
		return pruneMap(t, seen)
	case []any:
		ptr := reflect.ValueOf(t).Pointer()
		if seen[ptr] {
			return cyclicRef
		}
		seen[ptr] = true
		defer delete(seen, ptr)
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = pruneValue(e, seen)
		}
		return out
	default:
		return v
	}
}

func toPrettyJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// toPrimitiveMap reduces a variable map to JSON-primitive terms: numbers,
// strings, bools and nested maps/slices pass through, anything else is
// stringified.
func toPrimitiveMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = toPrimitive(v)
	}
	return out
}

func toPrimitive(v any) any {
	switch t := v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return t
	case map[string]any:
		return toPrimitiveMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = toPrimitive(e)
		}
		return out
	default:
		return fmt.Sprint(t)
	}
}
