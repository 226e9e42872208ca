package causalgraph

import "math"

// copyMeta deep copies a metadata map. Nested string-keyed maps and slices
// are copied recursively; every other value is copied by assignment.
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = copyMetaValue(v)
	}
	return out
}

func copyMetaValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return copyMeta(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = copyMetaValue(e)
		}
		return out
	default:
		return v
	}
}

// intFromAny converts the numeric encodings the supported wire formats
// produce back into an int. JSON decodes integers as float64, YAML as int
// and msgpack as sized ints; all of them are accepted as long as the value
// is integral and in range.
func intFromAny(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int8:
		return int(x), true
	case int16:
		return int(x), true
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case uint8:
		return int(x), true
	case uint16:
		return int(x), true
	case uint32:
		return int(x), true
	case uint64:
		if x > math.MaxInt {
			return 0, false
		}
		return int(x), true
	case float32:
		return intFromFloat(float64(x))
	case float64:
		return intFromFloat(x)
	default:
		return 0, false
	}
}

func intFromFloat(f float64) (int, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	if f > math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}

// floatFromAny converts any supported numeric encoding to float64 for
// value-based comparison.
func floatFromAny(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

// metaEqual compares two metadata maps by value. Numeric values are compared
// numerically regardless of their concrete Go type, so a map round-tripped
// through JSON (which widens ints to float64) still compares equal to its
// source.
func metaEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !metaValueEqual(av, bv) {
			return false
		}
	}
	return true
}

func metaValueEqual(a, b any) bool {
	if af, ok := floatFromAny(a); ok {
		bf, ok := floatFromAny(b)
		return ok && af == bf
	}
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		return ok && metaEqual(av, bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !metaValueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
