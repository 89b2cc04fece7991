// Package normalize maps raw feed payloads into the fixed tabular row shape.
package normalize

import "strconv"

// Decode converts the feed's two-part fixed-point money representation into
// a float64.
//
// The wire shape is an object with "units" (integer as string) and "nanos"
// (integer, scale 1e-9): decoded value = units + nanos/1e9.
//
// Edge policy: anything that is not an object, or lacks "units", decodes to
// 0.0. A missing "nanos" counts as 0. Decode never fails; the caller cannot
// distinguish "absent" from "zero", which matches the feed's semantics.
func Decode(v any) float64 {
	m, ok := v.(map[string]any)
	if !ok {
		return 0.0
	}

	units, ok := m["units"]
	if !ok {
		return 0.0
	}
	out := toFloat(units)

	if nanos, ok := m["nanos"]; ok {
		out += toFloat(nanos) / 1e9
	}
	return out
}

// toFloat coerces the loosely-typed JSON values the feed emits: units come
// as strings, nanos as numbers, but both appear in either form.
func toFloat(v any) float64 {
	switch t := v.(type) {
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0.0
		}
		return f
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return 0.0
	}
}
