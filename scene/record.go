package scene

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// Record is the plain-data form of a node, as produced by ToObject and
// consumed by constructors and FromObject. Values are float64, string,
// bool, nil, []any or Record, which is what encoding/json produces.
type Record = map[string]any

func clone(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// merge returns defaults overlaid with opts.
func merge(defaults, opts Record) Record {
	out := clone(defaults)
	for k, v := range opts {
		out[k] = v
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func toBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func toString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case nil:
		return "", true
	case fmt.Stringer:
		return s.String(), true
	}
	return "", false
}

// toFloats accepts []float64, []any of numbers and nil.
func toFloats(v any) ([]float64, bool) {
	switch a := v.(type) {
	case nil:
		return nil, true
	case []float64:
		return append([]float64(nil), a...), true
	case []int:
		out := make([]float64, len(a))
		for i, n := range a {
			out[i] = float64(n)
		}
		return out, true
	case []any:
		out := make([]float64, len(a))
		for i, e := range a {
			f, ok := toFloat(e)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	}
	return nil, false
}

func toRecord(v any) (Record, bool) {
	r, ok := v.(map[string]any)
	return r, ok
}

func floatsToAny(v []float64, digits int) []any {
	if v == nil {
		return nil
	}
	out := make([]any, len(v))
	for i, f := range v {
		out[i] = round(f, digits)
	}
	return out
}

// round rounds v to digits fractional digits. Negative digits disable
// rounding.
func round(v float64, digits int) float64 {
	if digits < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(digits))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0
	}
	return r
}

// sameValue compares property values the way default elision needs:
// numbers by value, empty lists equal to nil.
func sameValue(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	if isEmptyList(a) && isEmptyList(b) {
		return true
	}
	return reflect.DeepEqual(a, b)
}

func isEmptyList(v any) bool {
	switch a := v.(type) {
	case nil:
		return true
	case []any:
		return len(a) == 0
	case []float64:
		return len(a) == 0
	}
	return false
}

func errInvalid(key string, v any) error {
	return fmt.Errorf("%w: %s = %#v", ErrInvalidValue, key, v)
}
