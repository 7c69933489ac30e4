package property

import (
	"fmt"
	"math"

	gojson "github.com/goccy/go-json"
)

// FromAny converts a Go value into a typed Value.
//
// This exists as an adapter layer for user input (query criteria) and for
// freshly-decoded JSON source data.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		// JSON numbers decode as float64; keep whole numbers with an
		// exact integer representation as floats anyway, since the
		// source format does not distinguish 10 from 10.0 reliably.
		return Float(x), nil
	case float32:
		return Float(float64(x)), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Int(int64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		if x > uint64(math.MaxInt64) {
			// Avoid silently truncating large values.
			return Value{}, fmt.Errorf("property uint64 out of range: %d", x)
		}
		return Int(int64(x)), nil
	case gojson.Number:
		if i, err := x.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("property number %q: %w", x.String(), err)
		}
		return Float(f), nil
	default:
		return Value{}, fmt.Errorf("unsupported property value type %T", v)
	}
}

// RecordFromAny converts a decoded map[string]any into a Record.
//
// Scalar values map to their Kind; nested objects and arrays are preserved
// as raw JSON text so that no information is lost for non-tabular fields.
func RecordFromAny(m map[string]any) (Record, error) {
	rec := make(Record, len(m))
	for k, v := range m {
		switch v.(type) {
		case map[string]any, []any:
			raw, err := gojson.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", k, err)
			}
			rec[k] = String(string(raw))
		default:
			vv, err := FromAny(v)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", k, err)
			}
			rec[k] = vv
		}
	}
	return rec, nil
}
