package property

import "strings"

// ReservedPrefix marks internal metadata keys inside a record. Reserved keys
// are annotations added by the loader (e.g. owning section type) and must
// never reach a section constructor.
const ReservedPrefix = "_"

// KeySectionType is the reserved key under which the catalog loader annotates
// every record with its owning section type, so cross-type searches can
// report provenance.
const KeySectionType = "_section_type"

// KeyDesignation is the conventional property holding a record's natural key.
const KeyDesignation = "designation"

// Record is an untyped property bag for one designation.
type Record map[string]Value

// IsReserved reports whether the key is an internal metadata key.
func IsReserved(key string) bool { return strings.HasPrefix(key, ReservedPrefix) }

// Clone creates a copy of the record. Values are immutable scalars, so a
// shallow map copy is a full copy.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	clone := make(Record, len(r))
	for k, v := range r {
		clone[k] = v
	}
	return clone
}

// Clean returns a copy of the record with all reserved keys stripped.
func (r Record) Clean() Record {
	clean := make(Record, len(r))
	for k, v := range r {
		if IsReserved(k) {
			continue
		}
		clean[k] = v
	}
	return clean
}

// Plain converts the record to a map of plain Go values.
func (r Record) Plain() map[string]any {
	if r == nil {
		return nil
	}
	out := make(map[string]any, len(r))
	for k, v := range r {
		out[k] = v.Any()
	}
	return out
}

// Float returns the property as a float64, coercing integer values.
func (r Record) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	switch v.Kind {
	case KindFloat:
		return v.F64, true
	case KindInt:
		return float64(v.I64), true
	default:
		return 0, false
	}
}

// Int returns the property as an int64.
func (r Record) Int(key string) (int64, bool) {
	v, ok := r[key]
	if !ok || v.Kind != KindInt {
		return 0, false
	}
	return v.I64, true
}

// String returns the property as a string.
func (r Record) String(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v.Kind != KindString {
		return "", false
	}
	return v.StringValue(), true
}

// Bool returns the property as a bool.
func (r Record) Bool(key string) (bool, bool) {
	v, ok := r[key]
	if !ok || v.Kind != KindBool {
		return false, false
	}
	return v.B, true
}

// SectionType returns the reserved section-type annotation, if present.
func (r Record) SectionType() (string, bool) {
	return r.String(KeySectionType)
}
