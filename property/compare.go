package property

// Comparison semantics mirror the permissive tri-state matching of the query
// engine: equality is defined across all kinds (and numerically across
// Int/Float/Bool), while ordering is only defined for numbers and for
// string/string pairs. An undefined ordering is reported via ok=false, never
// as an error.

// Equal compares two values for equality. Numeric kinds compare by value
// (Int(67) equals Float(67.0), Bool(true) equals Int(1)); otherwise mismatched
// kinds are simply unequal.
func Equal(a, b Value) bool {
	if a.Kind == KindNull && b.Kind == KindNull {
		return true
	}
	if a.Kind == KindNull || b.Kind == KindNull {
		return false
	}

	if isNumber(a) && isNumber(b) {
		// Prefer exact int compare when possible.
		if a.Kind == KindInt && b.Kind == KindInt {
			return a.I64 == b.I64
		}
		return asFloat64(a) == asFloat64(b)
	}

	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case KindString:
		return a.s == b.s
	default:
		return false
	}
}

// Less reports whether a < b. ok is false when the pair has no native
// ordering (e.g. string vs number, or either side null).
func Less(a, b Value) (less, ok bool) {
	if isNumber(a) && isNumber(b) {
		return asFloat64(a) < asFloat64(b), true
	}
	if a.Kind == KindString && b.Kind == KindString {
		return a.s.Value() < b.s.Value(), true
	}
	return false, false
}

// Greater reports whether a > b. ok is false when the pair has no native
// ordering.
func Greater(a, b Value) (greater, ok bool) {
	if isNumber(a) && isNumber(b) {
		return asFloat64(a) > asFloat64(b), true
	}
	if a.Kind == KindString && b.Kind == KindString {
		return a.s.Value() > b.s.Value(), true
	}
	return false, false
}

func isNumber(v Value) bool {
	return v.Kind == KindInt || v.Kind == KindFloat || v.Kind == KindBool
}

func asFloat64(v Value) float64 {
	switch v.Kind {
	case KindInt:
		return float64(v.I64)
	case KindFloat:
		return v.F64
	case KindBool:
		if v.B {
			return 1
		}
		return 0
	default:
		return 0
	}
}
