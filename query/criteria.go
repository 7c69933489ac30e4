package query

import (
	"strings"

	"github.com/hupe1980/steelcat/property"
)

// Op is a comparison operator in a criterion.
type Op uint8

const (
	// OpEqual matches values equal to the criterion value.
	OpEqual Op = iota
	// OpNotEqual matches values not equal to the criterion value.
	OpNotEqual
	// OpGreaterThan matches values greater than the criterion value.
	OpGreaterThan
	// OpLessThan matches values less than the criterion value.
	OpLessThan
	// OpGreaterEqual matches values greater than or equal to the criterion value.
	OpGreaterEqual
	// OpLessEqual matches values less than or equal to the criterion value.
	OpLessEqual
	// OpUnknown marks an unrecognized operator suffix. Criteria with an
	// unknown operator are ignored: every record passes them.
	OpUnknown
)

// String returns the operator suffix ("eq", "gt", ...).
func (op Op) String() string {
	switch op {
	case OpEqual:
		return "eq"
	case OpNotEqual:
		return "ne"
	case OpGreaterThan:
		return "gt"
	case OpLessThan:
		return "lt"
	case OpGreaterEqual:
		return "gte"
	case OpLessEqual:
		return "lte"
	default:
		return "unknown"
	}
}

// Criteria maps "<property>__<op>" keys (or bare "<property>" for implicit
// equality) to comparison values.
type Criteria map[string]any

// Criterion is one parsed (property, operator, value) predicate.
type Criterion struct {
	Property string
	Op       Op
	Value    property.Value

	// valueErr is set when the raw criterion value could not be converted
	// to a typed value. Such a criterion can never be satisfied.
	valueErr error
}

// opBySuffix maps operator suffixes to Ops.
var opBySuffix = map[string]Op{
	"eq":  OpEqual,
	"ne":  OpNotEqual,
	"gt":  OpGreaterThan,
	"lt":  OpLessThan,
	"gte": OpGreaterEqual,
	"lte": OpLessEqual,
}

// Parse converts raw criteria into predicates. It never fails: unknown
// operator suffixes become OpUnknown (ignored at match time) and
// unconvertible values yield predicates that exclude every record.
func Parse(criteria Criteria) []Criterion {
	out := make([]Criterion, 0, len(criteria))
	for key, raw := range criteria {
		c := Criterion{Property: key, Op: OpEqual}
		if prop, suffix, found := strings.Cut(key, "__"); found {
			c.Property = prop
			op, ok := opBySuffix[suffix]
			if !ok {
				op = OpUnknown
			}
			c.Op = op
		}
		v, err := property.FromAny(raw)
		if err != nil {
			c.valueErr = err
		} else {
			c.Value = v
		}
		out = append(out, c)
	}
	return out
}

// match evaluates the criterion against one value. present is false when the
// record does not carry the property at all.
func (c Criterion) match(v property.Value, present bool) bool {
	if c.Op == OpUnknown {
		return true
	}
	if !present || c.valueErr != nil {
		return false
	}

	switch c.Op {
	case OpEqual:
		return property.Equal(v, c.Value)
	case OpNotEqual:
		return !property.Equal(v, c.Value)
	case OpGreaterThan:
		g, ok := property.Greater(v, c.Value)
		return ok && g
	case OpLessThan:
		l, ok := property.Less(v, c.Value)
		return ok && l
	case OpGreaterEqual:
		g, ok := property.Greater(v, c.Value)
		return ok && (g || property.Equal(v, c.Value))
	case OpLessEqual:
		l, ok := property.Less(v, c.Value)
		return ok && (l || property.Equal(v, c.Value))
	default:
		return false
	}
}
