package export

import (
	"sort"
	"strings"

	gojson "github.com/goccy/go-json"
)

// sqlType is the closed set of inferred column types.
type sqlType string

const (
	sqlText    sqlType = "TEXT"
	sqlReal    sqlType = "REAL"
	sqlInteger sqlType = "INTEGER"
)

// inferType samples all non-null values of a candidate column. Any textual
// value forces TEXT; otherwise any float forces REAL; otherwise any integer
// or boolean yields INTEGER; an all-null column defaults to TEXT.
func inferType(values []any) sqlType {
	var seenText, seenReal, seenInt bool

	for _, v := range values {
		switch x := v.(type) {
		case nil:
			continue
		case bool:
			seenInt = true
		case int, int64:
			seenInt = true
		case float32:
			seenReal = true
		case float64:
			seenReal = true
		case gojson.Number:
			if _, err := x.Int64(); err == nil {
				seenInt = true
			} else {
				seenReal = true
			}
		case string:
			seenText = true
		default:
			seenText = true
		}
	}

	switch {
	case seenText:
		return sqlText
	case seenReal:
		return sqlReal
	case seenInt:
		return sqlInteger
	default:
		return sqlText
	}
}

// reservedColumns are the columns every table provides itself. A source
// field whose normalized name collides with one is never surfaced as a
// column; it stays available in the data payload.
var reservedColumns = map[string]bool{
	"id":         true,
	"data":       true,
	"created_at": true,
}

// analyzeColumns determines the column set and types for a row batch. Column
// names are normalized first, so two source fields differing only by case
// collapse into one column — intentional collision behavior. A designation
// column is always present.
func analyzeColumns(rows []row) map[string]sqlType {
	samples := make(map[string][]any)

	for _, r := range rows {
		for key, value := range r.values {
			col := normalizeColumnName(key)
			if reservedColumns[col] {
				continue
			}
			samples[col] = append(samples[col], value)
		}
		if r.category != "" {
			samples["category"] = append(samples["category"], r.category)
		}
	}

	samples["designation"] = append(samples["designation"], "")

	types := make(map[string]sqlType, len(samples))
	for col, vals := range samples {
		types[col] = inferType(vals)
	}
	return types
}

// sortedColumns returns the inferred column names in stable order.
func sortedColumns(types map[string]sqlType) []string {
	cols := make([]string, 0, len(types))
	for c := range types {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// normalizeColumnName maps a source field to a safe identifier: lowercase
// alphanumerics and underscores, never starting with a digit.
func normalizeColumnName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 1)
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
	}
	s := b.String()
	if s == "" || s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return s
}

// sanitizeTableName maps a section type tag to a safe table identifier.
func sanitizeTableName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "SECTIONS"
	}
	s := b.String()
	if s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return s
}
