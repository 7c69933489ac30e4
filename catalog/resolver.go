package catalog

import (
	"strings"
	"unicode"

	"github.com/hupe1980/steelcat/property"
)

// The fuzzy resolution chain. Each step's normalizer is applied to both the
// query and every candidate designation; the chain stops at the first step
// that produces a match. Step order is contractual: a query differing only
// by case must resolve before one differing by separator removal.

// foldCase lowercases and trims the designation.
func foldCase(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// stripSpace additionally removes all interior whitespace.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, foldCase(s))
}

// stripSeparator additionally removes the region separator. It only applies
// when both sides contain the separator, so "457191x67" can match
// "457x191x67" but a separator-free query never matches by accident.
func stripSeparator(s string, sep byte) string {
	return strings.ReplaceAll(stripSpace(s), string(sep), "")
}

// fuzzyFind recovers a designation after exact lookup failed. The chain is
// deterministic: within one step, types are visited in the given order and
// candidates in catalog iteration order, and the first match wins. Ties are
// not scored further.
func (c *Catalog) fuzzyFind(designation string, types []SectionType) (SectionType, string, property.Record, bool) {
	// Step 1: case-insensitive.
	q := foldCase(designation)
	if st, resolved, rec, ok := c.matchNormalized(types, q, foldCase); ok {
		return st, resolved, rec, true
	}

	// Step 2: whitespace-insensitive.
	q = stripSpace(designation)
	if st, resolved, rec, ok := c.matchNormalized(types, q, stripSpace); ok {
		return st, resolved, rec, true
	}

	// Step 3: separator-insensitive, only when both sides carry the
	// separator.
	sep := string(c.sep)
	if strings.Contains(stripSpace(designation), sep) {
		q = stripSeparator(designation, c.sep)
		for _, st := range types {
			rs := c.sets[st]
			for _, candidate := range rs.Designations() {
				if !strings.Contains(stripSpace(candidate), sep) {
					continue
				}
				if stripSeparator(candidate, c.sep) == q {
					rec, _ := rs.Record(candidate)
					return st, candidate, rec, true
				}
			}
		}
	}

	return "", "", nil, false
}

func (c *Catalog) matchNormalized(types []SectionType, q string, norm func(string) string) (SectionType, string, property.Record, bool) {
	for _, st := range types {
		rs := c.sets[st]
		for _, candidate := range rs.Designations() {
			if norm(candidate) == q {
				rec, _ := rs.Record(candidate)
				return st, candidate, rec, true
			}
		}
	}
	return "", "", nil, false
}
