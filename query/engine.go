package query

import "github.com/hupe1980/steelcat/property"

// RecordSource provides ordered access to one section type's records.
// catalog.RecordSet implements it; record sets are immutable after load.
type RecordSource interface {
	// Len returns the number of records.
	Len() int

	// Designations returns all designations in catalog iteration order
	// (source insertion order). The returned slice must not be modified.
	Designations() []string

	// Record returns the record for a designation.
	Record(designation string) (property.Record, bool)
}

// Match is one search hit: a designation and its record.
type Match struct {
	Designation string
	Record      property.Record
}

// Engine evaluates criteria against a record source.
//
// Implementations are interchangeable: for any source and criteria they must
// return identical result sets in identical (catalog iteration) order.
type Engine interface {
	Search(src RecordSource, criteria Criteria) []Match
}
