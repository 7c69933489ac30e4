// Package query implements the criteria search engine over catalog record sets.
//
// A query is a conjunction (AND) of criteria against one section type.
// Criteria keys use Django-style operator suffixes:
//
//	criteria := query.Criteria{
//	    "mass_per_metre__gt": 50,
//	    "h__lte":             500.0,
//	    "serial_size":        "457x191", // bare key means equality
//	}
//
// Matching is deliberately permissive rather than schema-strict:
//
//   - a record missing the property is excluded, not an error
//   - an ordering comparison between incomparable types excludes the record
//   - an UNRECOGNIZED operator suffix silently disables that criterion, so
//     every record passes it (documented and load-bearing: callers rely on
//     unknown suffixes never filtering)
//
// Two interchangeable engines are provided. ScanEngine walks records row by
// row; ColumnarEngine materializes a record set into columns once and applies
// composed roaring-bitmap masks. Both return identical result sets in catalog
// iteration order for any input; when every criterion is unrecognized both
// degrade to returning all rows.
package query
