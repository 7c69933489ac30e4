// Package property provides the typed value and record model for steelcat.
//
// A section record is an untyped property bag keyed by property name. Values
// are small typed scalars rather than interface{} so that filtering and
// schema inference are predictable: no reflection and no fmt-based
// stringification.
//
// # Value Types
//
// Property values can be:
//
//   - String: property.String("S355")
//   - Int: property.Int(10)
//   - Float: property.Float(67.1)
//   - Bool: property.Bool(true)
//   - Null: property.Null()
//
// Example:
//
//	rec := property.Record{
//	    "mass_per_metre": property.Float(67.1),
//	    "h":              property.Float(453.4),
//	    "is_additional":  property.Bool(false),
//	}
//
// # Reserved Keys
//
// Keys starting with "_" are internal metadata (e.g. the owning section type
// annotated by the catalog loader). They are never domain properties and are
// stripped by Record.Clean before a record reaches a section constructor.
package property
