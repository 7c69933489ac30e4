// Package catalog provides the immutable in-memory record store for regional
// steel section data, plus designation resolution.
//
// A Catalog maps section types to record sets keyed by designation. It is
// built once from a Source and treated as read-only afterwards: a reload
// produces a fresh Catalog rather than mutating the shared one, so a shared
// handle can be swapped with a single pointer assignment.
//
// # Sources
//
// A Source describes one region's data: which section types it supports, how
// to open the resource backing each type, and which separator its designation
// grammar uses (e.g. 'x' in "457x191x67"). Regions implement Source once;
// DirSource covers the common one-JSON-file-per-type layout.
//
// Failure to load one type never aborts the catalog build. A malformed
// resource is logged and yields an empty record set; a missing resource is
// not an error and leaves the type unloaded (not-loaded and empty are
// distinct states).
//
// # Designation Resolution
//
// Exact lookup is O(1). When it misses, Find falls back to a deterministic,
// ordered chain of normalizations: case folding, then whitespace removal,
// then removal of the source separator when both query and candidate contain
// it. The chain stops at the first match; ties within one step resolve to the
// first candidate in catalog iteration order. This is documented behavior,
// not scoring: ambiguous fuzzy matches are resolved deterministically, never
// ranked.
//
// Suggestions (Suggest, SuggestAcrossTypes) are a separate concern: they rank
// candidates by string similarity against the raw query for use in error
// messages only, and are never used to silently resolve a lookup.
package catalog
