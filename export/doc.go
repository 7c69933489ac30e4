// Package export materializes catalog data into a relational SQLite store
// without any declared schema, and reads it back.
//
// The exporter flattens a heterogeneous record source into rows, infers a
// column type for every surfaced scalar property (TEXT/REAL/INTEGER), and
// writes one table per section type. Every row keeps the full original
// record serialized verbatim in an opaque "data" column, so flattening never
// loses information even when a field cannot be represented as a column.
//
// Materialization is idempotent: inserts are upserts keyed on the unique
// designation column, so re-running the exporter on an unchanged source
// produces no duplicate rows. An existing database file is left untouched
// unless a forced rebuild is requested.
//
// Retrieval (Store) operates directly on the persisted tables, bypassing the
// in-memory catalog. Its search supports simple equality only — a narrower
// contract than the in-memory query engine's comparison operators. The
// asymmetry is intentional and documented, not reconciled.
//
// The store is a single on-disk SQLite file accessed through the pure-Go
// modernc.org/sqlite driver; connections are opened and closed per call.
package export
