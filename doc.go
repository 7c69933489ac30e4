// Package steelcat is a regional reference-data catalog for structural steel
// cross-sections.
//
// Given a human-entered designation string (e.g. "457x191x67"), steelcat
// resolves the matching record from an immutable in-memory catalog, exposes
// it as a typed section, and supports ad-hoc property filtering plus durable
// export to an embedded relational store.
//
// # Architecture
//
//   - catalog: immutable record store per region, loaded once from a Source;
//     exact O(1) lookup plus a deterministic fuzzy resolution chain.
//   - query: criteria search with Django-style operator suffixes and two
//     interchangeable engines (row scan, columnar with roaring bitmaps).
//   - export: schema-inferring exporter into a SQLite database, one table per
//     section type, with point lookup and equality search on the stored data.
//   - snapshot: compressed single-file catalog snapshots for fast startup.
//   - root package: the type registry and factory producing typed sections,
//     with an error taxonomy carrying did-you-mean suggestions.
//
// # Quick Start
//
//	cat := catalog.Load(uk.NewSource(os.DirFS("data/UK")))
//	factory := uk.NewFactory(cat)
//
//	section, err := factory.Create("457x191x67", uk.UB)
//	if err != nil {
//	    var nfe *steelcat.NotFoundError
//	    if errors.As(err, &nfe) {
//	        fmt.Println(nfe.Suggestions)
//	    }
//	    return err
//	}
//	fmt.Println(section.Designation())
//
// Searching:
//
//	matches := cat.Search(uk.UB, query.Criteria{"mass_per_metre__gt": 50})
//
// Exporting:
//
//	exporter := export.NewExporter("uk_sections.sqlite3")
//	err := exporter.Materialize(ctx, cat, false)
//
// # Concurrency
//
// All operations are synchronous. A loaded catalog is immutable and safe to
// share read-only; a reload produces a fresh catalog to be swapped into any
// shared handle with a single pointer assignment.
package steelcat
