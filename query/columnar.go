package query

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/steelcat/property"
)

// ColumnarEngine materializes a record source into a column-oriented table
// once, then answers searches by composing per-criterion roaring-bitmap masks
// with AND.
//
// Record sets are immutable after catalog load, so the materialized table is
// cached per source and reused across searches. A reloaded catalog produces
// new record set objects and therefore new table entries.
type ColumnarEngine struct {
	mu     sync.Mutex
	tables map[RecordSource]*colTable
}

// NewColumnarEngine creates a columnar engine with an empty table cache.
func NewColumnarEngine() *ColumnarEngine {
	return &ColumnarEngine{tables: make(map[RecordSource]*colTable)}
}

// colTable is one record set in columnar layout.
//
// Structure: column name -> (presence bitmap, row-aligned values). Row IDs
// are assigned in catalog iteration order, so ascending bitmap iteration
// reproduces the row-scan result order exactly.
type colTable struct {
	designations []string
	columns      map[string]*column
	all          *roaring.Bitmap
}

type column struct {
	present *roaring.Bitmap
	values  []property.Value
}

// Search evaluates the criteria against the materialized table.
func (e *ColumnarEngine) Search(src RecordSource, criteria Criteria) []Match {
	if src == nil {
		return nil
	}

	t := e.table(src)
	preds := Parse(criteria)

	var acc *roaring.Bitmap
	for _, p := range preds {
		if p.Op == OpUnknown {
			// Disabled criterion: contributes no mask.
			continue
		}

		mask := t.mask(p)
		if acc == nil {
			acc = mask
		} else {
			acc.And(mask)
		}
		if acc.IsEmpty() {
			break
		}
	}

	if acc == nil {
		// Empty filter: all rows, matching the row-scan fallback.
		acc = t.all
	}

	results := make([]Match, 0, acc.GetCardinality())
	it := acc.Iterator()
	for it.HasNext() {
		row := it.Next()
		designation := t.designations[row]
		rec, ok := src.Record(designation)
		if !ok {
			continue
		}
		results = append(results, Match{Designation: designation, Record: rec})
	}
	if len(results) == 0 {
		return nil
	}
	return results
}

// table returns the cached columnar table for the source, building it on
// first use.
func (e *ColumnarEngine) table(src RecordSource) *colTable {
	e.mu.Lock()
	defer e.mu.Unlock()

	if t, ok := e.tables[src]; ok {
		return t
	}

	designations := src.Designations()
	t := &colTable{
		designations: designations,
		columns:      make(map[string]*column),
		all:          roaring.New(),
	}
	t.all.AddRange(0, uint64(len(designations)))

	n := len(designations)
	for row, designation := range designations {
		rec, ok := src.Record(designation)
		if !ok {
			continue
		}
		for key, v := range rec {
			col := t.columns[key]
			if col == nil {
				col = &column{
					present: roaring.New(),
					values:  make([]property.Value, n),
				}
				t.columns[key] = col
			}
			col.present.Add(uint32(row))
			col.values[row] = v
		}
	}

	e.tables[src] = t
	return t
}

// mask computes the set of rows satisfying one criterion. A criterion on a
// property no record carries yields the empty mask (no matches), mirroring
// the row-scan exclusion of records missing the property.
func (t *colTable) mask(p Criterion) *roaring.Bitmap {
	mask := roaring.New()
	col, ok := t.columns[p.Property]
	if !ok {
		return mask
	}

	it := col.present.Iterator()
	for it.HasNext() {
		row := it.Next()
		if p.match(col.values[row], true) {
			mask.Add(row)
		}
	}
	return mask
}
