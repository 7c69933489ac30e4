package query

// ScanEngine is the reference row-scan engine: O(records × criteria), no
// preprocessing, no per-source state. Use it as the baseline the columnar
// engine is checked against.
type ScanEngine struct{}

// NewScanEngine creates a row-scan engine.
func NewScanEngine() *ScanEngine { return &ScanEngine{} }

// Search evaluates the criteria against every record in order.
func (e *ScanEngine) Search(src RecordSource, criteria Criteria) []Match {
	if src == nil {
		return nil
	}

	preds := Parse(criteria)
	var results []Match

	for _, designation := range src.Designations() {
		rec, ok := src.Record(designation)
		if !ok {
			continue
		}

		matched := true
		for _, p := range preds {
			v, present := rec[p.Property]
			if !p.match(v, present) {
				matched = false
				break
			}
		}

		if matched {
			results = append(results, Match{Designation: designation, Record: rec})
		}
	}

	return results
}
