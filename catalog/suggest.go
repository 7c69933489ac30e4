package catalog

import "sort"

// Suggestion generation for error messages. Candidates are ranked by
// similarity against the RAW query (not normalized) and only the best few
// above a threshold are returned. This is deliberately separate from the
// fuzzy resolution chain and is never used to silently resolve a lookup.

// suggestCutoff is the minimum similarity for a candidate to be suggested.
// Similarity is 1 - levenshtein(a, b)/max(len(a), len(b)); 0.6 keeps the
// suggestions from getting noisy on short designations.
const suggestCutoff = 0.6

// Suggest returns up to n designations from one type that are similar to the
// query, best first. Ties keep catalog iteration order.
func (c *Catalog) Suggest(designation string, st SectionType, n int) []string {
	return rankSimilar(designation, c.List(st), n)
}

// SuggestAcrossTypes returns up to n similar designations drawn from all
// available types.
func (c *Catalog) SuggestAcrossTypes(designation string, n int) []string {
	var all []string
	for _, st := range c.AvailableTypes() {
		all = append(all, c.List(st)...)
	}
	return rankSimilar(designation, all, n)
}

func rankSimilar(query string, candidates []string, n int) []string {
	if n <= 0 {
		return nil
	}

	type scored struct {
		candidate string
		sim       float64
		pos       int
	}

	var hits []scored
	for i, candidate := range candidates {
		sim := similarity(query, candidate)
		if sim >= suggestCutoff {
			hits = append(hits, scored{candidate: candidate, sim: sim, pos: i})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].sim != hits[j].sim {
			return hits[i].sim > hits[j].sim
		}
		return hits[i].pos < hits[j].pos
	})

	if len(hits) > n {
		hits = hits[:n]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.candidate
	}
	return out
}

// similarity is a normalized Levenshtein ratio in [0, 1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0
	}
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	return 1 - float64(levenshtein(a, b))/float64(maxLen)
}

// levenshtein computes the edit distance between two strings using a
// single-row dynamic program.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			cur := row[j]
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			min := prev + cost
			if d := row[j] + 1; d < min {
				min = d
			}
			if d := row[j-1] + 1; d < min {
				min = d
			}
			row[j] = min
			prev = cur
		}
	}

	return row[len(rb)]
}
