package domain

import "sort"

// Count is a label with the number of tickets carrying it.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary aggregates a processed table.
type Summary struct {
	Total      int     `json:"total"`
	ByCategory []Count `json:"by_category"`
	ByPriority []Count `json:"by_priority"`
	ByStatus   []Count `json:"by_status"`
}

// Summarize counts tickets by category, priority and status. Each group is
// ordered by count descending, then label.
func Summarize(table Table) Summary {
	categories := map[string]int{}
	priorities := map[string]int{}
	statuses := map[string]int{}
	for _, t := range table {
		categories[string(t.Category)]++
		priorities[string(t.Priority)]++
		statuses[string(t.Status)]++
	}
	return Summary{
		Total:      len(table),
		ByCategory: sortedCounts(categories),
		ByPriority: sortedCounts(priorities),
		ByStatus:   sortedCounts(statuses),
	}
}

// Lookup returns the count for label, or zero.
func Lookup(counts []Count, label string) int {
	for _, c := range counts {
		if c.Label == label {
			return c.Count
		}
	}
	return 0
}

func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for label, n := range m {
		out = append(out, Count{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}
