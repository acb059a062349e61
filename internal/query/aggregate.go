package query

import (
	"sort"

	"atelier/internal/domain/content"
)

type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Categories counts records per category label, with absent categories
// grouped under the Uncategorized sentinel. Sorted by count descending,
// label ascending on ties.
func Categories(records []content.Record) []LabelCount {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.CategoryLabel()]++
	}
	return sortedCounts(counts)
}

// TagCounts counts records per tag; a record contributes once to each of
// its tags.
func TagCounts(records []content.Record) []LabelCount {
	counts := make(map[string]int)
	for _, r := range records {
		for _, t := range r.Tags {
			counts[t]++
		}
	}
	return sortedCounts(counts)
}

func sortedCounts(counts map[string]int) []LabelCount {
	out := make([]LabelCount, 0, len(counts))
	for label, c := range counts {
		out = append(out, LabelCount{Label: label, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Label < out[j].Label
		}
		return out[i].Count > out[j].Count
	})
	return out
}
