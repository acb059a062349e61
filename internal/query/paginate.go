// Package query holds the pure functions of the content layer: they take
// an ordered record slice and compute views without touching the store.
package query

import (
	"atelier/internal/domain/content"
)

const defaultLimit = 10

type Page struct {
	Items       []content.Record `json:"items"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
	HasNextPage bool             `json:"hasNextPage"`
	HasPrevPage bool             `json:"hasPrevPage"`
}

// Paginate slices a contiguous window out of records. Slugs in exclude are
// removed before totals are computed, so TotalPages reflects the
// post-exclusion set (used to keep a featured item off the main list).
// Out-of-range pages clamp into [1, TotalPages] instead of erroring, and
// an empty set still reports one (empty) page.
func Paginate(records []content.Record, page, limit int, exclude ...string) Page {
	if limit <= 0 {
		limit = defaultLimit
	}
	if len(exclude) > 0 {
		skip := make(map[string]struct{}, len(exclude))
		for _, s := range exclude {
			skip[s] = struct{}{}
		}
		kept := make([]content.Record, 0, len(records))
		for _, r := range records {
			if _, ok := skip[r.Slug]; ok {
				continue
			}
			kept = append(kept, r)
		}
		records = kept
	}

	totalPages := (len(records) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * limit
	end := start + limit
	if start > len(records) {
		start = len(records)
	}
	if end > len(records) {
		end = len(records)
	}

	return Page{
		Items:       records[start:end],
		TotalPages:  totalPages,
		CurrentPage: page,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
