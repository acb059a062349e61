package query

import (
	"strings"
	"unicode/utf8"

	"atelier/internal/domain/content"
)

// MinSearchRunes gates the catalog's inline search: shorter input leaves
// the set unfiltered rather than narrowing on one or two characters.
const MinSearchRunes = 3

type Options struct {
	Category     string
	Tag          string
	FavoriteOnly bool
	PriceType    content.PriceType // zero value: no price filter
	Search       string
}

// Filter applies the conjunction of the set predicates. The Search
// predicate here is the lenient catalog contract: below MinSearchRunes it
// is a no-op. The strict contract lives in Search.
func Filter(records []content.Record, opt Options) []content.Record {
	category := strings.TrimSpace(opt.Category)
	search := strings.TrimSpace(opt.Search)
	if utf8.RuneCountInString(search) < MinSearchRunes {
		search = ""
	}

	out := make([]content.Record, 0, len(records))
	for _, r := range records {
		if category != "" && r.CategoryLabel() != category {
			continue
		}
		if opt.Tag != "" && !r.HasTag(opt.Tag) {
			continue
		}
		if opt.FavoriteOnly && !r.Favorite {
			continue
		}
		if opt.PriceType != "" && r.PriceType() != opt.PriceType {
			continue
		}
		if search != "" && !matches(r, search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Search is the dedicated search contract: an empty or whitespace-only
// query returns nothing, not everything. This asymmetry with Filter is
// deliberate; the two callers always wanted different behavior.
func Search(records []content.Record, q string) []content.Record {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	out := make([]content.Record, 0)
	for _, r := range records {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r content.Record, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(r.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Description), q) {
		return true
	}
	return strings.Contains(strings.ToLower(r.Body), q)
}
