package query

import (
	"math/rand"
	"sort"
	"strings"

	"atelier/internal/domain/content"
)

// Related suggests up to limit records for the item at slug. With tags it
// ranks the rest by shared-tag count; a stable sort keeps the incoming
// date-desc/slug-asc order among equal scores, so ties are deterministic.
// Without tags it returns a random sample, re-shuffled on every call.
func Related(records []content.Record, slug string, tags []string, limit int) []content.Record {
	if limit <= 0 {
		return nil
	}

	rest := make([]content.Record, 0, len(records))
	for _, r := range records {
		if r.Slug == slug {
			continue
		}
		rest = append(rest, r)
	}

	want := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			want[t] = struct{}{}
		}
	}

	if len(want) == 0 {
		rand.Shuffle(len(rest), func(i, j int) {
			rest[i], rest[j] = rest[j], rest[i]
		})
		if len(rest) > limit {
			rest = rest[:limit]
		}
		return rest
	}

	scores := make([]int, len(rest))
	for i, r := range rest {
		for _, t := range r.Tags {
			if _, ok := want[t]; ok {
				scores[i]++
			}
		}
	}
	order := make([]int, len(rest))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	out := make([]content.Record, 0, len(order))
	for _, i := range order {
		out = append(out, rest[i])
	}
	return out
}
