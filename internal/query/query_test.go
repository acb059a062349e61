package query

import (
	"fmt"
	"time"

	"atelier/internal/domain/content"
)

// rec builds a minimal test record; day offsets keep the slice in the
// date-desc order the store hands out.
func rec(slug string, daysAgo int, tags ...string) content.Record {
	return content.Record{
		Collection:  content.CollectionBlog,
		Slug:        slug,
		Title:       "Post " + slug,
		PublishedAt: time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo),
		Tags:        tags,
	}
}

func recs(n int) []content.Record {
	out := make([]content.Record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, rec(fmt.Sprintf("post-%02d", i), i))
	}
	return out
}
