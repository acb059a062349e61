package content

import (
	"strconv"
	"strings"
	"time"
)

// Collection names one of the independent content namespaces. Slugs are
// unique within a collection, not across them.
type Collection string

const (
	CollectionBlog   Collection = "blog"
	CollectionMarket Collection = "market"
	CollectionWork   Collection = "work"
)

var Collections = []Collection{CollectionBlog, CollectionMarket, CollectionWork}

func (c Collection) Valid() bool {
	switch c {
	case CollectionBlog, CollectionMarket, CollectionWork:
		return true
	}
	return false
}

// Uncategorized is the sentinel bucket for records without a category.
// Presentation layers translate it; the stored form is always this value.
const Uncategorized = "Uncategorized"

// UntitledTitle fills in for records whose header block carries no title.
const UntitledTitle = "Untitled"

type Record struct {
	Collection  Collection `json:"collection"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	PublishedAt time.Time  `json:"publishedAt"`
	Description string     `json:"description,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Category    string     `json:"category,omitempty"`

	WordCount int `json:"wordCount"`
	ReadMin   int `json:"readMin"`

	// Body is the raw markup source. The query layer treats it as opaque
	// text and only uses it for substring search.
	Body string `json:"-"`

	Favorite bool     `json:"favorite,omitempty"` // blog
	Price    string   `json:"price,omitempty"`    // market, raw header value
	Images   []string `json:"images,omitempty"`   // market
	Cover    string   `json:"cover,omitempty"`    // work
	Grid     string   `json:"grid,omitempty"`     // work

	// Extra carries header keys the schema does not know about.
	Extra map[string]string `json:"extra,omitempty"`
}

type PriceType string

const (
	PriceFree PriceType = "free"
	PricePaid PriceType = "paid"
)

// ClassifyPrice maps a raw price value onto the free/paid split. Absent,
// empty and numeric zero all mean free; everything else, including
// non-numeric labels like "Custom", is paid.
func ClassifyPrice(price string) PriceType {
	price = strings.TrimSpace(price)
	if price == "" {
		return PriceFree
	}
	if n, err := strconv.ParseFloat(price, 64); err == nil && n == 0 {
		return PriceFree
	}
	return PricePaid
}

func (r Record) PriceType() PriceType {
	return ClassifyPrice(r.Price)
}

// CategoryLabel returns the category with the sentinel substituted for
// absent, so filters and aggregates compare against the same label.
func (r Record) CategoryLabel() string {
	if c := strings.TrimSpace(r.Category); c != "" {
		return c
	}
	return Uncategorized
}

func (r Record) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// MeasureBody computes the word count and the reading-time estimate in
// whole minutes, assuming ~200 words per minute. Never less than a minute
// for a non-empty body.
func MeasureBody(body string) (words, readMin int) {
	words = len(strings.Fields(body))
	if words == 0 {
		return 0, 0
	}
	readMin = (words + 100) / 200
	if readMin < 1 {
		readMin = 1
	}
	return words, readMin
}

func (r *Record) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		r.Title = UntitledTitle
	}
	r.Slug = strings.TrimSpace(r.Slug)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	r.Price = strings.TrimSpace(r.Price)
	r.Cover = strings.TrimSpace(r.Cover)
	r.Grid = strings.TrimSpace(r.Grid)

	r.Tags = normalizeStrings(r.Tags)
	r.Images = dropEmpty(r.Images)
}

func normalizeStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func dropEmpty(items []string) []string {
	out := items[:0]
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
