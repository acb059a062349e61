package ingest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
)

// frontMatter is the recognized header-block schema. Fields whose input
// representation varies across existing files (dates as strings or YAML
// timestamps, tags as lists or comma-separated strings, prices as numbers
// or labels) decode into any and are normalized afterwards. Unknown keys
// land in Extra so old files with ad-hoc metadata keep round-tripping.
type frontMatter struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	PublishedAt any    `yaml:"publishedAt"`
	Date        any    `yaml:"date"`
	Description string `yaml:"description"`
	Tags        any    `yaml:"tags"`
	Category    string `yaml:"category"`

	Favorite bool     `yaml:"favorite"`
	Price    any      `yaml:"price"`
	Images   []string `yaml:"images"`
	Cover    string   `yaml:"cover"`
	Grid     string   `yaml:"grid"`

	Extra map[string]any `yaml:",inline"`
}

// parseSource splits a raw content file into its header block and body.
// A file without a header block is valid: the whole file is body.
func parseSource(raw []byte) (frontMatter, []byte, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return frontMatter{}, nil, err
	}
	return fm, bytes.TrimSpace(body), nil
}

// normalizeDate resolves the three input shapes a published date shows up
// as: a string, a YAML timestamp, or anything else via its string form.
// ok is false when nothing parseable was found.
func normalizeDate(v any) (t time.Time, ok bool) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return d, true
	case string:
		t = parseTime(d)
	default:
		t = parseTime(fmt.Sprint(d))
	}
	return t, !t.IsZero()
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339,
		time.DateOnly,
		"2006-01-02 15:04",
		time.DateTime,
	} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseTags accepts either a YAML list or a comma-separated scalar.
// Trimming, lowercasing and de-duplication happen in Record.Normalize.
func parseTags(v any) []string {
	switch tags := v.(type) {
	case nil:
		return nil
	case string:
		return strings.Split(tags, ",")
	case []string:
		return tags
	case []any:
		out := make([]string, 0, len(tags))
		for _, t := range tags {
			out = append(out, fmt.Sprint(t))
		}
		return out
	}
	return []string{fmt.Sprint(v)}
}

// priceString keeps the raw price as text: numbers format without an
// exponent so "0" stays recognizable as free.
func priceString(v any) string {
	switch p := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(p)
	case int:
		return strconv.Itoa(p)
	case int64:
		return strconv.FormatInt(p, 10)
	case float64:
		return strconv.FormatFloat(p, 'f', -1, 64)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func stringExtras(m map[string]any) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = fmt.Sprint(v)
	}
	return out
}

// resolveSlug prefers an explicit header slug and falls back to the
// filename stem. The result is always slugified.
func resolveSlug(fm frontMatter, path string) string {
	if s := strings.TrimSpace(fm.Slug); s != "" {
		return slugify(s)
	}
	base := filepath.Base(path)
	return slugify(strings.TrimSuffix(base, filepath.Ext(base)))
}

func slugify(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var out []rune
	lastDash := false

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]

		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if 'A' <= r && r <= 'Z' {
				r += 'a' - 'A'
			}
			out = append(out, r)
			lastDash = false
		default:
			if !lastDash && len(out) > 0 {
				out = append(out, '-')
				lastDash = true
			}
		}
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	return string(out)
}
