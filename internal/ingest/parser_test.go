package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource(t *testing.T) {
	t.Run("header and body", func(t *testing.T) {
		fm, body, err := parseSource([]byte(`---
title: Hello
publishedAt: "2024-06-01"
tags:
  - go
  - web
category: Code
---

The body text.`))
		require.NoError(t, err)
		assert.Equal(t, "Hello", fm.Title)
		assert.Equal(t, "Code", fm.Category)
		assert.Equal(t, []string{"go", "web"}, parseTags(fm.Tags))
		assert.Equal(t, "The body text.", string(body))
	})

	t.Run("no header block", func(t *testing.T) {
		fm, body, err := parseSource([]byte("just some text"))
		require.NoError(t, err)
		assert.Empty(t, fm.Title)
		assert.Equal(t, "just some text", string(body))
	})

	t.Run("unknown keys land in extras", func(t *testing.T) {
		fm, _, err := parseSource([]byte(`---
title: Hello
sound: click.mp3
layout: 2
---
body`))
		require.NoError(t, err)
		extras := stringExtras(fm.Extra)
		assert.Equal(t, "click.mp3", extras["sound"])
		assert.Equal(t, "2", extras["layout"])
	})
}

func TestNormalizeDate(t *testing.T) {
	t.Run("string passthrough", func(t *testing.T) {
		got, ok := normalizeDate("2024-06-01")
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), got)
	})

	t.Run("datetime string", func(t *testing.T) {
		got, ok := normalizeDate("2024-06-01 15:04")
		require.True(t, ok)
		assert.Equal(t, 15, got.Hour())
	})

	t.Run("native timestamp", func(t *testing.T) {
		want := time.Date(2023, 12, 24, 8, 0, 0, 0, time.UTC)
		got, ok := normalizeDate(want)
		require.True(t, ok)
		assert.True(t, got.Equal(want))
	})

	t.Run("absent", func(t *testing.T) {
		_, ok := normalizeDate(nil)
		assert.False(t, ok)
	})

	t.Run("unparsable", func(t *testing.T) {
		_, ok := normalizeDate("sometime soon")
		assert.False(t, ok)
	})
}

func TestParseTags(t *testing.T) {
	assert.Nil(t, parseTags(nil))
	assert.Equal(t, []string{"a", " b", " c"}, parseTags("a, b, c"))
	assert.Equal(t, []string{"x", "y"}, parseTags([]any{"x", "y"}))
}

func TestPriceString(t *testing.T) {
	assert.Equal(t, "", priceString(nil))
	assert.Equal(t, "500", priceString(500))
	assert.Equal(t, "9.99", priceString(9.99))
	assert.Equal(t, "0", priceString(0))
	assert.Equal(t, "Custom", priceString(" Custom "))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":      "hello-world",
		"  spaced  out  ":  "spaced-out",
		"Already-A-Slug":   "already-a-slug",
		"dots.and_unders":  "dots-and-unders",
		"trailing punct!!": "trailing-punct",
	}
	for in, want := range cases {
		assert.Equal(t, want, slugify(in), "input %q", in)
	}
}

func TestResolveSlug(t *testing.T) {
	assert.Equal(t, "explicit", resolveSlug(frontMatter{Slug: "Explicit"}, "content/blog/x.mdx"))
	assert.Equal(t, "my-post", resolveSlug(frontMatter{}, "content/blog/My Post.mdx"))
}
