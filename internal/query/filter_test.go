package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/domain/content"
)

func TestFilter_Category(t *testing.T) {
	a := rec("a", 0)
	a.Category = "Design"
	b := rec("b", 1) // no category
	c := rec("c", 2)
	c.Category = "Code"
	records := []content.Record{a, b, c}

	t.Run("exact match", func(t *testing.T) {
		got := Filter(records, Options{Category: "Design"})
		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].Slug)
	})

	t.Run("sentinel matches uncategorized records", func(t *testing.T) {
		got := Filter(records, Options{Category: content.Uncategorized})
		require.Len(t, got, 1)
		assert.Equal(t, "b", got[0].Slug)
	})

	t.Run("case sensitive", func(t *testing.T) {
		assert.Empty(t, Filter(records, Options{Category: "design"}))
	})
}

func TestFilter_TagAndFavorite(t *testing.T) {
	a := rec("a", 0, "go", "web")
	b := rec("b", 1, "go")
	b.Favorite = true
	records := []content.Record{a, b}

	got := Filter(records, Options{Tag: "web"})
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Slug)

	got = Filter(records, Options{FavoriteOnly: true})
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Slug)

	got = Filter(records, Options{Tag: "go", FavoriteOnly: true})
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Slug)
}

func TestFilter_PriceType(t *testing.T) {
	free1 := rec("free-absent", 0)
	free2 := rec("free-zero", 1)
	free2.Price = "0"
	paid1 := rec("paid-number", 2)
	paid1.Price = "500"
	paid2 := rec("paid-label", 3)
	paid2.Price = "Custom"
	records := []content.Record{free1, free2, paid1, paid2}

	free := Filter(records, Options{PriceType: content.PriceFree})
	require.Len(t, free, 2)
	assert.Equal(t, "free-absent", free[0].Slug)
	assert.Equal(t, "free-zero", free[1].Slug)

	paid := Filter(records, Options{PriceType: content.PricePaid})
	require.Len(t, paid, 2)
}

func TestFilter_SearchThreshold(t *testing.T) {
	a := rec("a", 0)
	a.Title = "Minimal Landing Page"
	b := rec("b", 1)
	b.Title = "Dashboard Kit"
	records := []content.Record{a, b}

	t.Run("below threshold returns everything", func(t *testing.T) {
		assert.Len(t, Filter(records, Options{Search: "la"}), 2)
		assert.Len(t, Filter(records, Options{Search: ""}), 2)
	})

	t.Run("at threshold filters", func(t *testing.T) {
		got := Filter(records, Options{Search: "lan"})
		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].Slug)
	})

	t.Run("no match is empty", func(t *testing.T) {
		assert.Empty(t, Filter(records, Options{Search: "xyz"}))
	})

	t.Run("case insensitive", func(t *testing.T) {
		got := Filter(records, Options{Search: "DASH"})
		require.Len(t, got, 1)
		assert.Equal(t, "b", got[0].Slug)
	})
}

func TestSearch_StrictContract(t *testing.T) {
	a := rec("a", 0)
	a.Title = "Brand Guidelines"
	a.Body = "typography and color systems"
	records := []content.Record{a, rec("b", 1)}

	t.Run("empty query means no results", func(t *testing.T) {
		assert.Empty(t, Search(records, ""))
		assert.Empty(t, Search(records, "   "))
	})

	t.Run("matches body text", func(t *testing.T) {
		got := Search(records, "typography")
		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].Slug)
	})
}
