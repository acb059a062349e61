package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/domain/content"
)

func TestCategories_UncategorizedBucket(t *testing.T) {
	a := rec("a", 0)
	a.Category = "Design"
	b := rec("b", 1)
	c := rec("c", 2)
	got := Categories([]content.Record{a, b, c})

	require.Len(t, got, 2)
	assert.Equal(t, content.Uncategorized, got[0].Label)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, "Design", got[1].Label)
	assert.Equal(t, 1, got[1].Count)
}

func TestCategories_TieBreaksByLabel(t *testing.T) {
	a := rec("a", 0)
	a.Category = "Zeta"
	b := rec("b", 1)
	b.Category = "Alpha"
	got := Categories([]content.Record{a, b})

	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].Label)
	assert.Equal(t, "Zeta", got[1].Label)
}

func TestTagCounts(t *testing.T) {
	records := []content.Record{
		rec("a", 0, "go", "web"),
		rec("b", 1, "go"),
		rec("c", 2, "design"),
	}
	got := TagCounts(records)

	require.Len(t, got, 3)
	assert.Equal(t, LabelCount{Label: "go", Count: 2}, got[0])
	assert.Equal(t, LabelCount{Label: "design", Count: 1}, got[1])
	assert.Equal(t, LabelCount{Label: "web", Count: 1}, got[2])
}

func TestAggregates_Empty(t *testing.T) {
	assert.Empty(t, Categories(nil))
	assert.Empty(t, TagCounts(nil))
}
