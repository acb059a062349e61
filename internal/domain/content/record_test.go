package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPrice(t *testing.T) {
	free := []string{"", "  ", "0", "0.0"}
	for _, p := range free {
		assert.Equal(t, PriceFree, ClassifyPrice(p), "price %q", p)
	}
	paid := []string{"500", "9.99", "Custom", "free"} // the label "free" is still a value
	for _, p := range paid {
		assert.Equal(t, PricePaid, ClassifyPrice(p), "price %q", p)
	}
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Design", Record{Category: "Design"}.CategoryLabel())
	assert.Equal(t, Uncategorized, Record{}.CategoryLabel())
	assert.Equal(t, Uncategorized, Record{Category: "  "}.CategoryLabel())
}

func TestMeasureBody(t *testing.T) {
	words, min := MeasureBody("")
	assert.Zero(t, words)
	assert.Zero(t, min)

	words, min = MeasureBody("just a few words here")
	assert.Equal(t, 5, words)
	assert.Equal(t, 1, min)

	long := ""
	for i := 0; i < 450; i++ {
		long += "word "
	}
	words, min = MeasureBody(long)
	assert.Equal(t, 450, words)
	assert.Equal(t, 2, min) // 2.25 minutes rounds down

	words, min = MeasureBody(long + long)
	assert.Equal(t, 900, words)
	assert.Equal(t, 5, min) // 4.5 minutes rounds up
}

func TestNormalize(t *testing.T) {
	r := Record{
		Title:  "  Hello  ",
		Tags:   []string{" Go ", "go", "", "Web"},
		Images: []string{"a.png", " ", "b.png"},
	}
	r.Normalize()

	assert.Equal(t, "Hello", r.Title)
	assert.Equal(t, []string{"go", "web"}, r.Tags)
	assert.Equal(t, []string{"a.png", "b.png"}, r.Images)
}

func TestNormalize_UntitledPlaceholder(t *testing.T) {
	r := Record{Title: "   "}
	r.Normalize()
	assert.Equal(t, UntitledTitle, r.Title)
}

func TestHasTag(t *testing.T) {
	r := Record{Tags: []string{"go", "web"}}
	assert.True(t, r.HasTag("go"))
	assert.True(t, r.HasTag(" GO "))
	assert.False(t, r.HasTag("rust"))
}
