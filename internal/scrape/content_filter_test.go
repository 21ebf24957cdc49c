package scrape

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_CapsRepeatedItems(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<div id="events">`)
	for i := 1; i <= 12; i++ {
		fmt.Fprintf(&b, `<div class="item">event %d</div>`, i)
	}
	b.WriteString(`</div>`)

	doc, err := parseDocument(b.String())
	assert.NoError(t, err)

	out, err := Filter(doc, FilterSpec{Container: "#events", Item: "div.item"}, 5)
	assert.NoError(t, err)

	for i := 1; i <= 5; i++ {
		assert.Contains(t, out, fmt.Sprintf("event %d", i))
	}
	for i := 6; i <= 12; i++ {
		assert.NotContains(t, out, fmt.Sprintf("event %d", i))
	}
}

func TestFilter_FallsBackToFullPage(t *testing.T) {
	doc, err := parseDocument(`<div id="other">all the content</div>`)
	assert.NoError(t, err)

	out, err := Filter(doc, FilterSpec{Container: "#missing"}, 0)
	assert.NoError(t, err)
	assert.Contains(t, out, "all the content")
}

func TestFilter_UnwrapsNoiseTags(t *testing.T) {
	doc, err := parseDocument(`<div id="c"><p>A <strong>bold</strong> and <em>emphatic</em> talk</p></div>`)
	assert.NoError(t, err)

	out, err := Filter(doc, FilterSpec{Container: "#c", Noise: []string{"strong", "em"}}, 0)
	assert.NoError(t, err)

	assert.NotContains(t, out, "<strong>")
	assert.NotContains(t, out, "<em>")
	assert.Contains(t, out, "bold")
	assert.Contains(t, out, "emphatic")
}

func TestFilter_NoItemsMatchingReturnsRegion(t *testing.T) {
	doc, err := parseDocument(`<div id="c"><p>no repeated items here</p></div>`)
	assert.NoError(t, err)

	out, err := Filter(doc, FilterSpec{Container: "#c", Item: "div.item"}, 5)
	assert.NoError(t, err)
	assert.Contains(t, out, "no repeated items here")
}
