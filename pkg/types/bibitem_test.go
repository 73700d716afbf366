// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleItem builds an entry by hand with spans matching its raw text, the
// way the parser does.
func sampleItem(t *testing.T) *BibItem {
	t.Helper()
	raw := `@article{x, year={2024}, title={a study of fish}}`
	item := NewBibItem("article", "x",
		map[string]string{"year": "2024", "title": "a study of fish"},
		raw, 0, 1,
		Span{Start: 9, End: 10},
		map[string]Span{
			"year":  {Start: 18, End: 22},
			"title": {Start: 32, End: 47},
		})
	require.Equal(t, "2024", raw[18:22])
	require.Equal(t, "a study of fish", raw[32:47])
	return item
}

func TestSetFieldSplicesRaw(t *testing.T) {
	item := sampleItem(t)

	item.SetField("title", "A Study of Fish")

	assert.Equal(t, `@article{x, year={2024}, title={A Study of Fish}}`, item.Raw)
	title, ok := item.Field("title")
	require.True(t, ok)
	assert.Equal(t, "A Study of Fish", title)
	assert.True(t, item.Changed())

	year, _ := item.Field("year")
	assert.Equal(t, "2024", year)
}

func TestSetFieldShiftsLaterSpans(t *testing.T) {
	item := sampleItem(t)

	// Growing the year value must not corrupt the title span.
	item.SetField("year", "submitted 2024")
	item.SetField("title", "Replaced")

	assert.Equal(t, `@article{x, year={submitted 2024}, title={Replaced}}`, item.Raw)
}

func TestSetCiteKeySplicesRaw(t *testing.T) {
	item := sampleItem(t)

	item.SetCiteKey("Smith24_103")

	assert.Equal(t, "Smith24_103", item.CiteKey)
	assert.Equal(t, `@article{Smith24_103, year={2024}, title={a study of fish}}`, item.Raw)
	assert.True(t, item.Changed())

	// Field spans shifted by the longer key.
	item.SetField("title", "New")
	assert.Equal(t, `@article{Smith24_103, year={2024}, title={New}}`, item.Raw)
}

func TestNoOpEditsLeaveItemUnchanged(t *testing.T) {
	item := sampleItem(t)
	raw := item.Raw

	item.SetField("title", "a study of fish") // same value
	item.SetField("absent", "whatever")       // no such field
	item.SetCiteKey("x")                      // same key
	item.SetCiteKey("")                       // empty key ignored

	assert.False(t, item.Changed())
	assert.Equal(t, raw, item.Raw)
}
