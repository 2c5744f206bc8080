package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTitleSlug(t *testing.T) {
	text := `Here you go:

New Title: Premium Blue Hoodie - Soft Organic Cotton
Slug: premium-blue-hoodie
Reason: Added a benefit-led qualifier and shortened the slug.`

	got := parseTitleSlug(text)
	assert.Equal(t, TitleSlug{
		Title:  "Premium Blue Hoodie - Soft Organic Cotton",
		Slug:   "premium-blue-hoodie",
		Reason: "Added a benefit-led qualifier and shortened the slug.",
	}, got)
}

func TestParseTitleSlugPartial(t *testing.T) {
	// Missing sections default to empty, never an error
	got := parseTitleSlug("Slug: only-a-slug")
	assert.Equal(t, TitleSlug{Slug: "only-a-slug"}, got)

	assert.Equal(t, TitleSlug{}, parseTitleSlug("complete nonsense with no labels"))
	assert.Equal(t, TitleSlug{}, parseTitleSlug(""))
}

func TestParseTitleSlugNumberedList(t *testing.T) {
	text := `1. New Title: Cozy Winter Scarf
2. Slug: cozy-winter-scarf`

	got := parseTitleSlug(text)
	assert.Equal(t, "Cozy Winter Scarf", got.Title)
	assert.Equal(t, "cozy-winter-scarf", got.Slug)
}

func TestParseMetaFields(t *testing.T) {
	text := `Meta Description: Shop the coziest blue hoodie of the season. Free shipping today!
Keywords: blue hoodie, organic cotton hoodie, winter hoodie`

	got := parseMetaFields(text)
	assert.Equal(t, "Shop the coziest blue hoodie of the season. Free shipping today!", got.MetaDescription)
	assert.Equal(t, "blue hoodie, organic cotton hoodie, winter hoodie", got.Keywords)
}

func TestParseMetaFieldsFirstOccurrenceWins(t *testing.T) {
	text := `Keywords: first set
Keywords: second set`

	assert.Equal(t, "first set", parseMetaFields(text).Keywords)
}

func TestPrimaryKeyword(t *testing.T) {
	assert.Equal(t, "blue hoodie", PrimaryKeyword("blue hoodie, cotton hoodie, winter"))
	assert.Equal(t, "single", PrimaryKeyword("single"))
	assert.Equal(t, "", PrimaryKeyword(""))
}
