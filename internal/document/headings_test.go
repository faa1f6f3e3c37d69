package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHeadings(t *testing.T) {
	body := "# Chapter Title\n\n## First\n\ntext\n\n### Sub One\n\n#### Deep\n\n## Second\n"
	headings := ExtractHeadings(body)
	require.Len(t, headings, 4)

	assert.Equal(t, Heading{Title: "First", Level: 1, Anchor: "first"}, headings[0])
	assert.Equal(t, Heading{Title: "Sub One", Level: 2, Anchor: "sub-one"}, headings[1])
	assert.Equal(t, Heading{Title: "Deep", Level: 3, Anchor: "deep"}, headings[2])
	assert.Equal(t, Heading{Title: "Second", Level: 1, Anchor: "second"}, headings[3])
}

func TestNestHeadings(t *testing.T) {
	headings := []Heading{
		{Title: "A", Level: 1},
		{Title: "A.1", Level: 2},
		{Title: "A.1.a", Level: 3},
		{Title: "A.2", Level: 2},
		{Title: "B", Level: 1},
	}

	roots := NestHeadings(headings)
	require.Len(t, roots, 2)

	a := roots[0]
	assert.Equal(t, "A", a.Title)
	require.Len(t, a.Children, 2)
	assert.Equal(t, "A.1", a.Children[0].Title)
	require.Len(t, a.Children[0].Children, 1)
	assert.Equal(t, "A.1.a", a.Children[0].Children[0].Title)
	assert.Equal(t, "A.2", a.Children[1].Title)

	assert.Equal(t, "B", roots[1].Title)
	assert.Empty(t, roots[1].Children)
}

func TestNestHeadingsSkipsLevels(t *testing.T) {
	// A deep heading directly after a shallow one still nests under it.
	roots := NestHeadings([]Heading{
		{Title: "Top", Level: 1},
		{Title: "Deep", Level: 3},
		{Title: "Next", Level: 1},
	})
	require.Len(t, roots, 2)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "Deep", roots[0].Children[0].Title)
}
