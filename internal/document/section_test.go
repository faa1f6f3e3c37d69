package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSections(t *testing.T) {
	t.Run("empty body yields no sections", func(t *testing.T) {
		assert.Nil(t, ParseSections(""))
	})

	t.Run("body without headings is one preamble section", func(t *testing.T) {
		sections := ParseSections("Just some text.\nMore text.\n")
		require.Len(t, sections, 1)
		assert.Equal(t, 0, sections[0].Index)
		assert.False(t, sections[0].HasHeading())
		assert.Empty(t, sections[0].Anchor)
	})

	t.Run("preamble plus headed sections", func(t *testing.T) {
		body := "Intro text.\n\n## First\n\nA.\n\n## Second\n\nB.\n"
		sections := ParseSections(body)
		require.Len(t, sections, 3)

		assert.False(t, sections[0].HasHeading())
		assert.Equal(t, "First", sections[1].Heading)
		assert.Equal(t, "first", sections[1].Anchor)
		assert.Equal(t, "Second", sections[2].Heading)

		assert.Equal(t, 1, sections[0].StartLine)
		assert.Equal(t, 3, sections[1].StartLine)
		assert.Equal(t, sections[1].StartLine-1, sections[0].EndLine)
	})

	t.Run("body starting with heading has no preamble", func(t *testing.T) {
		sections := ParseSections("## Only\n\nText.\n")
		require.Len(t, sections, 1)
		assert.Equal(t, "Only", sections[0].Heading)
		assert.Equal(t, 0, sections[0].Index)
	})

	t.Run("deeper headings stay inside their section", func(t *testing.T) {
		body := "## Top\n\n### Sub\n\n#### Deeper\n\n## Next\n"
		sections := ParseSections(body)
		require.Len(t, sections, 2)
		assert.Contains(t, sections[0].Content, "### Sub")
		assert.Contains(t, sections[0].Content, "#### Deeper")
		assert.Equal(t, "Next", sections[1].Heading)
	})

	t.Run("identical headings get identical anchors", func(t *testing.T) {
		sections := ParseSections("## Setup\n\nA.\n\n## Setup\n\nB.\n")
		require.Len(t, sections, 2)
		assert.Equal(t, sections[0].Anchor, sections[1].Anchor)
	})
}

func TestSectionReconstruction(t *testing.T) {
	bodies := []string{
		"## One\n\nA.\n\n## Two\n\nB.\n",
		"Preamble.\n\n## One\nA.\n## Two\nB.",
		"no headings at all",
		"\n## Leading blank line\n\nText.\n",
		"## Trailing heading",
		"## A\n```\ncode block\n```\n\n## B\n",
	}
	for _, body := range bodies {
		sections := ParseSections(body)
		assert.Equal(t, body, JoinSections(sections), "body %q", body)
	}
}
