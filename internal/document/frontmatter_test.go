package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFrontmatter(t *testing.T) {
	t.Run("no frontmatter returns whole input as body", func(t *testing.T) {
		for _, raw := range []string{
			"# Title\n\nBody.\n",
			"plain text",
			"",
			"--- not a delimiter\ncontent\n",
		} {
			fm, body := SplitFrontmatter(raw)
			assert.Empty(t, fm, "input %q", raw)
			assert.Equal(t, raw, body, "input %q", raw)
		}
	})

	t.Run("frontmatter block includes both delimiters", func(t *testing.T) {
		raw := "---\ntitle: Intro\nchapter: 1\n---\n\n# Intro\n"
		fm, body := SplitFrontmatter(raw)
		assert.Equal(t, "---\ntitle: Intro\nchapter: 1\n---\n", fm)
		assert.Equal(t, "\n# Intro\n", body)
	})

	t.Run("split reconstructs input exactly", func(t *testing.T) {
		inputs := []string{
			"---\ntitle: A\n---\nBody.\n",
			"---\n---\n",
			"---\na: 1\n---",
			"---\r\ntitle: CRLF\r\n---\r\nBody.\r\n",
			"# No frontmatter\n",
		}
		for _, raw := range inputs {
			fm, body := SplitFrontmatter(raw)
			assert.Equal(t, raw, fm+body, "input %q", raw)
		}
	})

	t.Run("unclosed opener falls back to all body", func(t *testing.T) {
		raw := "---\ntitle: Broken\n\n# Heading\n"
		fm, body := SplitFrontmatter(raw)
		assert.Empty(t, fm)
		assert.Equal(t, raw, body)
	})

	t.Run("delimiter only", func(t *testing.T) {
		fm, body := SplitFrontmatter("---\n")
		assert.Empty(t, fm)
		assert.Equal(t, "---\n", body)
	})
}

func TestParseRoundTrip(t *testing.T) {
	raw := "---\ntitle: Round Trip\n---\n\n## First\n\nText.\n"
	doc := Parse(raw)
	require.Equal(t, raw, doc.Content())
	assert.Equal(t, "---\ntitle: Round Trip\n---\n", doc.Frontmatter)
}
