package toc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("header line preserved verbatim", func(t *testing.T) {
		tree := Parse("junk before\n# My  Book\n\n- [A](a.md)\n")
		assert.Equal(t, "# My  Book", tree.RawHeader)
		assert.Equal(t, "My  Book", tree.Title)
		require.Len(t, tree.Entries, 1)
	})

	t.Run("missing header falls back to default", func(t *testing.T) {
		tree := Parse("- [A](a.md)\n")
		assert.Equal(t, "# Summary", tree.RawHeader)
		require.Len(t, tree.Entries, 1)
	})

	t.Run("indent builds nesting", func(t *testing.T) {
		tree := Parse("# S\n\n- [A](a.md)\n  - [B](b.md)\n    - [C](c.md)\n- [D](d.md)\n")
		require.Len(t, tree.Entries, 2)

		a := tree.Entries[0]
		require.Len(t, a.Children, 1)
		assert.Equal(t, "B", a.Children[0].Title)
		require.Len(t, a.Children[0].Children, 1)
		assert.Equal(t, "C", a.Children[0].Children[0].Title)
		assert.Empty(t, tree.Entries[1].Children)
	})

	t.Run("odd indent aliases down", func(t *testing.T) {
		tree := Parse("# S\n\n- [A](a.md)\n   - [B](b.md)\n")
		require.Len(t, tree.Entries, 1)
		require.Len(t, tree.Entries[0].Children, 1)
		assert.Equal(t, 1, tree.Entries[0].Children[0].IndentLevel)
	})

	t.Run("group header resets nesting", func(t *testing.T) {
		tree := Parse("# S\n\n- [A](a.md)\n  - [B](b.md)\n\n## Part II\n\n  - [C](c.md)\n")
		require.Len(t, tree.Entries, 3)

		assert.False(t, tree.Entries[0].IsGroupHeader)
		assert.True(t, tree.Entries[1].IsGroupHeader)
		assert.Equal(t, "Part II", tree.Entries[1].Title)

		// C is indented but must not nest under B across the group header.
		assert.Equal(t, "C", tree.Entries[2].Title)
		assert.Empty(t, tree.Entries[0].Children[0].Children)
	})

	t.Run("plain entries have no path", func(t *testing.T) {
		tree := Parse("# S\n\n- Just a label\n")
		require.Len(t, tree.Entries, 1)
		assert.Empty(t, tree.Entries[0].Path)
		assert.Equal(t, "Just a label", tree.Entries[0].Title)
	})

	t.Run("unmatched bracket line is skipped", func(t *testing.T) {
		tree := Parse("# S\n\n- [broken(a.md)\n- [Fine](b.md)\n")
		require.Len(t, tree.Entries, 1)
		assert.Equal(t, "Fine", tree.Entries[0].Title)
	})

	t.Run("blank and unrecognized lines ignored", func(t *testing.T) {
		tree := Parse("# S\n\nsome prose\n\n- [A](a.md)\n\n> quote\n")
		require.Len(t, tree.Entries, 1)
	})
}

func TestPaths(t *testing.T) {
	tree := Parse("# S\n\n- [A](a.md)\n  - [B](b.md)\n\n## Part\n\n- [C](c.md)\n")
	assert.Equal(t, []string{"a.md", "b.md", "c.md"}, tree.Paths())
}

func TestSerialize(t *testing.T) {
	t.Run("header blank line then pre-order", func(t *testing.T) {
		raw := "# Book\n\n- [A](a.md)\n  - [B](b.md)\n- [C](c.md)\n"
		got := Serialize(Parse(raw))
		assert.Equal(t, raw, got)
	})

	t.Run("group headers surrounded by blank lines", func(t *testing.T) {
		got := Serialize(Parse("# S\n\n- [A](a.md)\n\n## Part II\n\n- [B](b.md)\n"))
		assert.Contains(t, got, "\n\n## Part II\n\n")
	})
}

func TestParseSerializeRoundTrip(t *testing.T) {
	outlines := []string{
		"# Summary\n\n- [Intro](intro.md)\n  - [Setup](setup.md)\n- [Main](main.md)\n",
		"# Book\n\n## Part I\n\n- [One](ch/01.md)\n  - [Two](ch/02.md)\n\n## Part II\n\n- [Three](ch/03.md)\n",
		"# S\n\n- Plain label\n  - [Linked](x.md)\n",
	}

	for _, raw := range outlines {
		first := Parse(raw)
		second := Parse(Serialize(first))
		assertTreesEqual(t, first, second)
	}
}

func assertTreesEqual(t *testing.T, want, got *Tree) {
	t.Helper()
	require.Equal(t, want.Title, got.Title)

	var flatten func(entries []*Entry, out *[]string)
	flatten = func(entries []*Entry, out *[]string) {
		for _, e := range entries {
			*out = append(*out, strings.Join([]string{e.Title, e.Path}, "|"))
			flatten(e.Children, out)
		}
	}
	var wantFlat, gotFlat []string
	flatten(want.Entries, &wantFlat)
	flatten(got.Entries, &gotFlat)
	assert.Equal(t, wantFlat, gotFlat)
}
