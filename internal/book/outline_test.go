package book

import (
	"strings"
	"testing"
)

func TestGenerateOutline(t *testing.T) {
	b := newTestBook(t, map[string]string{
		"01-first.md": "---\ntitle: First\nchapter: 1\n---\n\n## Getting Started\n\ntext\n\n### Sub Detail\n\nmore\n",
	})

	t.Run("chapters only", func(t *testing.T) {
		outline, err := b.GenerateOutline(false)
		if err != nil {
			t.Fatalf("GenerateOutline failed: %v", err)
		}
		want := "# Test Book\n\n- [First](chapters/01-first.md)\n"
		if outline != want {
			t.Errorf("Expected %q, got %q", want, outline)
		}
	})

	t.Run("sections nest one level", func(t *testing.T) {
		outline, err := b.GenerateOutline(true)
		if err != nil {
			t.Fatalf("GenerateOutline failed: %v", err)
		}
		if !strings.Contains(outline, "  - Getting Started\n") {
			t.Errorf("Section heading missing:\n%s", outline)
		}
		if strings.Contains(outline, "Sub Detail") {
			t.Errorf("Deeper headings should stay out of the outline:\n%s", outline)
		}
	})
}
