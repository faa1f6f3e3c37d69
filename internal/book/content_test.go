package book

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mdbook/internal/document"
)

func TestChapterImages(t *testing.T) {
	b := newTestBook(t, map[string]string{
		"01-first.md": "---\ntitle: First\nchapter: 1\n---\n\n![logo](img/logo.png)\n",
	})
	if err := os.MkdirAll(filepath.Join(b.Root, chaptersDir, "img"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(b.Root, chaptersDir, "img", "logo.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	_, images, err := b.ChapterImages(1, true)
	if err != nil {
		t.Fatalf("ChapterImages failed: %v", err)
	}
	if len(images) != 1 || !images[0].Exists {
		t.Errorf("Expected one resolved image, got %+v", images)
	}
}

func TestMissingImages(t *testing.T) {
	b := newTestBook(t, map[string]string{
		"01-first.md":  "---\ntitle: First\nchapter: 1\n---\n\n![gone](img/missing.png)\n",
		"02-second.md": "---\ntitle: Second\nchapter: 2\n---\n\nno images here\n",
	})

	missing, err := b.MissingImages()
	if err != nil {
		t.Fatalf("MissingImages failed: %v", err)
	}
	if len(missing) != 1 {
		t.Fatalf("Expected 1 missing image, got %d", len(missing))
	}
	if missing[0].ChapterNumber != 1 || missing[0].Path != "img/missing.png" {
		t.Errorf("Wrong missing reference: %+v", missing[0])
	}
}

func TestChapterMermaid(t *testing.T) {
	b := newTestBook(t, map[string]string{
		"01-first.md": "---\ntitle: First\nchapter: 1\n---\n\n```mermaid\ngraph TD;\n```\n",
	})

	_, blocks, err := b.ChapterMermaid(1)
	if err != nil {
		t.Fatalf("ChapterMermaid failed: %v", err)
	}
	if len(blocks) != 1 || blocks[0].Content != "graph TD;" {
		t.Errorf("Expected one diagram block, got %+v", blocks)
	}
}

func TestBuildIndex(t *testing.T) {
	b := newTestBook(t, map[string]string{
		"01-first.md":  "---\ntitle: First\nchapter: 1\n---\n\n## Setup\n\n{{index: installation}}\n",
		"02-second.md": "---\ntitle: Second\nchapter: 2\n---\n\n## Advanced\n\n{{index: themes}}\n{{index: installation}}\n",
	})

	index, err := b.BuildIndex()
	if err != nil {
		t.Fatalf("BuildIndex failed: %v", err)
	}
	if !strings.HasPrefix(index, "# Index\n") {
		t.Errorf("Missing header:\n%s", index)
	}
	if !strings.Contains(index, "- **installation**: [First](#setup), [Second](#advanced)") {
		t.Errorf("Term should consolidate locations across chapters:\n%s", index)
	}
	if !strings.Contains(index, "## I") || !strings.Contains(index, "## T") {
		t.Errorf("Letter groups missing:\n%s", index)
	}
}

func TestAddNote(t *testing.T) {
	const chapter = "---\ntitle: First\nchapter: 1\n---\n\n## Intro\n\nText.\n\n## End\n\nBye.\n"

	t.Run("note lands at the end of the section", func(t *testing.T) {
		b := newTestBook(t, map[string]string{"01-first.md": chapter})

		res, err := b.AddNote(1, document.ByHeading("Intro"), "tighten this", EditOptions{})
		if err != nil {
			t.Fatalf("AddNote failed: %v", err)
		}
		if !res.OK || !res.Written {
			t.Fatalf("Expected written note, got %+v", res.EditOutcome)
		}

		raw, _ := os.ReadFile(filepath.Join(b.Root, chaptersDir, "01-first.md"))
		text := string(raw)
		noteAt := strings.Index(text, "<!-- NOTE: ")
		endAt := strings.Index(text, "## End")
		if noteAt < 0 || endAt < 0 || noteAt > endAt {
			t.Errorf("Note should sit inside the Intro section:\n%s", text)
		}
		if !strings.Contains(text, "- tighten this -->") {
			t.Errorf("Note text missing:\n%s", text)
		}
	})

	t.Run("listed back with section context", func(t *testing.T) {
		b := newTestBook(t, map[string]string{"01-first.md": chapter})

		if _, err := b.AddNote(1, document.ByHeading("End"), "check sources", EditOptions{}); err != nil {
			t.Fatalf("AddNote failed: %v", err)
		}
		_, notes, err := b.ListNotes(1)
		if err != nil {
			t.Fatalf("ListNotes failed: %v", err)
		}
		if len(notes) != 1 {
			t.Fatalf("Expected 1 note, got %d", len(notes))
		}
		if notes[0].Text != "check sources" || notes[0].SectionHeading != "End" {
			t.Errorf("Wrong note: %+v", notes[0])
		}
	})

	t.Run("unknown section", func(t *testing.T) {
		b := newTestBook(t, map[string]string{"01-first.md": chapter})
		if _, err := b.AddNote(1, document.ByHeading("Nowhere"), "x", EditOptions{}); err == nil {
			t.Error("Expected error for unknown section")
		}
	})
}
