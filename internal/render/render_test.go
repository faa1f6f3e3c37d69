package render

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"mdbook/internal/book"
)

func testBook(t *testing.T, chapters map[int]string) *book.Book {
	t.Helper()
	root := t.TempDir()

	b := &book.Book{
		Root: root,
		Meta: book.Metadata{Title: "Render Test", Author: "Author", Language: "en"},
	}
	numbers := make([]int, 0, len(chapters))
	for number := range chapters {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	for _, number := range numbers {
		path := filepath.Join(root, "chapters", filepathName(number))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		if err := os.WriteFile(path, []byte(chapters[number]), 0o644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		b.Chapters = append(b.Chapters, book.Chapter{
			Number: number,
			Title:  "Chapter " + filepathName(number),
			Path:   path,
		})
	}
	return b
}

func filepathName(number int) string {
	return "ch-" + string(rune('0'+number)) + ".md"
}

func TestFragment(t *testing.T) {
	r := New("light")

	t.Run("basic markdown", func(t *testing.T) {
		html, err := r.Fragment("## Heading\n\nSome *text*.\n")
		if err != nil {
			t.Fatalf("Fragment failed: %v", err)
		}
		out := string(html)
		if !strings.Contains(out, "<h2") || !strings.Contains(out, "<em>text</em>") {
			t.Errorf("Unexpected output:\n%s", out)
		}
	})

	t.Run("gfm table", func(t *testing.T) {
		html, err := r.Fragment("| a | b |\n|---|---|\n| 1 | 2 |\n")
		if err != nil {
			t.Fatalf("Fragment failed: %v", err)
		}
		if !strings.Contains(string(html), "<table>") {
			t.Errorf("Table extension missing:\n%s", html)
		}
	})

	t.Run("mermaid block becomes div", func(t *testing.T) {
		html, err := r.Fragment("```mermaid\ngraph TD;\nA-->B;\n```\n")
		if err != nil {
			t.Fatalf("Fragment failed: %v", err)
		}
		out := string(html)
		if !strings.Contains(out, `<div class="mermaid">`) {
			t.Errorf("Mermaid div missing:\n%s", out)
		}
		if strings.Contains(out, "<pre><code") {
			t.Errorf("Mermaid should not render as code:\n%s", out)
		}
	})
}

func TestPage(t *testing.T) {
	b := testBook(t, map[int]string{
		1: "# One\n\n## Section\n\ntext\n",
		2: "# Two\n\ncontent\n",
		3: "# Three\n\ncontent\n",
	})
	r := New("light")

	raw, _ := os.ReadFile(b.Chapters[1].Path)
	page, err := r.Page(b, b.Chapters[1], string(raw))
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}

	if !strings.Contains(page, "<!DOCTYPE html>") {
		t.Error("Missing document shell")
	}
	if !strings.Contains(page, `href="chapter-01.html"`) || !strings.Contains(page, `href="chapter-03.html"`) {
		t.Errorf("Prev/next navigation missing:\n%s", page)
	}
	if strings.Contains(page, "mermaid.initialize") {
		t.Error("Mermaid script should only appear when diagrams exist")
	}

	t.Run("first chapter has no prev link", func(t *testing.T) {
		raw, _ := os.ReadFile(b.Chapters[0].Path)
		page, err := r.Page(b, b.Chapters[0], string(raw))
		if err != nil {
			t.Fatalf("Page failed: %v", err)
		}
		if strings.Contains(page, "&larr;") {
			t.Error("First chapter should have no previous link")
		}
		if !strings.Contains(page, "&rarr;") {
			t.Error("First chapter should have a next link")
		}
	})
}

func TestBuild(t *testing.T) {
	t.Run("index generated when no intro chapter", func(t *testing.T) {
		b := testBook(t, map[int]string{
			1: "# One\n\ncontent\n",
			2: "# Two\n\ncontent\n",
		})
		out := filepath.Join(t.TempDir(), "site")

		files, err := New("light").Build(b, out)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if len(files) != 3 {
			t.Fatalf("Expected 2 chapters + index, got %d files", len(files))
		}

		index, err := os.ReadFile(filepath.Join(out, "index.html"))
		if err != nil {
			t.Fatalf("Index missing: %v", err)
		}
		if !strings.Contains(string(index), "Render Test") {
			t.Error("Index should carry the book title")
		}
	})

	t.Run("intro chapter claims index.html", func(t *testing.T) {
		b := testBook(t, map[int]string{
			0: "# Overview\n\nintro\n",
			1: "# One\n\ncontent\n",
		})
		out := filepath.Join(t.TempDir(), "site")

		files, err := New("dark").Build(b, out)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if len(files) != 2 {
			t.Fatalf("Expected exactly 2 files, got %d", len(files))
		}

		index, err := os.ReadFile(filepath.Join(out, "index.html"))
		if err != nil {
			t.Fatalf("Index missing: %v", err)
		}
		if !strings.Contains(string(index), "intro") {
			t.Error("Intro chapter should render as the index page")
		}
	})
}

func TestOutputFilename(t *testing.T) {
	if got := OutputFilename(book.Chapter{Number: 0}); got != "index.html" {
		t.Errorf("Intro should map to index.html, got %s", got)
	}
	if got := OutputFilename(book.Chapter{Number: 7}); got != "chapter-07.html" {
		t.Errorf("Expected chapter-07.html, got %s", got)
	}
}
