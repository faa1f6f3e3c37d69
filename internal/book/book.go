// Package book owns the book-level records: book.yaml metadata, chapter
// discovery and numbering, chapter creation, and the thin I/O layer that
// persists the outcomes of the pure editing operations in internal/document.
package book

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configFile  = "book.yaml"
	summaryFile = "SUMMARY.md"
	chaptersDir = "chapters"
)

// Load reads book.yaml under root and discovers the book's chapters.
func Load(root string) (*Book, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve book root: %w", err)
	}

	raw, err := os.ReadFile(filepath.Join(absRoot, configFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNoBook, absRoot)
		}
		return nil, fmt.Errorf("failed to read %s: %w", configFile, err)
	}

	var meta Metadata
	if err := yaml.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configFile, err)
	}

	chapters, err := discoverChapters(absRoot)
	if err != nil {
		return nil, err
	}

	return &Book{Root: absRoot, Meta: meta, Chapters: chapters}, nil
}

// Init creates a new book project: the root and chapters directories,
// book.yaml, and an empty SUMMARY.md headed with the book title.
func Init(root, title, author string) (*Book, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve book root: %w", err)
	}

	configPath := filepath.Join(absRoot, configFile)
	if _, err := os.Stat(configPath); err == nil {
		return nil, fmt.Errorf("%w at %s", ErrBookExists, absRoot)
	}

	if err := os.MkdirAll(filepath.Join(absRoot, chaptersDir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create book directories: %w", err)
	}

	meta := Metadata{
		Title:    title,
		Author:   author,
		Language: "en",
		Created:  time.Now().Format("2006-01-02"),
	}

	raw, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", configFile, err)
	}
	if err := os.WriteFile(configPath, raw, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", configFile, err)
	}

	summary := fmt.Sprintf("# %s\n\n", title)
	if err := os.WriteFile(filepath.Join(absRoot, summaryFile), []byte(summary), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", summaryFile, err)
	}

	return &Book{Root: absRoot, Meta: meta}, nil
}

// ReadChapter returns the raw content of a chapter file.
func (b *Book) ReadChapter(number int) (Chapter, string, error) {
	ch, err := b.Chapter(number)
	if err != nil {
		return Chapter{}, "", err
	}
	raw, err := os.ReadFile(ch.Path)
	if err != nil {
		return Chapter{}, "", fmt.Errorf("failed to read chapter %d: %w", number, err)
	}
	return ch, string(raw), nil
}

// SummaryPath returns the outline file location, preferring src/SUMMARY.md
// when the book uses an src layout.
func (b *Book) SummaryPath() string {
	candidates := []string{
		filepath.Join(b.Root, "src", summaryFile),
		filepath.Join(b.Root, summaryFile),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return filepath.Join(b.Root, summaryFile)
}

func sortChapters(chapters []Chapter) {
	sort.SliceStable(chapters, func(i, j int) bool {
		a, b := chapters[i], chapters[j]
		if a.IsIntro() != b.IsIntro() {
			return a.IsIntro()
		}
		return a.Number < b.Number
	})
}
