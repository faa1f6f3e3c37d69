package book

import (
	"fmt"
	"os"
	"path/filepath"

	"mdbook/internal/document"
	"mdbook/pkg/fileops"
)

// EditOptions selects the side-effect policy for an edit. The editing
// operations themselves are pure (internal/document); this layer decides
// whether their outcome is persisted and whether a backup is taken first.
type EditOptions struct {
	// DryRun computes the outcome and diff without touching the file.
	DryRun bool
	// Backup takes a timestamped copy of the chapter before writing.
	Backup bool
}

// EditResult pairs a pure edit outcome with the side effects this layer
// performed.
type EditResult struct {
	document.EditOutcome
	Chapter    Chapter
	BackupPath string
	Written    bool
}

// UpdateChapter replaces a chapter's whole body, keeping frontmatter.
func (b *Book) UpdateChapter(number int, newBody string, opts EditOptions) (EditResult, error) {
	return b.applyEdit(number, opts, func(doc document.Document, name string) (document.EditOutcome, error) {
		return document.ReplaceWhole(doc, newBody, name), nil
	})
}

// AppendToChapter appends content at the end of a chapter.
func (b *Book) AppendToChapter(number int, content string, opts EditOptions) (EditResult, error) {
	return b.applyEdit(number, opts, func(doc document.Document, name string) (document.EditOutcome, error) {
		return document.Append(doc, content, name), nil
	})
}

// ReplaceSection replaces one section of a chapter, located by index or
// heading text.
func (b *Book) ReplaceSection(number int, ref document.SectionRef, newContent string, preserveHeading bool, opts EditOptions) (EditResult, error) {
	return b.applyEdit(number, opts, func(doc document.Document, name string) (document.EditOutcome, error) {
		return document.ReplaceSection(doc, ref, newContent, preserveHeading, name)
	})
}

// InsertAtSection inserts content before or after a located section.
func (b *Book) InsertAtSection(number int, ref document.SectionRef, content string, pos document.InsertPosition, opts EditOptions) (EditResult, error) {
	return b.applyEdit(number, opts, func(doc document.Document, name string) (document.EditOutcome, error) {
		return document.InsertAtSection(doc, ref, content, pos, name)
	})
}

// Sections parses a chapter's body into its addressable sections.
func (b *Book) Sections(number int) (Chapter, []document.Section, error) {
	ch, raw, err := b.ReadChapter(number)
	if err != nil {
		return Chapter{}, nil, err
	}
	doc := document.Parse(raw)
	return ch, document.ParseSections(doc.Body), nil
}

type editFunc func(doc document.Document, name string) (document.EditOutcome, error)

// applyEdit runs one pure edit against a chapter file and persists the
// result when the outcome is OK and the caller asked for a write. Backup
// happens strictly before the write.
func (b *Book) applyEdit(number int, opts EditOptions, edit editFunc) (EditResult, error) {
	ch, raw, err := b.ReadChapter(number)
	if err != nil {
		return EditResult{}, err
	}

	doc := document.Parse(raw)
	outcome, err := edit(doc, filepath.Base(ch.Path))
	if err != nil {
		return EditResult{}, err
	}

	res := EditResult{EditOutcome: outcome, Chapter: ch}
	if !outcome.OK || opts.DryRun {
		return res, nil
	}

	if opts.Backup {
		backupPath, err := fileops.BackupFile(ch.Path)
		if err != nil {
			return res, fmt.Errorf("backup failed, edit not written: %w", err)
		}
		res.BackupPath = backupPath
	}

	if err := os.WriteFile(ch.Path, []byte(outcome.NewContent), 0o644); err != nil {
		return res, fmt.Errorf("failed to write chapter %d: %w", number, err)
	}
	res.Written = true
	return res, nil
}
