package book

import (
	"path/filepath"
	"strings"
	"time"

	"mdbook/internal/content"
	"mdbook/internal/document"
)

// ChapterImages lists a chapter's image references. With validate set,
// relative paths are checked against the chapter's directory.
func (b *Book) ChapterImages(number int, validate bool) (Chapter, []content.ImageRef, error) {
	ch, raw, err := b.ReadChapter(number)
	if err != nil {
		return Chapter{}, nil, err
	}
	body := document.Parse(raw).Body
	return ch, content.ExtractImages(body, filepath.Dir(ch.Path), validate), nil
}

// MissingImage is an image reference that does not resolve to a file,
// tagged with the chapter it came from.
type MissingImage struct {
	ChapterNumber int
	ChapterTitle  string
	content.ImageRef
}

// MissingImages scans every chapter for image references that do not
// resolve on disk.
func (b *Book) MissingImages() ([]MissingImage, error) {
	var missing []MissingImage
	for _, ch := range b.Chapters {
		_, raw, err := b.ReadChapter(ch.Number)
		if err != nil {
			return nil, err
		}
		body := document.Parse(raw).Body
		for _, ref := range content.MissingImages(body, filepath.Dir(ch.Path)) {
			missing = append(missing, MissingImage{
				ChapterNumber: ch.Number,
				ChapterTitle:  ch.Title,
				ImageRef:      ref,
			})
		}
	}
	return missing, nil
}

// ChapterMermaid lists a chapter's mermaid diagram blocks.
func (b *Book) ChapterMermaid(number int) (Chapter, []content.MermaidBlock, error) {
	ch, raw, err := b.ReadChapter(number)
	if err != nil {
		return Chapter{}, nil, err
	}
	return ch, content.ExtractMermaid(document.Parse(raw).Body), nil
}

// BuildIndex collects {{index: term}} markers from every chapter and
// renders the alphabetical index page.
func (b *Book) BuildIndex() (string, error) {
	var locs []content.TermLocation
	for _, ch := range b.Chapters {
		_, raw, err := b.ReadChapter(ch.Number)
		if err != nil {
			return "", err
		}
		for _, term := range content.ExtractTerms(document.Parse(raw).Body) {
			locs = append(locs, content.TermLocation{
				IndexTerm:     term,
				ChapterNumber: ch.Number,
				ChapterTitle:  ch.Title,
			})
		}
	}
	return content.RenderIndex(locs), nil
}

// AddNote appends a timestamped note comment to the end of a located
// section. The note rides through the normal edit pipeline, so dry-run,
// backup and the validation gate all apply.
func (b *Book) AddNote(number int, ref document.SectionRef, text string, opts EditOptions) (EditResult, error) {
	return b.applyEdit(number, opts, func(doc document.Document, name string) (document.EditOutcome, error) {
		sec, err := document.Locate(document.ParseSections(doc.Body), ref)
		if err != nil {
			return document.EditOutcome{}, err
		}
		note := content.FormatNote(time.Now(), text)
		updated := strings.TrimRight(sec.Content, "\n") + "\n\n" + note
		return document.ReplaceSection(doc, document.ByIndex(sec.Index), updated, false, name)
	})
}

// ListNotes returns the notes stored in a chapter's body.
func (b *Book) ListNotes(number int) (Chapter, []content.Note, error) {
	ch, raw, err := b.ReadChapter(number)
	if err != nil {
		return Chapter{}, nil, err
	}
	return ch, content.ExtractNotes(document.Parse(raw).Body), nil
}
