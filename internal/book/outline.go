package book

import (
	"fmt"
	"strings"

	"mdbook/internal/document"
)

// GenerateOutline builds an outline preview from the chapters on disk
// without writing SUMMARY.md. With includeSections, each chapter's level-2
// headings are nested one level under its entry.
func (b *Book) GenerateOutline(includeSections bool) (string, error) {
	var sb strings.Builder
	title := b.Meta.Title
	if title == "" {
		title = "Summary"
	}
	sb.WriteString("# " + title + "\n\n")

	for _, ch := range b.Chapters {
		fmt.Fprintf(&sb, "- [%s](%s)\n", ch.Title, ch.RelPath)
		if !includeSections {
			continue
		}
		_, raw, err := b.ReadChapter(ch.Number)
		if err != nil {
			return "", err
		}
		for _, h := range document.ExtractHeadings(document.Parse(raw).Body) {
			// ExtractHeadings maps "##" to level 1.
			if h.Level != 1 {
				continue
			}
			fmt.Fprintf(&sb, "  - %s\n", h.Title)
		}
	}
	return sb.String(), nil
}
