// Package render turns a book's markdown into a static HTML tree: one page
// per chapter with prev/next navigation, an index page, and mermaid diagram
// passthrough. Goldmark does the markdown conversion; the page shell is an
// html/template.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"mdbook/internal/book"
	"mdbook/internal/content"
	"mdbook/internal/document"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const mermaidCDN = "https://cdn.jsdelivr.net/npm/mermaid/dist/mermaid.esm.min.mjs"

// Renderer converts chapter markdown to HTML pages.
type Renderer struct {
	md    goldmark.Markdown
	theme string
}

// New builds a Renderer. theme is "light" or "dark"; anything else falls
// back to light.
func New(theme string) *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Footnote),
			// Raw HTML must pass through for the mermaid <div> rewrite.
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		theme: theme,
	}
}

// Fragment renders a chapter body to an HTML fragment without the page
// shell. Frontmatter must already be stripped by the caller. Index markers
// are stripped so {{index: term}} never shows in output.
func (r *Renderer) Fragment(body string) (template.HTML, error) {
	src := rewriteMermaid(content.StripIndexMarkers(body))

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown conversion failed: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Page renders one chapter as a complete HTML document with navigation
// against the rest of the book.
func (r *Renderer) Page(b *book.Book, ch book.Chapter, raw string) (string, error) {
	doc := document.Parse(raw)
	frag, err := r.Fragment(doc.Body)
	if err != nil {
		return "", err
	}

	data := pageData{
		Lang:    lang(b),
		Title:   ch.Title + " - " + b.Meta.Title,
		Theme:   themeCSS(r.theme),
		Content: frag,
		Mermaid: content.HasMermaid(doc.Body),
	}

	if idx := chapterIndex(b, ch); idx >= 0 {
		if idx > 0 {
			prev := b.Chapters[idx-1]
			data.Prev = &navLink{Href: OutputFilename(prev), Title: prev.Title}
		}
		if idx < len(b.Chapters)-1 {
			next := b.Chapters[idx+1]
			data.Next = &navLink{Href: OutputFilename(next), Title: next.Title}
		}
	}

	return renderPage(data)
}

// IndexPage renders the chapter listing used when the book has no intro
// chapter claiming index.html.
func (r *Renderer) IndexPage(b *book.Book) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<h1>%s</h1>\n", template.HTMLEscapeString(b.Meta.Title))
	if b.Meta.Author != "" {
		fmt.Fprintf(&sb, "<p>by %s</p>\n", template.HTMLEscapeString(b.Meta.Author))
	}
	if b.Meta.Description != "" {
		fmt.Fprintf(&sb, "<p>%s</p>\n", template.HTMLEscapeString(b.Meta.Description))
	}
	sb.WriteString("<h2>Chapters</h2>\n<ul>\n")
	for _, ch := range b.Chapters {
		label := fmt.Sprintf("%d", ch.Number)
		if ch.IsIntro() {
			label = "Intro"
		}
		fmt.Fprintf(&sb, "<li><a href=%q>%s. %s</a></li>\n",
			OutputFilename(ch), label, template.HTMLEscapeString(ch.Title))
	}
	sb.WriteString("</ul>")

	return renderPage(pageData{
		Lang:    lang(b),
		Title:   b.Meta.Title,
		Theme:   themeCSS(r.theme),
		Content: template.HTML(sb.String()),
	})
}

// Build renders every chapter of the book into outputDir and returns the
// generated file paths. An index page is added when no intro chapter exists.
func (r *Renderer) Build(b *book.Book, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var generated []string
	hasIntro := false
	for _, ch := range b.Chapters {
		if ch.IsIntro() {
			hasIntro = true
		}
		raw, err := os.ReadFile(ch.Path)
		if err != nil {
			return generated, fmt.Errorf("failed to read chapter %d: %w", ch.Number, err)
		}
		page, err := r.Page(b, ch, string(raw))
		if err != nil {
			return generated, fmt.Errorf("failed to render chapter %d: %w", ch.Number, err)
		}
		out := filepath.Join(outputDir, OutputFilename(ch))
		if err := os.WriteFile(out, []byte(page), 0o644); err != nil {
			return generated, fmt.Errorf("failed to write %s: %w", out, err)
		}
		generated = append(generated, out)
	}

	if !hasIntro {
		page, err := r.IndexPage(b)
		if err != nil {
			return generated, err
		}
		out := filepath.Join(outputDir, "index.html")
		if err := os.WriteFile(out, []byte(page), 0o644); err != nil {
			return generated, fmt.Errorf("failed to write %s: %w", out, err)
		}
		generated = append(generated, out)
	}

	return generated, nil
}

// OutputFilename maps a chapter to its HTML filename. The intro chapter
// becomes the site index.
func OutputFilename(ch book.Chapter) string {
	if ch.IsIntro() {
		return "index.html"
	}
	return fmt.Sprintf("chapter-%02d.html", ch.Number)
}

func chapterIndex(b *book.Book, ch book.Chapter) int {
	for i, c := range b.Chapters {
		if c.Path == ch.Path {
			return i
		}
	}
	return -1
}

func lang(b *book.Book) string {
	if b.Meta.Language != "" {
		return b.Meta.Language
	}
	return "en"
}

// rewriteMermaid replaces ```mermaid fenced blocks with a <div
// class="mermaid"> so the client-side mermaid script picks them up instead
// of goldmark rendering them as code.
func rewriteMermaid(body string) string {
	if !strings.Contains(body, "```mermaid") {
		return body
	}

	lines := strings.Split(body, "\n")
	var out []string
	inMermaid := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case !inMermaid && trimmed == "```mermaid":
			inMermaid = true
			out = append(out, `<div class="mermaid">`)
		case inMermaid && trimmed == "```":
			inMermaid = false
			out = append(out, "</div>")
		default:
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
