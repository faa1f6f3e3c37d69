package book

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"mdbook/internal/document"
	"mdbook/internal/toc"
	"mdbook/pkg/fileops"

	"github.com/adrg/frontmatter"
)

var filePrefixRe = regexp.MustCompile(`^(\d+)`)

// discoverChapters scans the book's content directory for chapter files and
// builds their metadata records. Frontmatter wins over filename-derived
// values; files without either a `chapter` field or a numeric filename
// prefix are skipped (they are not chapters).
func discoverChapters(root string) ([]Chapter, error) {
	dir := contentDir(root)

	rels, err := fileops.ScanMarkdown(dir, &fileops.ScanOptions{
		SkipNames: []string{summaryFile},
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var chapters []Chapter
	for _, rel := range rels {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		ch, ok := readChapterMeta(root, path)
		if !ok {
			continue
		}
		chapters = append(chapters, ch)
	}

	sortChapters(chapters)
	return chapters, nil
}

// DiscoverPaths returns the relative paths of every markdown file under the
// book's content directories, excluding the outline file itself. This is
// the flat list the TOC merge consumes.
func DiscoverPaths(root string) ([]string, error) {
	var paths []string
	for _, sub := range []string{"src", chaptersDir} {
		dir := filepath.Join(root, sub)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		rels, err := fileops.ScanMarkdown(dir, &fileops.ScanOptions{
			SkipNames: []string{summaryFile},
		})
		if err != nil {
			return nil, err
		}
		for _, rel := range rels {
			paths = append(paths, sub+"/"+rel)
		}
	}
	return paths, nil
}

func contentDir(root string) string {
	for _, sub := range []string{chaptersDir, "src"} {
		dir := filepath.Join(root, sub)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return root
}

func readChapterMeta(root, path string) (Chapter, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Chapter{}, false
	}

	var matter chapterFrontmatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &matter)
	if err != nil {
		// No parseable frontmatter: fall back to the raw content.
		matter = chapterFrontmatter{}
		body = raw
	}

	number, numbered := matter.Chapter, matter.Chapter != nil
	if !numbered {
		if m := filePrefixRe.FindStringSubmatch(filepath.Base(path)); m != nil {
			n, _ := strconv.Atoi(m[1])
			number, numbered = &n, true
		}
	}
	if !numbered {
		return Chapter{}, false
	}

	title := matter.Title
	if title == "" {
		title = firstTopHeading(string(body))
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)
	if title == "" {
		title = toc.TitleFromPath(rel)
	}

	return Chapter{
		Number:  *number,
		Title:   title,
		Draft:   matter.Draft,
		Path:    path,
		RelPath: rel,
	}, true
}

// firstTopHeading returns the text of the first "# " heading, or "".
func firstTopHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}

// AddChapter creates the next chapter file with frontmatter and a title
// heading, then merges it into the outline.
func (b *Book) AddChapter(title string, draft bool) (Chapter, error) {
	dir := filepath.Join(b.Root, chaptersDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Chapter{}, fmt.Errorf("failed to create chapters directory: %w", err)
	}

	number := b.nextChapterNumber()
	slug := document.Slugify(title)
	filename := fmt.Sprintf("%02d-%s.md", number, slug)
	path := filepath.Join(dir, filename)

	var sb strings.Builder
	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "title: %s\n", title)
	fmt.Fprintf(&sb, "chapter: %d\n", number)
	fmt.Fprintf(&sb, "date: %s\n", time.Now().Format("2006-01-02"))
	if draft {
		sb.WriteString("draft: true\n")
	}
	sb.WriteString("---\n\n")
	fmt.Fprintf(&sb, "# %s\n", title)

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return Chapter{}, fmt.Errorf("failed to write chapter file: %w", err)
	}

	ch := Chapter{
		Number:  number,
		Title:   title,
		Draft:   draft,
		Path:    path,
		RelPath: chaptersDir + "/" + filename,
	}
	b.Chapters = append(b.Chapters, ch)
	sortChapters(b.Chapters)

	if _, err := b.UpdateTOC(false); err != nil {
		return ch, fmt.Errorf("chapter created but outline update failed: %w", err)
	}

	return ch, nil
}

// nextChapterNumber finds the highest chapter number among the discovered
// chapters and returns the next one, starting at 1.
func (b *Book) nextChapterNumber() int {
	max := 0
	for _, c := range b.Chapters {
		if c.Number > max {
			max = c.Number
		}
	}
	return max + 1
}
