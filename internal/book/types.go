package book

import "errors"

var (
	// ErrChapterNotFound is returned when a chapter number resolves to no
	// known chapter file.
	ErrChapterNotFound = errors.New("chapter not found")

	// ErrBookExists is returned by Init when the target directory already
	// holds a book.yaml.
	ErrBookExists = errors.New("book already exists")

	// ErrNoBook is returned when a directory holds no book.yaml.
	ErrNoBook = errors.New("no book found")
)

// Metadata mirrors book.yaml.
type Metadata struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Description string `yaml:"description"`
	Language    string `yaml:"language"`
	Created     string `yaml:"created"`
}

// Chapter is the metadata record for one chapter file. The file content is
// the sole source of truth; Chapter only carries the number, title, flags
// and the owning path.
//
// Number 0 is reserved for the intro/overview chapter, which sorts first.
type Chapter struct {
	Number  int
	Title   string
	Draft   bool
	Path    string // absolute path to the chapter file
	RelPath string // path relative to the book root, forward slashes
}

// IsIntro reports whether this is the reserved intro chapter.
func (c Chapter) IsIntro() bool {
	return c.Number == 0
}

// Book is a loaded book: its root directory, book.yaml metadata, and the
// discovered chapters in reading order.
type Book struct {
	Root     string
	Meta     Metadata
	Chapters []Chapter
}

// Chapter returns the chapter with the given number.
func (b *Book) Chapter(number int) (Chapter, error) {
	for _, c := range b.Chapters {
		if c.Number == number {
			return c, nil
		}
	}
	return Chapter{}, ErrChapterNotFound
}

// chapterFrontmatter is the YAML frontmatter shape written into chapter
// files by AddChapter and read back during discovery.
type chapterFrontmatter struct {
	Title   string `yaml:"title"`
	Chapter *int   `yaml:"chapter"`
	Date    string `yaml:"date"`
	Draft   bool   `yaml:"draft"`
}
