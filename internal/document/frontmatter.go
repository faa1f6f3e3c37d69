package document

import "strings"

const fmDelimiter = "---"

// Document is a chapter file split into its raw frontmatter block and the
// section-parseable body. The frontmatter block is preserved byte-for-byte,
// delimiters included, so Frontmatter + Body always reproduces the original
// content of an unedited document.
type Document struct {
	Frontmatter string
	Body        string
}

// Content re-joins the frontmatter block and body.
func (d Document) Content() string {
	return d.Frontmatter + d.Body
}

// Parse splits raw chapter text into frontmatter and body.
//
// A document has frontmatter iff its first line is exactly "---"; the block
// runs through the next "---" line inclusive, plus the trailing newline. An
// opening delimiter without a closing one is not an error: the whole text is
// treated as body.
func Parse(raw string) Document {
	fm, body := SplitFrontmatter(raw)
	return Document{Frontmatter: fm, Body: body}
}

// SplitFrontmatter returns the raw frontmatter block (or "") and the body.
func SplitFrontmatter(raw string) (string, string) {
	first, rest, hasMore := strings.Cut(raw, "\n")
	if strings.TrimRight(first, "\r") != fmDelimiter || !hasMore {
		return "", raw
	}

	offset := len(first) + 1
	for len(rest) > 0 {
		line, remainder, more := strings.Cut(rest, "\n")
		lineLen := len(line)
		if more {
			lineLen++
		}
		if strings.TrimRight(line, "\r") == fmDelimiter {
			end := offset + lineLen
			return raw[:end], raw[end:]
		}
		offset += lineLen
		rest = remainder
		if !more {
			break
		}
	}

	// No closing delimiter: defined fallback, everything is body.
	return "", raw
}
