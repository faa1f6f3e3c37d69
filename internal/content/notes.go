package content

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Note is one timestamped editorial comment stored inside a chapter body as
// an HTML comment: <!-- NOTE: 2024-01-19T15:30:00 - text -->. Notes survive
// rendering invisibly and stay greppable in the source.
type Note struct {
	Timestamp      string
	Text           string
	SectionHeading string // the "## " heading the note sits under, if any
	Line           int    // 1-based, within the body
}

const noteTimeLayout = "2006-01-02T15:04:05"

var noteRe = regexp.MustCompile(`<!-- NOTE: (\S+) - (.*?) -->`)

// FormatNote renders the comment form of a note.
func FormatNote(ts time.Time, text string) string {
	return fmt.Sprintf("<!-- NOTE: %s - %s -->", ts.Format(noteTimeLayout), text)
}

// ExtractNotes collects the notes of a body in order of appearance, each
// tagged with the section heading above it.
func ExtractNotes(body string) []Note {
	var notes []Note
	var heading string

	for i, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "## ") && !strings.HasPrefix(line, "###") {
			heading = strings.TrimSpace(line[3:])
		}
		for _, m := range noteRe.FindAllStringSubmatch(line, -1) {
			notes = append(notes, Note{
				Timestamp:      m[1],
				Text:           m[2],
				SectionHeading: heading,
				Line:           i + 1,
			})
		}
	}
	return notes
}
