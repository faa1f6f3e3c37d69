package content

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"mdbook/internal/document"
)

// IndexTerm is one {{index: term}} marker, tagged with the heading of the
// section it appears under so index entries can link back into the chapter.
type IndexTerm struct {
	Term           string
	SectionHeading string
	Anchor         string
	Line           int // 1-based, within the body
}

// TermLocation ties an extracted term to the chapter it came from.
type TermLocation struct {
	IndexTerm
	ChapterNumber int
	ChapterTitle  string
}

var (
	indexMarkerRe  = regexp.MustCompile(`\{\{index:\s*([^}]+)\}\}`)
	indexHeadingRe = regexp.MustCompile(`^(#{1,4})\s+(.+)$`)
)

// ExtractTerms collects the index markers of a body in order of appearance.
// Each term carries the most recent heading above it as its link context.
func ExtractTerms(body string) []IndexTerm {
	var terms []IndexTerm
	var heading, anchor string

	for i, line := range strings.Split(body, "\n") {
		if m := indexHeadingRe.FindStringSubmatch(line); m != nil {
			heading = strings.TrimSpace(m[2])
			anchor = document.Slugify(heading)
		}
		for _, m := range indexMarkerRe.FindAllStringSubmatch(line, -1) {
			terms = append(terms, IndexTerm{
				Term:           strings.TrimSpace(m[1]),
				SectionHeading: heading,
				Anchor:         anchor,
				Line:           i + 1,
			})
		}
	}
	return terms
}

// StripIndexMarkers removes {{index: term}} markers so rendered output does
// not show them.
func StripIndexMarkers(body string) string {
	return indexMarkerRe.ReplaceAllString(body, "")
}

// RenderIndex builds an alphabetical "# Index" markdown page from term
// locations. Entries are grouped under first-letter headings; each entry
// lists its chapter locations in the order the terms were collected.
func RenderIndex(locs []TermLocation) string {
	byTerm := make(map[string][]TermLocation)
	var order []string
	for _, loc := range locs {
		if _, seen := byTerm[loc.Term]; !seen {
			order = append(order, loc.Term)
		}
		byTerm[loc.Term] = append(byTerm[loc.Term], loc)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return strings.ToLower(order[i]) < strings.ToLower(order[j])
	})

	var sb strings.Builder
	sb.WriteString("# Index\n")

	currentLetter := ""
	for _, term := range order {
		letter := firstLetter(term)
		if letter != currentLetter {
			currentLetter = letter
			sb.WriteString("\n## " + letter + "\n\n")
		}

		parts := make([]string, 0, len(byTerm[term]))
		for _, loc := range byTerm[term] {
			if loc.Anchor != "" {
				parts = append(parts, fmt.Sprintf("[%s](#%s)", loc.ChapterTitle, loc.Anchor))
			} else {
				parts = append(parts, loc.ChapterTitle)
			}
		}
		fmt.Fprintf(&sb, "- **%s**: %s\n", term, strings.Join(parts, ", "))
	}
	return sb.String()
}

func firstLetter(term string) string {
	for _, r := range term {
		return string(unicode.ToUpper(r))
	}
	return ""
}
