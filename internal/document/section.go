package document

import "strings"

const sectionHeadingPrefix = "## "

// Section is a contiguous span of a document body delimited by level-2
// headings. The first section covers any preamble before the first "## "
// line; it has no heading and is addressable only by index. StartLine and
// EndLine are 1-based and inclusive, counted within the body rather than the
// full document. Content is the verbatim text of the span, heading line
// included.
//
// Sections are produced fresh on every parse and never mutated in place.
type Section struct {
	Index     int
	Heading   string // empty for the preamble section
	Anchor    string
	StartLine int
	EndLine   int
	Content   string
}

// HasHeading reports whether the section starts with a level-2 heading.
func (s Section) HasHeading() bool {
	return s.Heading != ""
}

// ParseSections splits a body into its ordered sections. A new section
// starts at every line beginning with "## " (exactly two hashes; deeper
// headings stay inside their section). An empty body yields no sections.
//
// Joining the returned sections' Content in order with "\n" reconstructs the
// body exactly.
func ParseSections(body string) []Section {
	if body == "" {
		return nil
	}

	lines := strings.Split(body, "\n")

	// Section start offsets: the preamble (if any lines precede the first
	// heading) plus every level-2 heading line.
	starts := make([]int, 0, 8)
	for i, line := range lines {
		if isSectionHeading(line) {
			starts = append(starts, i)
		}
	}
	if len(starts) == 0 || starts[0] > 0 {
		starts = append([]int{0}, starts...)
	}

	sections := make([]Section, 0, len(starts))
	for i, start := range starts {
		end := len(lines)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		group := lines[start:end]
		heading := ""
		if isSectionHeading(group[0]) {
			heading = strings.TrimSpace(group[0][len(sectionHeadingPrefix):])
		}
		sections = append(sections, Section{
			Index:     i,
			Heading:   heading,
			Anchor:    Slugify(heading),
			StartLine: start + 1,
			EndLine:   end,
			Content:   strings.Join(group, "\n"),
		})
	}

	return sections
}

func isSectionHeading(line string) bool {
	return strings.HasPrefix(line, sectionHeadingPrefix) &&
		!strings.HasPrefix(line, "###")
}

// JoinSections is the inverse of ParseSections for untouched sections.
func JoinSections(sections []Section) string {
	parts := make([]string, len(sections))
	for i, s := range sections {
		parts[i] = s.Content
	}
	return strings.Join(parts, "\n")
}
