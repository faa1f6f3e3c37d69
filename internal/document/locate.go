package document

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSectionNotFound is returned when a section reference resolves to
// nothing. Callers decide whether that is fatal.
var ErrSectionNotFound = errors.New("section not found")

// SectionRef identifies a section either by its 0-based index or by a
// case-insensitive substring of its heading text. The two cases are kept
// explicit so that the untyped identifiers arriving from the CLI and the
// MCP boundary are resolved exactly once, at the edge.
type SectionRef struct {
	byIndex bool
	index   int
	heading string
}

// ByIndex references a section by its 0-based index.
func ByIndex(i int) SectionRef {
	return SectionRef{byIndex: true, index: i}
}

// ByHeading references a section by heading substring match.
func ByHeading(text string) SectionRef {
	return SectionRef{heading: text}
}

// ParseSectionRef converts a raw identifier from the CLI or a JSON payload
// into a SectionRef. Numeric strings are treated as indices, per the API
// contract; everything else matches against heading text.
func ParseSectionRef(raw string) SectionRef {
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		return ByIndex(n)
	}
	return ByHeading(raw)
}

// String renders the reference the way the user supplied it.
func (r SectionRef) String() string {
	if r.byIndex {
		return strconv.Itoa(r.index)
	}
	return r.heading
}

// Locate resolves a section reference against a parsed section list.
// Heading matches are case-insensitive substring matches; the first match in
// index order wins. The preamble section has no heading and can only be
// found by index.
func Locate(sections []Section, ref SectionRef) (Section, error) {
	if r := ref; r.byIndex {
		for _, s := range sections {
			if s.Index == r.index {
				return s, nil
			}
		}
		return Section{}, fmt.Errorf("%w: index %d", ErrSectionNotFound, r.index)
	}

	needle := strings.ToLower(ref.heading)
	for _, s := range sections {
		if s.HasHeading() && strings.Contains(strings.ToLower(s.Heading), needle) {
			return s, nil
		}
	}
	return Section{}, fmt.Errorf("%w: heading %q", ErrSectionNotFound, ref.heading)
}
