package document

import (
	"regexp"
	"strings"
)

var (
	// \w is ASCII-only in Go regexp; headings can carry accented letters,
	// so the strip class spells out Unicode letters and digits.
	slugStripRe    = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	slugCollapseRe = regexp.MustCompile(`[\s_-]+`)
)

// Slugify converts heading or title text to a URL-friendly anchor.
// Lowercases, strips punctuation, and collapses whitespace, underscores
// and hyphen runs into single hyphens. Idempotent; empty in, empty out.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugCollapseRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
