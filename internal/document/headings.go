package document

import (
	"regexp"
	"strings"
)

// Heading is one ##/###/#### heading found in a chapter body. Level is 1
// for "##", 2 for "###", 3 for "####".
type Heading struct {
	Title  string
	Level  int
	Anchor string
}

// HeadingNode is a Heading with its nested sub-headings attached.
type HeadingNode struct {
	Heading
	Children []*HeadingNode
}

var headingRe = regexp.MustCompile(`^(#{2,4})\s+(.+)$`)

// ExtractHeadings collects every level 2-4 markdown heading in order of
// appearance. Two headings with the same text get the same anchor; the
// collision is deliberately left alone for anchor compatibility.
func ExtractHeadings(body string) []Heading {
	var headings []Heading
	for _, line := range strings.Split(body, "\n") {
		m := headingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		title := strings.TrimSpace(m[2])
		headings = append(headings, Heading{
			Title:  title,
			Level:  len(m[1]) - 1,
			Anchor: Slugify(title),
		})
	}
	return headings
}

// NestHeadings builds a tree from a flat heading sequence. Deeper headings
// attach to the nearest preceding shallower one; the stack discipline is the
// same one the outline parser uses, keyed on heading level instead of
// indentation.
func NestHeadings(headings []Heading) []*HeadingNode {
	var roots []*HeadingNode
	var stack []*HeadingNode

	for _, h := range headings {
		node := &HeadingNode{Heading: h}

		for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
		stack = append(stack, node)
	}

	return roots
}
