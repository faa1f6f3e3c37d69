// Package toc parses, merges, and serializes the SUMMARY.md outline file:
// a hand-editable, arbitrarily nested list of chapter links with optional
// "## Part ..." group headers. Parsing is defensive — lines that match no
// known shape are skipped, never fatal — and untouched portions of the
// outline round-trip losslessly through parse and serialize.
package toc

import (
	"regexp"
	"strings"
)

// Entry is one node of the outline tree. Group headers carry no path and
// reset the nesting context: nothing parsed after a group header nests under
// anything parsed before it.
type Entry struct {
	Title         string
	Path          string // empty for group headers and plain entries
	IndentLevel   int
	Children      []*Entry
	IsGroupHeader bool
	RawLine       string
}

// Tree is a parsed outline: the verbatim "# ..." header line plus the
// top-level entries. Trees are rebuilt from raw text on every load and
// discarded after serialization; there is no live tree held across calls.
type Tree struct {
	Title     string
	RawHeader string
	Entries   []*Entry
}

const defaultHeader = "# Summary"

var (
	linkRe  = regexp.MustCompile(`^(\s*)-\s*\[([^\]]+)\]\(([^)]+)\)\s*$`)
	plainRe = regexp.MustCompile(`^(\s*)-\s*(.+?)\s*$`)
	groupRe = regexp.MustCompile(`^##\s+(.+)$`)
)

// Parse builds an outline tree from raw SUMMARY.md text.
//
// The first line starting with a single "# " becomes the preserved header;
// everything before it is discarded. Remaining lines are classified as group
// headers, linked entries, or plain entries; indent level is leading spaces
// divided by two (odd counts alias down). Anything unrecognized — including
// entries with an unmatched "[" — is skipped.
func Parse(raw string) *Tree {
	tree := &Tree{Title: "Summary", RawHeader: defaultHeader}
	lines := strings.Split(raw, "\n")

	for i, line := range lines {
		if strings.HasPrefix(line, "# ") {
			tree.RawHeader = line
			tree.Title = strings.TrimSpace(line[2:])
			lines = lines[i+1:]
			break
		}
	}

	// Stack of (indent level, entry) pairs tracking the open ancestry.
	var stack []stackFrame

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		if m := groupRe.FindStringSubmatch(stripped); m != nil {
			entry := &Entry{
				Title:         m[1],
				IsGroupHeader: true,
				RawLine:       stripped,
			}
			tree.Entries = append(tree.Entries, entry)
			stack = stack[:0] // group header resets nesting
			continue
		}

		if m := linkRe.FindStringSubmatch(line); m != nil {
			entry := &Entry{
				Title:       m[2],
				Path:        m[3],
				IndentLevel: len(m[1]) / 2,
				RawLine:     line,
			}
			stack = attach(tree, stack, entry)
			continue
		}

		if m := plainRe.FindStringSubmatch(line); m != nil {
			title := m[2]
			if strings.Contains(title, "[") {
				// Malformed link, treated as noise.
				continue
			}
			entry := &Entry{
				Title:       title,
				IndentLevel: len(m[1]) / 2,
				RawLine:     line,
			}
			stack = attach(tree, stack, entry)
		}
	}

	return tree
}

type stackFrame struct {
	level int
	entry *Entry
}

func attach(tree *Tree, stack []stackFrame, entry *Entry) []stackFrame {
	for len(stack) > 0 && stack[len(stack)-1].level >= entry.IndentLevel {
		stack = stack[:len(stack)-1]
	}

	if len(stack) > 0 {
		parent := stack[len(stack)-1].entry
		parent.Children = append(parent.Children, entry)
	} else {
		tree.Entries = append(tree.Entries, entry)
	}

	return append(stack, stackFrame{level: entry.IndentLevel, entry: entry})
}

// Paths collects every path referenced anywhere in the tree, in pre-order.
func (t *Tree) Paths() []string {
	var paths []string
	var walk func(entries []*Entry)
	walk = func(entries []*Entry) {
		for _, e := range entries {
			if e.Path != "" {
				paths = append(paths, e.Path)
			}
			walk(e.Children)
		}
	}
	walk(t.Entries)
	return paths
}

// Serialize renders the tree back to SUMMARY.md text: header, blank line,
// then one line per node in pre-order, with group headers surrounded by
// blank lines. Stored titles and paths are emitted untouched.
func Serialize(t *Tree) string {
	lines := []string{t.RawHeader, ""}

	var render func(entries []*Entry)
	render = func(entries []*Entry) {
		for _, e := range entries {
			lines = append(lines, e.markdown())
			render(e.Children)
		}
	}
	render(t.Entries)

	return strings.Join(lines, "\n") + "\n"
}

func (e *Entry) markdown() string {
	if e.IsGroupHeader {
		return "\n" + e.RawLine + "\n"
	}
	indent := strings.Repeat("  ", e.IndentLevel)
	if e.Path != "" {
		return indent + "- [" + e.Title + "](" + e.Path + ")"
	}
	return indent + "- " + e.Title
}
