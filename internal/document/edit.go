package document

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// InsertPosition says where inserted content goes relative to the located
// section.
type InsertPosition string

const (
	InsertBefore InsertPosition = "before"
	InsertAfter  InsertPosition = "after"
)

// EditOutcome is the result of a pure editing operation. NewContent is the
// full post-edit document text (frontmatter included) and Diff is a unified
// diff against the pre-edit text; both are populated whether or not the
// outcome is OK. Any validation warning forces OK to false, which callers
// must treat as a write gate.
type EditOutcome struct {
	OK         bool
	Message    string
	NewContent string
	Diff       string
	Warnings   []string
}

// Validate runs the post-edit content checks: an odd number of ``` fence
// markers and unbalanced square brackets each produce a warning.
func Validate(content string) []string {
	var warnings []string

	if strings.Count(content, "```")%2 != 0 {
		warnings = append(warnings, "unclosed code block (odd number of ``` markers)")
	}

	open := strings.Count(content, "[")
	closed := strings.Count(content, "]")
	if open != closed {
		warnings = append(warnings, fmt.Sprintf("mismatched brackets: %d '[' vs %d ']'", open, closed))
	}

	return warnings
}

// ReplaceWhole replaces the entire body, keeping the frontmatter block
// untouched. Leading newlines in the new body are stripped and a single
// trailing newline is enforced.
func ReplaceWhole(doc Document, newBody, name string) EditOutcome {
	body := strings.TrimLeft(newBody, "\n")
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	return finish(doc.Content(), doc.Frontmatter+body, name, "replaced chapter content")
}

// ReplaceSection substitutes the content of one section, locating it by
// index or heading text. With preserveHeading the original "## " heading
// line survives above the trimmed replacement text.
func ReplaceSection(doc Document, ref SectionRef, newBody string, preserveHeading bool, name string) (EditOutcome, error) {
	sections := ParseSections(doc.Body)
	target, err := Locate(sections, ref)
	if err != nil {
		return EditOutcome{}, err
	}

	replacement := strings.TrimSpace(newBody)
	if preserveHeading && target.HasHeading() {
		replacement = sectionHeadingPrefix + target.Heading + "\n\n" + replacement
	}

	parts := make([]editPart, 0, len(sections))
	for _, s := range sections {
		if s.Index == target.Index {
			parts = append(parts, editPart{content: replacement, blankBefore: true})
			continue
		}
		parts = append(parts, editPart{content: s.Content, blankBefore: s.HasHeading()})
	}

	newContent := doc.Frontmatter + joinParts(parts) + "\n"
	msg := fmt.Sprintf("replaced section %q", ref.String())
	return finish(doc.Content(), newContent, name, msg), nil
}

// InsertAtSection injects content as an additional span immediately before
// or after the located section, leaving every existing section intact.
func InsertAtSection(doc Document, ref SectionRef, content string, pos InsertPosition, name string) (EditOutcome, error) {
	sections := ParseSections(doc.Body)
	target, err := Locate(sections, ref)
	if err != nil {
		return EditOutcome{}, err
	}

	inserted := editPart{content: strings.TrimSpace(content), blankBefore: true}
	parts := make([]editPart, 0, len(sections)+1)
	for _, s := range sections {
		if s.Index == target.Index && pos == InsertBefore {
			parts = append(parts, inserted)
		}
		parts = append(parts, editPart{content: s.Content, blankBefore: s.HasHeading()})
		if s.Index == target.Index && pos == InsertAfter {
			parts = append(parts, inserted)
		}
	}

	newContent := doc.Frontmatter + joinParts(parts) + "\n"
	msg := fmt.Sprintf("inserted content %s section %q", pos, ref.String())
	return finish(doc.Content(), newContent, name, msg), nil
}

// Append adds content at the end of the document body. A body that already
// ends in a newline gets a single-newline separator, anything else a blank
// line; the result always ends with exactly one trailing newline.
func Append(doc Document, content, name string) EditOutcome {
	appended := strings.TrimSpace(content)

	var body string
	switch {
	case doc.Body == "":
		body = appended
	case strings.HasSuffix(doc.Body, "\n"):
		body = doc.Body + appended
	default:
		body = doc.Body + "\n\n" + appended
	}
	body = strings.TrimRight(body, "\n") + "\n"

	return finish(doc.Content(), doc.Frontmatter+body, name, "appended content")
}

type editPart struct {
	content     string
	blankBefore bool
}

// joinParts reassembles edited section spans, inserting a blank line before
// any span that begins a heading or was injected as a standalone block.
// Trailing newlines inside each span are normalized away so the separators
// stay single.
func joinParts(parts []editPart) string {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			if p.blankBefore {
				b.WriteString("\n\n")
			} else {
				b.WriteString("\n")
			}
		}
		b.WriteString(strings.TrimRight(p.content, "\n"))
	}
	return b.String()
}

func finish(oldContent, newContent, name, okMessage string) EditOutcome {
	if name == "" {
		name = "chapter.md"
	}

	outcome := EditOutcome{
		NewContent: newContent,
		Diff:       udiff.Unified("a/"+name, "b/"+name, oldContent, newContent),
		Warnings:   Validate(newContent),
	}

	if len(outcome.Warnings) > 0 {
		outcome.Message = "markdown validation failed: " + strings.Join(outcome.Warnings, "; ")
		return outcome
	}

	outcome.OK = true
	outcome.Message = okMessage
	return outcome
}
