package content

import "strings"

// MermaidBlock is one ```mermaid fenced block. StartLine and EndLine are
// 1-based and cover the fence lines; Content is the diagram source between
// them.
type MermaidBlock struct {
	Content   string
	StartLine int
	EndLine   int
}

// ExtractMermaid collects the mermaid diagram blocks of a body in order.
// An opening fence without a closing one yields no block.
func ExtractMermaid(body string) []MermaidBlock {
	var blocks []MermaidBlock
	var inBlock bool
	var blockLines []string
	var start int

	for i, line := range strings.Split(body, "\n") {
		switch {
		case strings.HasPrefix(strings.TrimSpace(line), "```mermaid"):
			inBlock = true
			start = i + 1
			blockLines = nil
		case inBlock && strings.TrimSpace(line) == "```":
			inBlock = false
			blocks = append(blocks, MermaidBlock{
				Content:   strings.Join(blockLines, "\n"),
				StartLine: start,
				EndLine:   i + 1,
			})
		case inBlock:
			blockLines = append(blockLines, line)
		}
	}
	return blocks
}

// HasMermaid reports whether the body contains at least one complete
// mermaid block.
func HasMermaid(body string) bool {
	return len(ExtractMermaid(body)) > 0
}
