package book

import (
	"fmt"
	"os"

	"mdbook/internal/toc"
)

// UpdateTOC reconciles SUMMARY.md with the chapter files on disk. The
// default mode preserves the outline's existing hierarchy and only appends
// genuinely new files; flat mode regenerates a single-level list and
// discards any hand-made nesting.
func (b *Book) UpdateTOC(flat bool) (toc.MergeResult, error) {
	paths, err := DiscoverPaths(b.Root)
	if err != nil {
		return toc.MergeResult{}, err
	}

	summaryPath := b.SummaryPath()

	var tree *toc.Tree
	var res toc.MergeResult

	if flat {
		tree, res = toc.Flatten(paths)
		if b.Meta.Title != "" {
			tree.Title = b.Meta.Title
			tree.RawHeader = "# " + b.Meta.Title
		}
	} else {
		raw, err := os.ReadFile(summaryPath)
		if err != nil && !os.IsNotExist(err) {
			return toc.MergeResult{}, fmt.Errorf("failed to read outline: %w", err)
		}

		tree = toc.Parse(string(raw))
		if len(raw) == 0 && b.Meta.Title != "" {
			tree.Title = b.Meta.Title
			tree.RawHeader = "# " + b.Meta.Title
		}
		tree, res = toc.Merge(tree, paths)
	}

	if err := os.WriteFile(summaryPath, []byte(toc.Serialize(tree)), 0o644); err != nil {
		return toc.MergeResult{}, fmt.Errorf("failed to write outline: %w", err)
	}

	return res, nil
}

// LoadTOC parses the current outline file. A missing file yields an empty
// tree rather than an error.
func (b *Book) LoadTOC() (*toc.Tree, error) {
	raw, err := os.ReadFile(b.SummaryPath())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read outline: %w", err)
	}
	return toc.Parse(string(raw)), nil
}
