package fileops

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// markdownExtensions contains supported markdown file extensions
var markdownExtensions = []string{
	".md", ".mdown", ".mkdn", ".mkd", ".markdown",
}

// defaultSkipDirs are directory names never worth descending into when
// looking for chapter files.
var defaultSkipDirs = []string{
	".git", "node_modules", "vendor", "build", "dist", ".cache",
	".vscode", ".idea", "__pycache__",
}

// ScanOptions configures a markdown discovery scan.
type ScanOptions struct {
	// SkipNames lists exact base filenames to exclude (e.g. the outline
	// file itself).
	SkipNames []string

	// SkipDirs lists directory names to prune in addition to the
	// defaults.
	SkipDirs []string

	// IncludeHidden controls whether dot-files and dot-directories are
	// visited.
	IncludeHidden bool

	// MaxDepth bounds recursion depth relative to the scan root.
	// Zero means the default of 20.
	MaxDepth int
}

// ScanMarkdown walks root recursively and returns the relative paths of all
// markdown files found, sorted lexically, using forward slashes regardless
// of platform. Backup artifacts (*.bak) are always excluded.
func ScanMarkdown(root string, opts *ScanOptions) ([]string, error) {
	if opts == nil {
		opts = &ScanOptions{}
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 20
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scan root: %w", err)
	}
	if info, err := os.Stat(absRoot); err != nil {
		return nil, fmt.Errorf("scan root not accessible: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("scan root is not a directory: %s", absRoot)
	}

	skipDirs := append(slices.Clone(defaultSkipDirs), opts.SkipDirs...)

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			name := d.Name()
			if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if slices.Contains(skipDirs, name) {
				return filepath.SkipDir
			}
			if strings.Count(rel, "/")+1 >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			return nil
		}
		if !IsMarkdownFile(name) || strings.HasSuffix(name, ".bak") {
			return nil
		}
		if slices.Contains(opts.SkipNames, name) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", absRoot, err)
	}

	sort.Strings(files)
	return files, nil
}

// IsMarkdownFile checks if a filename has a markdown extension.
func IsMarkdownFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return slices.Contains(markdownExtensions, ext)
}
