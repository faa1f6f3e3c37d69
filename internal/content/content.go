// Package content analyzes chapter bodies for the features that live inside
// the markdown itself: image references, mermaid diagram blocks, index
// markers and editorial notes. Everything here is pure over body text; the
// book layer decides which chapters to feed in and what to do with the
// results.
package content

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ImageRef is one ![alt](path) reference found in a chapter body.
type ImageRef struct {
	Alt    string
	Path   string
	Line   int // 1-based, within the body
	Exists bool
}

var imageRe = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)

// ExtractImages finds every markdown image reference in body, in order of
// appearance. With validate set, relative paths are resolved against
// chapterDir and checked on disk; external URLs are assumed reachable.
func ExtractImages(body, chapterDir string, validate bool) []ImageRef {
	var images []ImageRef
	for i, line := range strings.Split(body, "\n") {
		for _, m := range imageRe.FindAllStringSubmatch(line, -1) {
			ref := ImageRef{Alt: m[1], Path: m[2], Line: i + 1, Exists: true}
			if validate && !isExternalURL(ref.Path) {
				_, err := os.Stat(resolveImagePath(ref.Path, chapterDir))
				ref.Exists = err == nil
			}
			images = append(images, ref)
		}
	}
	return images
}

// MissingImages returns only the references that do not resolve to a file.
func MissingImages(body, chapterDir string) []ImageRef {
	var missing []ImageRef
	for _, ref := range ExtractImages(body, chapterDir, true) {
		if !ref.Exists {
			missing = append(missing, ref)
		}
	}
	return missing
}

func isExternalURL(path string) bool {
	return strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "//")
}

func resolveImagePath(imgPath, chapterDir string) string {
	imgPath = strings.TrimPrefix(imgPath, "./")
	return filepath.Join(chapterDir, filepath.FromSlash(imgPath))
}
