package toc

import (
	"path"
	"regexp"
	"strings"
)

// MergeResult reports what Merge did with the discovered file list.
type MergeResult struct {
	Added    []string
	Existing []string
}

// Merge reconciles an outline tree against a freshly discovered list of
// chapter paths. Paths already present anywhere in the tree (compared in
// normalized form, stored form untouched) are left exactly where the author
// put them; genuinely new paths are appended as top-level leaves at the end
// of the tree with titles derived from their filenames.
//
// Merge never reorders, renests, or removes existing entries, so applying it
// twice with the same discovered list adds nothing the second time.
func Merge(tree *Tree, discovered []string) (*Tree, MergeResult) {
	known := make(map[string]struct{})
	for _, p := range tree.Paths() {
		known[normalizePath(p)] = struct{}{}
	}

	var res MergeResult
	for _, p := range discovered {
		if _, ok := known[normalizePath(p)]; ok {
			res.Existing = append(res.Existing, p)
			continue
		}
		res.Added = append(res.Added, p)
		tree.Entries = append(tree.Entries, &Entry{
			Title: TitleFromPath(p),
			Path:  p,
		})
	}

	return tree, res
}

// Flatten regenerates a single-level outline from the discovered paths
// alone, discarding any prior hierarchy. This is the explicit destructive
// alternative to Merge and never the default.
func Flatten(discovered []string) (*Tree, MergeResult) {
	tree := &Tree{Title: "Summary", RawHeader: defaultHeader}
	var res MergeResult
	for _, p := range discovered {
		res.Added = append(res.Added, p)
		tree.Entries = append(tree.Entries, &Entry{
			Title: TitleFromPath(p),
			Path:  p,
		})
	}
	return tree, res
}

var chapterPrefixRe = regexp.MustCompile(`(?i)^(ch(apter)?[-_]?)?\d+[-_]?`)

// TitleFromPath derives a human title from a chapter filename: the numeric
// chapter prefix is stripped, separators become spaces, and the remainder is
// title-cased. A name that is nothing but prefix falls back to the raw stem.
func TitleFromPath(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	stem := strings.TrimSuffix(base, path.Ext(base))

	name := chapterPrefixRe.ReplaceAllString(stem, "")
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.TrimSpace(name)

	if name == "" {
		name = stem
	}
	return titleCase(name)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// normalizePath canonicalizes a path for comparison only: forward slashes,
// no leading "./", lower case.
func normalizePath(p string) string {
	n := strings.ReplaceAll(p, "\\", "/")
	n = strings.TrimPrefix(n, "./")
	return strings.ToLower(n)
}
