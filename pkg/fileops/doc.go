// Package fileops provides the file-level helpers the book tool needs:
// recursive markdown discovery under a book root and timestamped backup
// copies taken before destructive edits.
//
// The functions here are deliberately generic — they know about markdown
// files and skip lists, not about chapters or outlines. Domain rules (which
// directories hold chapters, which file is the outline) belong to
// internal/book.
package fileops
