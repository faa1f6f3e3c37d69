// Package document implements the section-addressable document model used
// across mdbook: frontmatter isolation, heading-based section parsing,
// section lookup by index or heading text, and the pure content-editing
// operations that produce new document text plus a unified diff.
//
// Everything in this package is a pure function over in-memory strings.
// Nothing here touches the filesystem; persistence, backups, and dry-run
// gating live with the callers (internal/book, internal/cli, internal/mcp).
package document
