package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"mdbook/internal/book"
	"mdbook/internal/document"
	"mdbook/internal/history"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("book_info",
		mcp.WithDescription("Get book metadata and the chapter list."),
	), s.handleBookInfo)

	s.mcpServer.AddTool(mcp.NewTool("list_chapters",
		mcp.WithDescription("List all chapters with number, title and path."),
	), s.handleListChapters)

	s.mcpServer.AddTool(mcp.NewTool("read_chapter",
		mcp.WithDescription("Read the full raw content of a chapter, frontmatter included."),
		mcp.WithNumber("chapter", mcp.Required(), mcp.Description("Chapter number (0 for the intro)")),
	), s.handleReadChapter)

	s.mcpServer.AddTool(mcp.NewTool("list_sections",
		mcp.WithDescription("List the sections (## headings) of a chapter with their indexes."),
		mcp.WithNumber("chapter", mcp.Required(), mcp.Description("Chapter number")),
	), s.handleListSections)

	s.mcpServer.AddTool(mcp.NewTool("read_section",
		mcp.WithDescription("Read one section of a chapter, located by heading text or numeric index."),
		mcp.WithNumber("chapter", mcp.Required(), mcp.Description("Chapter number")),
		mcp.WithString("section", mcp.Required(), mcp.Description("Section heading text (case-insensitive substring) or numeric index")),
	), s.handleReadSection)

	s.mcpServer.AddTool(mcp.NewTool("update_chapter",
		mcp.WithDescription("Replace a chapter's whole body, keeping its frontmatter."),
		mcp.WithNumber("chapter", mcp.Required(), mcp.Description("Chapter number")),
		mcp.WithString("content", mcp.Required(), mcp.Description("New chapter body")),
		mcp.WithBoolean("dry_run", mcp.Description("Preview the change without writing (default: false)")),
		mcp.WithBoolean("backup", mcp.Description("Take a timestamped backup before writing (default: true)")),
	), s.handleUpdateChapter)

	s.mcpServer.AddTool(mcp.NewTool("append_content",
		mcp.WithDescription("Append content to the end of a chapter."),
		mcp.WithNumber("chapter", mcp.Required(), mcp.Description("Chapter number")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Content to append")),
		mcp.WithBoolean("dry_run", mcp.Description("Preview the change without writing (default: false)")),
		mcp.WithBoolean("backup", mcp.Description("Take a timestamped backup before writing (default: true)")),
	), s.handleAppendContent)

	s.mcpServer.AddTool(mcp.NewTool("insert_at_section",
		mcp.WithDescription("Insert content before or after a section of a chapter."),
		mcp.WithNumber("chapter", mcp.Required(), mcp.Description("Chapter number")),
		mcp.WithString("section", mcp.Required(), mcp.Description("Section heading text or numeric index")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Content to insert, typically a new ## section")),
		mcp.WithString("position", mcp.Description("\"before\" or \"after\" the section (default: after)"), mcp.Enum("before", "after")),
		mcp.WithBoolean("dry_run", mcp.Description("Preview the change without writing (default: false)")),
		mcp.WithBoolean("backup", mcp.Description("Take a timestamped backup before writing (default: true)")),
	), s.handleInsertAtSection)

	s.mcpServer.AddTool(mcp.NewTool("replace_section",
		mcp.WithDescription("Replace one section of a chapter, optionally keeping its heading."),
		mcp.WithNumber("chapter", mcp.Required(), mcp.Description("Chapter number")),
		mcp.WithString("section", mcp.Required(), mcp.Description("Section heading text or numeric index")),
		mcp.WithString("content", mcp.Required(), mcp.Description("New section content")),
		mcp.WithBoolean("preserve_heading", mcp.Description("Keep the original ## heading (default: true)")),
		mcp.WithBoolean("dry_run", mcp.Description("Preview the change without writing (default: false)")),
		mcp.WithBoolean("backup", mcp.Description("Take a timestamped backup before writing (default: true)")),
	), s.handleReplaceSection)

	s.mcpServer.AddTool(mcp.NewTool("update_toc",
		mcp.WithDescription("Reconcile SUMMARY.md with the chapter files on disk. Preserves existing hierarchy unless flat is set."),
		mcp.WithBoolean("flat", mcp.Description("Regenerate a flat single-level outline, discarding nesting (default: false)")),
	), s.handleUpdateTOC)

	s.mcpServer.AddTool(mcp.NewTool("generate_toc",
		mcp.WithDescription("Generate an outline preview from the chapters on disk without writing SUMMARY.md."),
		mcp.WithBoolean("include_sections", mcp.Description("Nest each chapter's ## headings under its entry (default: false)")),
	), s.handleGenerateTOC)

	s.mcpServer.AddTool(mcp.NewTool("extract_images",
		mcp.WithDescription("List the image references of a chapter, with existence checks for local paths."),
		mcp.WithNumber("chapter", mcp.Required(), mcp.Description("Chapter number")),
		mcp.WithBoolean("validate", mcp.Description("Check local image paths on disk (default: true)")),
	), s.handleExtractImages)

	s.mcpServer.AddTool(mcp.NewTool("validate_images",
		mcp.WithDescription("Scan every chapter for image references that do not resolve to a file."),
	), s.handleValidateImages)

	s.mcpServer.AddTool(mcp.NewTool("extract_mermaid",
		mcp.WithDescription("Extract the mermaid diagram blocks of a chapter."),
		mcp.WithNumber("chapter", mcp.Required(), mcp.Description("Chapter number")),
	), s.handleExtractMermaid)

	s.mcpServer.AddTool(mcp.NewTool("generate_index",
		mcp.WithDescription("Generate an alphabetical index page from {{index: term}} markers."),
	), s.handleGenerateIndex)

	s.mcpServer.AddTool(mcp.NewTool("add_note",
		mcp.WithDescription("Append a timestamped HTML-comment note to the end of a section."),
		mcp.WithNumber("chapter", mcp.Required(), mcp.Description("Chapter number")),
		mcp.WithString("section", mcp.Required(), mcp.Description("Section heading text or numeric index")),
		mcp.WithString("note", mcp.Required(), mcp.Description("The note text")),
		mcp.WithBoolean("dry_run", mcp.Description("Preview the change without writing (default: false)")),
		mcp.WithBoolean("backup", mcp.Description("Take a timestamped backup before writing (default: true)")),
	), s.handleAddNote)

	s.mcpServer.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List the notes stored in a chapter."),
		mcp.WithNumber("chapter", mcp.Required(), mcp.Description("Chapter number")),
	), s.handleListNotes)

	s.mcpServer.AddTool(mcp.NewTool("chapter_history",
		mcp.WithDescription("Get the git commit history of a chapter file."),
		mcp.WithNumber("chapter", mcp.Required(), mcp.Description("Chapter number")),
		mcp.WithNumber("limit", mcp.Description("Maximum commits to return (default: 50)")),
	), s.handleChapterHistory)

	s.mcpServer.AddTool(mcp.NewTool("chapter_diff",
		mcp.WithDescription("Diff a chapter file between two git revisions."),
		mcp.WithNumber("chapter", mcp.Required(), mcp.Description("Chapter number")),
		mcp.WithString("from", mcp.Description("Older revision (default: HEAD~1)")),
		mcp.WithString("to", mcp.Description("Newer revision (default: HEAD)")),
	), s.handleChapterDiff)

	s.mcpServer.AddTool(mcp.NewTool("chapter_at_commit",
		mcp.WithDescription("Get a chapter's content as of a git revision."),
		mcp.WithNumber("chapter", mcp.Required(), mcp.Description("Chapter number")),
		mcp.WithString("commit", mcp.Required(), mcp.Description("Revision (hash, HEAD~2, branch name)")),
	), s.handleChapterAtCommit)

	s.mcpServer.AddTool(mcp.NewTool("recent_changes",
		mcp.WithDescription("List recent commits touching the book, with the files each changed."),
		mcp.WithNumber("limit", mcp.Description("Maximum commits to return (default: 10)")),
	), s.handleRecentChanges)
}

// loadBook opens the book fresh for each request.
func (s *Server) loadBook() (*book.Book, error) {
	return book.Load(s.root)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to encode result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}

type chapterSummary struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Draft  bool   `json:"draft,omitempty"`
	Path   string `json:"path"`
}

func chapterSummaries(b *book.Book) []chapterSummary {
	out := make([]chapterSummary, 0, len(b.Chapters))
	for _, ch := range b.Chapters {
		out = append(out, chapterSummary{
			Number: ch.Number,
			Title:  ch.Title,
			Draft:  ch.Draft,
			Path:   ch.RelPath,
		})
	}
	return out
}

func (s *Server) handleBookInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b, err := s.loadBook()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"title":         b.Meta.Title,
		"author":        b.Meta.Author,
		"description":   b.Meta.Description,
		"language":      b.Meta.Language,
		"created":       b.Meta.Created,
		"root":          b.Root,
		"chapter_count": len(b.Chapters),
		"chapters":      chapterSummaries(b),
	})
}

func (s *Server) handleListChapters(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b, err := s.loadBook()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(chapterSummaries(b))
}

func (s *Server) handleReadChapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, err := req.RequireInt("chapter")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := s.loadBook()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	_, raw, err := b.ReadChapter(number)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(raw), nil
}

func (s *Server) handleListSections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, err := req.RequireInt("chapter")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := s.loadBook()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ch, sections, err := b.Sections(number)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	type sectionSummary struct {
		Index   int    `json:"index"`
		Heading string `json:"heading"`
		Anchor  string `json:"anchor,omitempty"`
		Lines   int    `json:"lines"`
	}
	out := make([]sectionSummary, 0, len(sections))
	for _, sec := range sections {
		heading := sec.Heading
		if !sec.HasHeading() {
			heading = "(preamble)"
		}
		out = append(out, sectionSummary{
			Index:   sec.Index,
			Heading: heading,
			Anchor:  sec.Anchor,
			Lines:   sec.EndLine - sec.StartLine + 1,
		})
	}
	return jsonResult(map[string]any{
		"chapter":  ch.Number,
		"title":    ch.Title,
		"sections": out,
	})
}

func (s *Server) handleReadSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, err := req.RequireInt("chapter")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sectionArg, err := req.RequireString("section")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	b, err := s.loadBook()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	_, sections, err := b.Sections(number)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sec, err := document.Locate(sections, document.ParseSectionRef(sectionArg))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(sec.Content), nil
}

type editPayload struct {
	OK         bool     `json:"ok"`
	Message    string   `json:"message"`
	Written    bool     `json:"written"`
	DryRun     bool     `json:"dry_run,omitempty"`
	BackupPath string   `json:"backup_path,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	Diff       string   `json:"diff,omitempty"`
}

func editResultPayload(res book.EditResult, opts book.EditOptions) (*mcp.CallToolResult, error) {
	return jsonResult(editPayload{
		OK:         res.OK,
		Message:    res.Message,
		Written:    res.Written,
		DryRun:     opts.DryRun,
		BackupPath: res.BackupPath,
		Warnings:   res.Warnings,
		Diff:       res.Diff,
	})
}

func editOptions(req mcp.CallToolRequest) book.EditOptions {
	return book.EditOptions{
		DryRun: req.GetBool("dry_run", false),
		Backup: req.GetBool("backup", true),
	}
}

func (s *Server) handleUpdateChapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, err := req.RequireInt("chapter")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	b, err := s.loadBook()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := editOptions(req)
	res, err := b.UpdateChapter(number, content, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return editResultPayload(res, opts)
}

func (s *Server) handleAppendContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, err := req.RequireInt("chapter")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	b, err := s.loadBook()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := editOptions(req)
	res, err := b.AppendToChapter(number, content, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return editResultPayload(res, opts)
}

func (s *Server) handleInsertAtSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, err := req.RequireInt("chapter")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sectionArg, err := req.RequireString("section")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pos := document.InsertPosition(req.GetString("position", string(document.InsertAfter)))
	if pos != document.InsertBefore && pos != document.InsertAfter {
		return mcp.NewToolResultError(fmt.Sprintf("invalid position %q, want \"before\" or \"after\"", pos)), nil
	}

	b, err := s.loadBook()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := editOptions(req)
	res, err := b.InsertAtSection(number, document.ParseSectionRef(sectionArg), content, pos, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return editResultPayload(res, opts)
}

func (s *Server) handleReplaceSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, err := req.RequireInt("chapter")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sectionArg, err := req.RequireString("section")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	b, err := s.loadBook()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := editOptions(req)
	res, err := b.ReplaceSection(number, document.ParseSectionRef(sectionArg), content,
		req.GetBool("preserve_heading", true), opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return editResultPayload(res, opts)
}

func (s *Server) handleUpdateTOC(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b, err := s.loadBook()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := b.UpdateTOC(req.GetBool("flat", false))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"added":    res.Added,
		"existing": res.Existing,
	})
}

func (s *Server) handleGenerateTOC(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b, err := s.loadBook()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	outline, err := b.GenerateOutline(req.GetBool("include_sections", false))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(outline), nil
}

func (s *Server) handleExtractImages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, err := req.RequireInt("chapter")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := s.loadBook()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ch, images, err := b.ChapterImages(number, req.GetBool("validate", true))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"chapter": ch.Number,
		"images":  images,
	})
}

func (s *Server) handleValidateImages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b, err := s.loadBook()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	missing, err := b.MissingImages()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"ok":      len(missing) == 0,
		"missing": missing,
	})
}

func (s *Server) handleExtractMermaid(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, err := req.RequireInt("chapter")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := s.loadBook()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ch, blocks, err := b.ChapterMermaid(number)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"chapter": ch.Number,
		"blocks":  blocks,
	})
}

func (s *Server) handleGenerateIndex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b, err := s.loadBook()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	index, err := b.BuildIndex()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(index), nil
}

func (s *Server) handleAddNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, err := req.RequireInt("chapter")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sectionArg, err := req.RequireString("section")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := req.RequireString("note")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	b, err := s.loadBook()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := editOptions(req)
	res, err := b.AddNote(number, document.ParseSectionRef(sectionArg), note, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return editResultPayload(res, opts)
}

func (s *Server) handleListNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, err := req.RequireInt("chapter")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := s.loadBook()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ch, notes, err := b.ListNotes(number)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"chapter": ch.Number,
		"notes":   notes,
	})
}

func (s *Server) withHistory(fn func(b *book.Book, svc *history.Service) (*mcp.CallToolResult, error)) (*mcp.CallToolResult, error) {
	b, err := s.loadBook()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	svc, err := history.Open(b.Root, s.logger)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return fn(b, svc)
}

type commitPayload struct {
	Hash    string `json:"hash"`
	Short   string `json:"short_hash"`
	Author  string `json:"author"`
	Email   string `json:"email"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

func toCommitPayload(c history.CommitInfo) commitPayload {
	return commitPayload{
		Hash:    c.Hash,
		Short:   c.ShortHash,
		Author:  c.Author,
		Email:   c.Email,
		Date:    c.Date.Format("2006-01-02 15:04:05"),
		Message: c.Summary(),
	}
}

func (s *Server) handleChapterHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, err := req.RequireInt("chapter")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := req.GetInt("limit", 50)

	return s.withHistory(func(b *book.Book, svc *history.Service) (*mcp.CallToolResult, error) {
		ch, err := b.Chapter(number)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		commits, err := svc.FileHistory(ch.RelPath, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out := make([]commitPayload, 0, len(commits))
		for _, c := range commits {
			out = append(out, toCommitPayload(c))
		}
		return jsonResult(map[string]any{
			"chapter": ch.Number,
			"path":    ch.RelPath,
			"commits": out,
		})
	})
}

func (s *Server) handleChapterDiff(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, err := req.RequireInt("chapter")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	from := req.GetString("from", "HEAD~1")
	to := req.GetString("to", "HEAD")

	return s.withHistory(func(b *book.Book, svc *history.Service) (*mcp.CallToolResult, error) {
		ch, err := b.Chapter(number)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		diff, err := svc.FileDiff(ch.RelPath, from, to)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(map[string]any{
			"path":      diff.Path,
			"from":      from,
			"to":        to,
			"additions": diff.Additions,
			"deletions": diff.Deletions,
			"patch":     diff.Patch,
		})
	})
}

func (s *Server) handleChapterAtCommit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, err := req.RequireInt("chapter")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rev, err := req.RequireString("commit")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.withHistory(func(b *book.Book, svc *history.Service) (*mcp.CallToolResult, error) {
		ch, err := b.Chapter(number)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		content, err := svc.FileAtCommit(ch.RelPath, rev)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(content), nil
	})
}

func (s *Server) handleRecentChanges(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)

	return s.withHistory(func(b *book.Book, svc *history.Service) (*mcp.CallToolResult, error) {
		changes, err := svc.RecentChanges(limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		type changePayload struct {
			Commit commitPayload `json:"commit"`
			Files  []string      `json:"files"`
		}
		out := make([]changePayload, 0, len(changes))
		for _, c := range changes {
			out = append(out, changePayload{Commit: toCommitPayload(c.Commit), Files: c.Files})
		}
		return jsonResult(out)
	})
}
