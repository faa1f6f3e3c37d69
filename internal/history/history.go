// Package history answers questions about a book's git log: per-chapter
// commit history, diffs between revisions, file content at a revision, and
// the most recent changes across the whole book. It opens the repository
// read-only and never writes to it.
package history

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"mdbook/internal/logging"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/plumbing/storer"
)

var (
	// ErrNotRepository is returned when the book directory is not inside a
	// git working tree.
	ErrNotRepository = errors.New("book is not inside a git repository")

	// ErrNoHistory is returned when a file has no commits touching it.
	ErrNoHistory = errors.New("no git history for file")
)

// CommitInfo is one commit as shown to the user.
type CommitInfo struct {
	Hash      string
	ShortHash string
	Author    string
	Email     string
	Date      time.Time
	Message   string
}

// Summary returns the first line of the commit message.
func (c CommitInfo) Summary() string {
	msg := strings.TrimSpace(c.Message)
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return msg[:i]
	}
	return msg
}

// FileDiff is the per-file portion of a diff between two revisions.
type FileDiff struct {
	Path      string
	Additions int
	Deletions int
	Patch     string
}

// RecentChange pairs a commit with the book files it touched.
type RecentChange struct {
	Commit CommitInfo
	Files  []string
}

// Service wraps an opened repository rooted at or above the book directory.
type Service struct {
	repo    *git.Repository
	bookDir string // book root, absolute
	repoDir string // repository working tree root, absolute
	logger  *logging.AppLogger
}

// Open locates the git repository containing bookDir. The repository root
// may be an ancestor of the book root; relative paths handed to the other
// methods are book-relative and translated internally.
func Open(bookDir string, logger *logging.AppLogger) (*Service, error) {
	absBook, err := filepath.Abs(bookDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve book directory: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(absBook, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, ErrNotRepository
		}
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve worktree: %w", err)
	}

	if logger == nil {
		logger = logging.GetDefault()
	}
	logger.Debug("Opened git repository", "book", absBook, "repo", wt.Filesystem.Root())

	return &Service{
		repo:    repo,
		bookDir: absBook,
		repoDir: wt.Filesystem.Root(),
		logger:  logger,
	}, nil
}

// repoRel translates a book-relative path into a repository-relative one.
func (s *Service) repoRel(rel string) (string, error) {
	abs := filepath.Join(s.bookDir, filepath.FromSlash(rel))
	out, err := filepath.Rel(s.repoDir, abs)
	if err != nil {
		return "", fmt.Errorf("path %q is outside the repository: %w", rel, err)
	}
	return filepath.ToSlash(out), nil
}

// FileHistory returns the commits that touched one book file, newest first,
// bounded by limit (0 means no bound).
func (s *Service) FileHistory(rel string, limit int) ([]CommitInfo, error) {
	target, err := s.repoRel(rel)
	if err != nil {
		return nil, err
	}

	iter, err := s.repo.Log(&git.LogOptions{FileName: &target})
	if err != nil {
		return nil, fmt.Errorf("failed to read log for %s: %w", rel, err)
	}
	defer iter.Close()

	var commits []CommitInfo
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, toCommitInfo(c))
		if limit > 0 && len(commits) >= limit {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk log for %s: %w", rel, err)
	}
	if len(commits) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoHistory, rel)
	}
	return commits, nil
}

// FileDiff diffs one book file between two revisions. Revisions accept
// anything git rev-parse accepts (hashes, HEAD~2, branch names). An empty
// `to` means HEAD.
func (s *Service) FileDiff(rel, from, to string) (FileDiff, error) {
	target, err := s.repoRel(rel)
	if err != nil {
		return FileDiff{}, err
	}
	if to == "" {
		to = "HEAD"
	}

	fromTree, err := s.treeAt(from)
	if err != nil {
		return FileDiff{}, err
	}
	toTree, err := s.treeAt(to)
	if err != nil {
		return FileDiff{}, err
	}

	changes, err := fromTree.Diff(toTree)
	if err != nil {
		return FileDiff{}, fmt.Errorf("failed to diff %s..%s: %w", from, to, err)
	}

	for _, change := range changes {
		if change.From.Name != target && change.To.Name != target {
			continue
		}
		patch, err := change.Patch()
		if err != nil {
			return FileDiff{}, fmt.Errorf("failed to compute patch for %s: %w", rel, err)
		}
		d := FileDiff{Path: rel, Patch: patch.String()}
		for _, st := range patch.Stats() {
			d.Additions += st.Addition
			d.Deletions += st.Deletion
		}
		return d, nil
	}

	// No change between the two revisions.
	return FileDiff{Path: rel}, nil
}

// FileAtCommit returns the file content as of the given revision.
func (s *Service) FileAtCommit(rel, rev string) (string, error) {
	target, err := s.repoRel(rel)
	if err != nil {
		return "", err
	}

	commit, err := s.commitAt(rev)
	if err != nil {
		return "", err
	}

	file, err := commit.File(target)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return "", fmt.Errorf("%s does not exist at %s", rel, rev)
		}
		return "", fmt.Errorf("failed to read %s at %s: %w", rel, rev, err)
	}
	return file.Contents()
}

// RecentChanges walks HEAD's history and reports, per commit, which files
// under the book directory changed. Commits touching nothing under the book
// are skipped. limit bounds the number of reported commits.
func (s *Service) RecentChanges(limit int) ([]RecentChange, error) {
	if limit <= 0 {
		limit = 10
	}

	prefix, err := filepath.Rel(s.repoDir, s.bookDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve book path in repository: %w", err)
	}
	prefix = filepath.ToSlash(prefix)
	if prefix == "." {
		prefix = ""
	} else {
		prefix += "/"
	}

	iter, err := s.repo.Log(&git.LogOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	defer iter.Close()

	var changes []RecentChange
	err = iter.ForEach(func(c *object.Commit) error {
		files, err := s.commitFiles(c, prefix)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return nil
		}
		changes = append(changes, RecentChange{Commit: toCommitInfo(c), Files: files})
		if len(changes) >= limit {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk log: %w", err)
	}
	return changes, nil
}

// commitFiles lists the book-relative files a commit changed against its
// first parent. Root commits report their whole tree.
func (s *Service) commitFiles(c *object.Commit, prefix string) ([]string, error) {
	tree, err := c.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load commit tree: %w", err)
	}

	var parentTree *object.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("failed to load parent commit: %w", err)
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return nil, fmt.Errorf("failed to load parent tree: %w", err)
		}
	} else {
		parentTree = &object.Tree{}
	}

	diff, err := parentTree.Diff(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to diff commit: %w", err)
	}

	var files []string
	for _, change := range diff {
		name := change.To.Name
		if name == "" {
			name = change.From.Name
		}
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		files = append(files, strings.TrimPrefix(name, prefix))
	}
	return files, nil
}

func (s *Service) treeAt(rev string) (*object.Tree, error) {
	commit, err := s.commitAt(rev)
	if err != nil {
		return nil, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load tree at %s: %w", rev, err)
	}
	return tree, nil
}

func (s *Service) commitAt(rev string) (*object.Commit, error) {
	hash, err := s.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("unknown revision %q: %w", rev, err)
	}
	commit, err := s.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", hash, err)
	}
	return commit, nil
}

func toCommitInfo(c *object.Commit) CommitInfo {
	hash := c.Hash.String()
	short := hash
	if len(short) > 8 {
		short = short[:8]
	}
	return CommitInfo{
		Hash:      hash,
		ShortHash: short,
		Author:    c.Author.Name,
		Email:     c.Author.Email,
		Date:      c.Author.When,
		Message:   c.Message,
	}
}
