package history

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"
)

// testRepo builds a repository with three commits:
//  1. add chapters/01-intro.md ("v1")
//  2. extend chapters/01-intro.md ("v1" + "v2")
//  3. add chapters/02-other.md
func testRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	repo, err := git.PlainInit(root, false)
	if err != nil {
		t.Fatalf("PlainInit failed: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree failed: %v", err)
	}

	commit := func(msg string, files map[string]string) {
		t.Helper()
		for rel, content := range files {
			path := filepath.Join(root, filepath.FromSlash(rel))
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				t.Fatalf("Failed to create dirs: %v", err)
			}
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("Failed to write %s: %v", rel, err)
			}
			if _, err := wt.Add(rel); err != nil {
				t.Fatalf("Add %s failed: %v", rel, err)
			}
		}
		if _, err := wt.Commit(msg, &git.CommitOptions{
			Author: &object.Signature{
				Name:  "Test Author",
				Email: "test@example.com",
				When:  time.Now(),
			},
		}); err != nil {
			t.Fatalf("Commit %q failed: %v", msg, err)
		}
	}

	commit("add intro", map[string]string{"chapters/01-intro.md": "v1\n"})
	commit("extend intro", map[string]string{"chapters/01-intro.md": "v1\nv2\n"})
	commit("add other chapter", map[string]string{"chapters/02-other.md": "other\n"})

	return root
}

func TestOpen(t *testing.T) {
	t.Run("plain directory is not a repository", func(t *testing.T) {
		if _, err := Open(t.TempDir(), nil); !errors.Is(err, ErrNotRepository) {
			t.Errorf("Expected ErrNotRepository, got %v", err)
		}
	})

	t.Run("book nested under repository root", func(t *testing.T) {
		root := testRepo(t)
		svc, err := Open(filepath.Join(root, "chapters"), nil)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}

		commits, err := svc.FileHistory("01-intro.md", 0)
		if err != nil {
			t.Fatalf("FileHistory failed: %v", err)
		}
		if len(commits) != 2 {
			t.Errorf("Expected 2 commits, got %d", len(commits))
		}
	})
}

func TestFileHistory(t *testing.T) {
	svc, err := Open(testRepo(t), nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	t.Run("newest first", func(t *testing.T) {
		commits, err := svc.FileHistory("chapters/01-intro.md", 0)
		if err != nil {
			t.Fatalf("FileHistory failed: %v", err)
		}
		if len(commits) != 2 {
			t.Fatalf("Expected 2 commits, got %d", len(commits))
		}
		if commits[0].Summary() != "extend intro" || commits[1].Summary() != "add intro" {
			t.Errorf("Wrong order: %q, %q", commits[0].Summary(), commits[1].Summary())
		}
		if commits[0].Author != "Test Author" {
			t.Errorf("Author lost: %q", commits[0].Author)
		}
		if len(commits[0].ShortHash) != 8 {
			t.Errorf("Short hash should be 8 chars: %q", commits[0].ShortHash)
		}
	})

	t.Run("limit bounds the walk", func(t *testing.T) {
		commits, err := svc.FileHistory("chapters/01-intro.md", 1)
		if err != nil {
			t.Fatalf("FileHistory failed: %v", err)
		}
		if len(commits) != 1 {
			t.Errorf("Expected 1 commit, got %d", len(commits))
		}
	})

	t.Run("untracked file has no history", func(t *testing.T) {
		if _, err := svc.FileHistory("chapters/99-missing.md", 0); !errors.Is(err, ErrNoHistory) {
			t.Errorf("Expected ErrNoHistory, got %v", err)
		}
	})
}

func TestFileDiff(t *testing.T) {
	svc, err := Open(testRepo(t), nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	t.Run("between revisions", func(t *testing.T) {
		diff, err := svc.FileDiff("chapters/01-intro.md", "HEAD~2", "HEAD~1")
		if err != nil {
			t.Fatalf("FileDiff failed: %v", err)
		}
		if diff.Additions != 1 || diff.Deletions != 0 {
			t.Errorf("Expected +1 -0, got +%d -%d", diff.Additions, diff.Deletions)
		}
		if !strings.Contains(diff.Patch, "+v2") {
			t.Errorf("Patch missing added line:\n%s", diff.Patch)
		}
	})

	t.Run("empty to defaults to HEAD", func(t *testing.T) {
		diff, err := svc.FileDiff("chapters/01-intro.md", "HEAD~1", "")
		if err != nil {
			t.Fatalf("FileDiff failed: %v", err)
		}
		// Last commit does not touch the intro file.
		if diff.Patch != "" {
			t.Errorf("Expected empty diff, got:\n%s", diff.Patch)
		}
	})

	t.Run("unknown revision", func(t *testing.T) {
		if _, err := svc.FileDiff("chapters/01-intro.md", "nonsense", "HEAD"); err == nil {
			t.Error("Expected error for unknown revision")
		}
	})
}

func TestFileAtCommit(t *testing.T) {
	svc, err := Open(testRepo(t), nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	content, err := svc.FileAtCommit("chapters/01-intro.md", "HEAD~2")
	if err != nil {
		t.Fatalf("FileAtCommit failed: %v", err)
	}
	if content != "v1\n" {
		t.Errorf("Expected first version, got %q", content)
	}

	if _, err := svc.FileAtCommit("chapters/02-other.md", "HEAD~2"); err == nil {
		t.Error("Expected error for file absent at revision")
	}
}

func TestRecentChanges(t *testing.T) {
	svc, err := Open(testRepo(t), nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	changes, err := svc.RecentChanges(10)
	if err != nil {
		t.Fatalf("RecentChanges failed: %v", err)
	}
	if len(changes) != 3 {
		t.Fatalf("Expected 3 commits, got %d", len(changes))
	}
	if changes[0].Commit.Summary() != "add other chapter" {
		t.Errorf("Wrong order: %q", changes[0].Commit.Summary())
	}
	if len(changes[0].Files) != 1 || changes[0].Files[0] != "chapters/02-other.md" {
		t.Errorf("Wrong files for newest commit: %v", changes[0].Files)
	}

	t.Run("limit", func(t *testing.T) {
		changes, err := svc.RecentChanges(1)
		if err != nil {
			t.Fatalf("RecentChanges failed: %v", err)
		}
		if len(changes) != 1 {
			t.Errorf("Expected 1 change, got %d", len(changes))
		}
	})
}
