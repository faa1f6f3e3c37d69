package fileops

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create dirs for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", rel, err)
		}
	}
}

func TestIsMarkdownFile(t *testing.T) {
	cases := map[string]bool{
		"chapter.md":  true,
		"notes.MD":    true,
		"a.markdown":  true,
		"b.mdown":     true,
		"c.mkd":       true,
		"readme.txt":  false,
		"image.png":   false,
		"noextension": false,
	}
	for name, want := range cases {
		if got := IsMarkdownFile(name); got != want {
			t.Errorf("IsMarkdownFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestScanMarkdown(t *testing.T) {
	t.Run("finds markdown recursively, sorted", func(t *testing.T) {
		root := t.TempDir()
		writeFiles(t, root, map[string]string{
			"02-b.md":        "b",
			"01-a.md":        "a",
			"sub/03-c.md":    "c",
			"sub/ignore.txt": "x",
		})

		got, err := ScanMarkdown(root, nil)
		if err != nil {
			t.Fatalf("ScanMarkdown failed: %v", err)
		}
		want := []string{"01-a.md", "02-b.md", "sub/03-c.md"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Got %v, want %v", got, want)
		}
	})

	t.Run("skips names, hidden files and build dirs", func(t *testing.T) {
		root := t.TempDir()
		writeFiles(t, root, map[string]string{
			"SUMMARY.md":      "outline",
			"01-a.md":         "a",
			".hidden.md":      "h",
			".git/x.md":       "g",
			"build/out.md":    "o",
			"01-a.md.123.bak": "backup",
		})

		got, err := ScanMarkdown(root, &ScanOptions{SkipNames: []string{"SUMMARY.md"}})
		if err != nil {
			t.Fatalf("ScanMarkdown failed: %v", err)
		}
		if len(got) != 1 || got[0] != "01-a.md" {
			t.Errorf("Got %v, want only 01-a.md", got)
		}
	})

	t.Run("missing root is an error", func(t *testing.T) {
		if _, err := ScanMarkdown(filepath.Join(t.TempDir(), "nope"), nil); err == nil {
			t.Error("Expected error for missing root")
		}
	})
}

func TestBackupFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "chapter.md")
	if err := os.WriteFile(path, []byte("original content\n"), 0o644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}

	backupPath, err := BackupFile(path)
	if err != nil {
		t.Fatalf("BackupFile failed: %v", err)
	}

	if !strings.HasPrefix(backupPath, path+".") || !strings.HasSuffix(backupPath, ".bak") {
		t.Errorf("Unexpected backup name: %s", backupPath)
	}

	content, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("Backup unreadable: %v", err)
	}
	if string(content) != "original content\n" {
		t.Errorf("Backup content mismatch: %q", content)
	}

	original, _ := os.ReadFile(path)
	if string(original) != "original content\n" {
		t.Error("Original file was modified")
	}

	t.Run("missing source", func(t *testing.T) {
		if _, err := BackupFile(filepath.Join(root, "absent.md")); err == nil {
			t.Error("Expected error for missing source")
		}
	})
}
