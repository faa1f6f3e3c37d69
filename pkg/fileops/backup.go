package fileops

import (
	"fmt"
	"io"
	"os"
	"time"
)

// BackupFile copies path to a sibling file named after the original plus a
// timestamp, e.g. "03-setup.md" -> "03-setup.md.20240119_153000.bak", and
// returns the backup path. The original file is left untouched; callers
// write the edited content only after the backup succeeds.
func BackupFile(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file for backup: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat file for backup: %w", err)
	}

	backupPath := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102_150405"))

	dst, err := os.OpenFile(backupPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(backupPath)
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	return backupPath, nil
}
