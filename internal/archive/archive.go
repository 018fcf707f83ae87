package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ArchiveProgress copies the progress file into an "archive" directory next
// to it, named <name>-YYYYMMDD-HHMMSS<ext>. The original is left in place.
// It returns the path of the copy.
func ArchiveProgress(progressFile string) (string, error) {
	// Check if progress file exists
	info, err := os.Stat(progressFile)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("progress file does not exist: %s", progressFile)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat progress file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("progress file is a directory: %s", progressFile)
	}

	// Get parent directory and create archive path
	parentDir := filepath.Dir(progressFile)
	archiveDir := filepath.Join(parentDir, "archive")

	// Create archive directory if it doesn't exist
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	base := filepath.Base(progressFile)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	// Generate timestamp
	timestamp := time.Now().Format("20060102-150405")
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", name, timestamp, ext))

	// Check if archive already exists (two archives within one second)
	if _, err := os.Stat(archivePath); err == nil {
		// Add microseconds to make it unique
		timestamp = time.Now().Format("20060102-150405.000000")
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", name, timestamp, ext))
	}

	if err := copyFile(progressFile, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive progress file: %w", err)
	}

	return archivePath, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
