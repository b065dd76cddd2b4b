package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadMarker returns the trimmed single-line content of a marker file.
// A missing file yields an empty string and no error.
func ReadMarker(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// WriteMarker writes a selection name to a marker file, creating parent
// directories as needed.
func WriteMarker(path, name string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(strings.TrimSpace(name)+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// RemoveMarker deletes a marker file. Removing a file that does not
// exist is not an error.
func RemoveMarker(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// FindLocalMarker walks upward from dir (inclusive, through the
// filesystem root) and returns the nearest marker file path, or "".
func FindLocalMarker(dir, filename string) string {
	dir = filepath.Clean(dir)
	for {
		candidate := filepath.Join(dir, filename)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
