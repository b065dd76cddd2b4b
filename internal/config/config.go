// Package config builds the immutable per-run settings and manages the
// custom scan-path list persisted under the jenv home directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DirEnvVar overrides the jenv home directory (default ~/.jenv).
	DirEnvVar = "JENV_DIR"

	// VersionEnvVar carries the shell-scope selection for the current
	// session. It is set by the user's shell, never by jenv itself.
	VersionEnvVar = "JENV_VERSION"

	// LocalVersionFile is the per-directory marker filename.
	LocalVersionFile = ".jenv-version"
)

// Settings holds every filesystem location jenv reads or writes. It is
// built once at startup and passed explicitly into components so that
// discovery and resolution can be tested against a temp directory.
type Settings struct {
	Root              string // jenv home, e.g. ~/.jenv
	VersionsDir       string // managed JDK installs, one subdir per install
	ShimsDir          string // generated dispatch stubs
	GlobalVersionFile string // single-line global marker
	CustomPathsFile   string // newline-delimited extra scan roots
	StateFile         string // updater state (last check, skipped version)
}

// Load derives Settings from the environment. JENV_DIR wins over the
// default under the user's home directory.
func Load() Settings {
	root := os.Getenv(DirEnvVar)
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		root = filepath.Join(home, ".jenv")
	}
	return settingsAt(root)
}

// At returns Settings rooted at an explicit directory. Used by tests.
func At(root string) Settings {
	return settingsAt(root)
}

func settingsAt(root string) Settings {
	root = filepath.Clean(root)
	return Settings{
		Root:              root,
		VersionsDir:       filepath.Join(root, "versions"),
		ShimsDir:          filepath.Join(root, "shims"),
		GlobalVersionFile: filepath.Join(root, "version"),
		CustomPathsFile:   filepath.Join(root, "paths"),
		StateFile:         filepath.Join(root, "state.json"),
	}
}

// EnsureDirs creates the jenv home and its subdirectories.
func (s Settings) EnsureDirs() error {
	for _, dir := range []string{s.Root, s.VersionsDir, s.ShimsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// CustomPaths reads the extra scan roots from the paths file. Blank lines
// and lines starting with '#' are ignored. A missing file is an empty
// list, not an error.
func (s Settings) CustomPaths() ([]string, error) {
	data, err := os.ReadFile(s.CustomPathsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.CustomPathsFile, err)
	}

	var paths []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p := filepath.Clean(line)
		key := strings.ToLower(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		paths = append(paths, p)
	}
	return paths, nil
}

// SaveCustomPaths rewrites the paths file with one path per line.
func (s Settings) SaveCustomPaths(paths []string) error {
	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.Root, err)
	}
	var b strings.Builder
	for _, p := range paths {
		b.WriteString(p)
		b.WriteString("\n")
	}
	if err := os.WriteFile(s.CustomPathsFile, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.CustomPathsFile, err)
	}
	return nil
}

// AddCustomPath appends a scan root if it is not already present.
// Reports whether the list changed.
func (s Settings) AddCustomPath(path string) (bool, error) {
	path = filepath.Clean(strings.TrimSpace(path))
	if path == "" || path == "." {
		return false, nil
	}
	paths, err := s.CustomPaths()
	if err != nil {
		return false, err
	}
	for _, p := range paths {
		if strings.EqualFold(p, path) {
			return false, nil
		}
	}
	paths = append(paths, path)
	return true, s.SaveCustomPaths(paths)
}

// RemoveCustomPath drops a scan root. Reports whether the list changed.
func (s Settings) RemoveCustomPath(path string) (bool, error) {
	path = filepath.Clean(path)
	paths, err := s.CustomPaths()
	if err != nil {
		return false, err
	}
	for i, p := range paths {
		if strings.EqualFold(p, path) {
			paths = append(paths[:i], paths[i+1:]...)
			return true, s.SaveCustomPaths(paths)
		}
	}
	return false, nil
}

// HasCustomPath checks whether a scan root is configured.
func (s Settings) HasCustomPath(path string) bool {
	path = filepath.Clean(path)
	paths, _ := s.CustomPaths()
	for _, p := range paths {
		if strings.EqualFold(p, path) {
			return true
		}
	}
	return false
}
