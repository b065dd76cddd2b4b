package jdk

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"

	"jenv/internal/config"
)

// ProbeFunc reports the version of a candidate JDK home, or ok=false
// when the candidate is not a JDK. Tests substitute a fake.
type ProbeFunc func(home string) (version string, ok bool)

// Scanner walks candidate roots and produces the deduplicated catalog of
// verified JDK homes. Every invocation rescans from scratch; there is no
// cross-process cache.
type Scanner struct {
	settings config.Settings
	logger   *log.Logger
	probe    ProbeFunc
}

// NewScanner builds a Scanner over the given settings.
func NewScanner(settings config.Settings, logger *log.Logger) *Scanner {
	return &Scanner{settings: settings, logger: logger, probe: Probe}
}

// NewScannerWithProbe builds a Scanner with an injected probe. Used by
// tests to avoid spawning real java binaries.
func NewScannerWithProbe(settings config.Settings, logger *log.Logger, probe ProbeFunc) *Scanner {
	return &Scanner{settings: settings, logger: logger, probe: probe}
}

// Discover scans all candidate roots and returns the sorted catalog.
// Candidates that fail probing are silently excluded; scan errors on one
// root never abort the rest.
func (s *Scanner) Discover() []Info {
	roots := s.searchRoots()
	s.logger.Debug("scanning for JDKs", "roots", len(roots))

	seen := make(map[string]bool)
	var found []Info

	for _, root := range roots {
		fi, err := os.Stat(root)
		if err != nil || !fi.IsDir() {
			continue
		}
		resolved := resolvePath(root)

		// A root that is itself a JDK home is recorded as-is; JDK homes
		// do not nest, so there is no point descending into it.
		if s.record(resolved, seen, &found) {
			continue
		}

		entries, err := os.ReadDir(resolved)
		if err != nil {
			s.logger.Debug("cannot list scan root", "root", resolved, "err", err)
			continue
		}
		for _, entry := range entries {
			child := filepath.Join(resolved, entry.Name())
			cfi, err := os.Stat(child) // follows symlinked children
			if err != nil || !cfi.IsDir() {
				continue
			}
			s.record(resolvePath(child), seen, &found)
		}
	}

	SortCatalog(found)
	return found
}

// record probes one resolved path and appends it to the catalog when it
// is a JDK home that has not been recorded yet. Reports whether the path
// is a JDK home (recorded now or previously).
func (s *Scanner) record(resolved string, seen map[string]bool, found *[]Info) bool {
	if seen[resolved] {
		return true
	}
	exe, err := os.Stat(JavaExe(resolved))
	if err != nil || exe.IsDir() {
		return false
	}
	version, ok := s.probe(resolved)
	if !ok {
		s.logger.Debug("candidate has bin/java but no usable version", "path", resolved)
		return false
	}
	name, vendor := Identify(resolved, version)
	info := Info{
		Version: version,
		Name:    name,
		Path:    resolved,
		Vendor:  vendor,
		Managed: s.isManaged(resolved),
	}
	s.logger.Debug("found JDK", "name", name, "version", version, "path", resolved)
	seen[resolved] = true
	*found = append(*found, info)
	return true
}

func (s *Scanner) isManaged(path string) bool {
	base := filepath.Clean(s.settings.VersionsDir)
	return path == base || strings.HasPrefix(path, base+string(filepath.Separator))
}

// searchRoots assembles the candidate roots: environment variables,
// OS-conventional install locations, the managed versions directory, and
// user-configured custom paths, in that order.
func (s *Scanner) searchRoots() []string {
	var roots []string

	for _, envVar := range []string{"JAVA_HOME", "JDK_HOME"} {
		if v := os.Getenv(envVar); v != "" {
			roots = append(roots, v)
		}
	}

	roots = append(roots, platformRoots()...)
	roots = append(roots, s.settings.VersionsDir)

	custom, err := s.settings.CustomPaths()
	if err != nil {
		s.logger.Error("failed to read custom scan paths", "err", err)
	}
	roots = append(roots, custom...)

	return roots
}

// platformRoots returns the OS-conventional install locations.
func platformRoots() []string {
	home, _ := os.UserHomeDir()

	switch runtime.GOOS {
	case "windows":
		programFiles := envOr("ProgramFiles", `C:\Program Files`)
		programFilesX86 := envOr("ProgramFiles(x86)", `C:\Program Files (x86)`)
		roots := []string{
			filepath.Join(programFiles, "Java"),
			filepath.Join(programFilesX86, "Java"),
			filepath.Join(programFiles, "AdoptOpenJDK"),
			filepath.Join(programFiles, "Eclipse Adoptium"),
			filepath.Join(programFiles, "Eclipse Foundation"),
			filepath.Join(programFiles, "Zulu"),
			filepath.Join(programFiles, "Amazon Corretto"),
			filepath.Join(programFiles, "Microsoft", "jdk"),
			filepath.Join(envOr("ChocolateyInstall", `C:\ProgramData\chocolatey`), "lib"),
		}
		return append(roots, scoopRoots(home)...)
	case "darwin":
		return []string{
			"/Library/Java/JavaVirtualMachines",
			filepath.Join(home, ".sdkman", "candidates", "java"),
			"/opt/homebrew/opt",
			"/usr/local/opt",
		}
	default:
		return []string{
			"/usr/lib/jvm",
			"/usr/java",
			filepath.Join(home, ".sdkman", "candidates", "java"),
		}
	}
}

// scoopRoots covers Scoop app directories: the "current" symlink when
// present, otherwise each versioned directory.
func scoopRoots(home string) []string {
	apps := filepath.Join(home, "scoop", "apps")
	entries, err := os.ReadDir(apps)
	if err != nil {
		return nil
	}
	var roots []string
	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		if !strings.Contains(name, "java") && !strings.Contains(name, "jdk") {
			continue
		}
		appDir := filepath.Join(apps, entry.Name())
		current := filepath.Join(appDir, "current")
		if _, err := os.Stat(current); err == nil {
			roots = append(roots, current)
			continue
		}
		versions, err := os.ReadDir(appDir)
		if err != nil {
			continue
		}
		for _, v := range versions {
			if v.IsDir() {
				roots = append(roots, filepath.Join(appDir, v.Name()))
			}
		}
	}
	return roots
}

// resolvePath resolves symlinks, falling back to the cleaned input when
// resolution fails (broken link, permission error, cycle). Discovery
// never aborts on an unresolvable path.
func resolvePath(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return resolved
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
