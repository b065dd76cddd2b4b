// Package jdk discovers JDK installations and derives their identity.
package jdk

import (
	"path/filepath"
	"runtime"
	"sort"
)

// Info describes one discovered JDK home. Identity is the path alone:
// two values sharing a path are the same JDK even when name or vendor
// differ, which is why catalogs deduplicate by path before anything else.
type Info struct {
	Version string // cleaned dotted version, e.g. "17.0.5"
	Name    string // canonical label, e.g. "temurin-17.0.5"
	Path    string // absolute JDK home directory
	Vendor  string // best-guess vendor, empty when unknown
	Managed bool   // installed under jenv's own versions directory
}

// Same reports path identity, the only equality the catalog recognizes.
func (i Info) Same(other Info) bool {
	return i.Path == other.Path
}

// JavaExe returns the path of the java binary under a JDK home,
// with the platform-appropriate extension.
func JavaExe(home string) string {
	name := "java"
	if runtime.GOOS == "windows" {
		name = "java.exe"
	}
	return filepath.Join(home, "bin", name)
}

// ToolExe returns the path of an arbitrary tool under a JDK home's bin
// directory, adding ".exe" on Windows when missing.
func ToolExe(home, tool string) string {
	if runtime.GOOS == "windows" && filepath.Ext(tool) == "" {
		tool += ".exe"
	}
	return filepath.Join(home, "bin", tool)
}

// SortCatalog orders a catalog by version descending, then name
// descending, so repeated scans of an unchanged tree print identically.
func SortCatalog(jdks []Info) {
	sort.Slice(jdks, func(a, b int) bool {
		if jdks[a].Version != jdks[b].Version {
			return jdks[a].Version > jdks[b].Version
		}
		return jdks[a].Name > jdks[b].Name
	})
}
