package jdk

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jenv/internal/config"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// fakeJDK lays out a directory that passes the bin/java existence check.
func fakeJDK(t *testing.T, root, leaf string) string {
	t.Helper()
	home := filepath.Join(root, leaf)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "bin"), 0o755))
	require.NoError(t, os.WriteFile(JavaExe(home), []byte("#!/bin/sh\n"), 0o755))
	return home
}

// probeByLeaf reports versions keyed by the home's leaf directory name
// and rejects everything else, so stray system JDKs on the test host
// never leak into the catalog.
func probeByLeaf(versions map[string]string) ProbeFunc {
	return func(home string) (string, bool) {
		v, ok := versions[filepath.Base(home)]
		return v, ok
	}
}

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JAVA_HOME", "")
	t.Setenv("JDK_HOME", "")
	t.Setenv("HOME", t.TempDir())
}

func TestDiscoverFindsChildrenOfCustomRoot(t *testing.T) {
	isolateEnv(t)
	settings := config.At(t.TempDir())

	root := t.TempDir()
	fakeJDK(t, root, "temurin-17")
	fakeJDK(t, root, "zulu-21")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "not-a-jdk"), 0o755))

	_, err := settings.AddCustomPath(root)
	require.NoError(t, err)

	scanner := NewScannerWithProbe(settings, testLogger(), probeByLeaf(map[string]string{
		"temurin-17": "17.0.5",
		"zulu-21":    "21.0.1",
	}))
	catalog := scanner.Discover()

	require.Len(t, catalog, 2)
	assert.Equal(t, "21.0.1", catalog[0].Version)
	assert.Equal(t, "17.0.5", catalog[1].Version)
	for _, j := range catalog {
		assert.False(t, j.Managed)
		assert.NotEmpty(t, j.Name)
	}
}

func TestDiscoverRootThatIsAJDKHome(t *testing.T) {
	isolateEnv(t)
	settings := config.At(t.TempDir())

	parent := t.TempDir()
	home := fakeJDK(t, parent, "jdk-17.0.5")
	// A JDK nested below a JDK home must not be picked up.
	fakeJDK(t, home, "nested-jdk")

	_, err := settings.AddCustomPath(home)
	require.NoError(t, err)

	scanner := NewScannerWithProbe(settings, testLogger(), probeByLeaf(map[string]string{
		"jdk-17.0.5": "17.0.5",
		"nested-jdk": "17.0.5",
	}))
	catalog := scanner.Discover()

	require.Len(t, catalog, 1)
	assert.Equal(t, home, catalog[0].Path)
}

func TestDiscoverDeduplicatesSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs privileges on windows")
	}
	isolateEnv(t)
	settings := config.At(t.TempDir())

	root := t.TempDir()
	home := fakeJDK(t, root, "temurin-17")
	require.NoError(t, os.Symlink(home, filepath.Join(root, "default")))

	_, err := settings.AddCustomPath(root)
	require.NoError(t, err)

	scanner := NewScannerWithProbe(settings, testLogger(), probeByLeaf(map[string]string{
		"temurin-17": "17.0.5",
	}))
	catalog := scanner.Discover()

	require.Len(t, catalog, 1)
}

func TestDiscoverMarksManagedInstalls(t *testing.T) {
	isolateEnv(t)
	settings := config.At(t.TempDir())
	require.NoError(t, settings.EnsureDirs())

	fakeJDK(t, settings.VersionsDir, "temurin-21.0.1")

	scanner := NewScannerWithProbe(settings, testLogger(), probeByLeaf(map[string]string{
		"temurin-21.0.1": "21.0.1",
	}))
	catalog := scanner.Discover()

	require.Len(t, catalog, 1)
	assert.True(t, catalog[0].Managed)
}

func TestDiscoverIgnoresDeeperLevels(t *testing.T) {
	isolateEnv(t)
	settings := config.At(t.TempDir())

	root := t.TempDir()
	// Two levels below the root: not scanned.
	nested := filepath.Join(root, "vendor")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	fakeJDK(t, nested, "temurin-17")

	_, err := settings.AddCustomPath(root)
	require.NoError(t, err)

	scanner := NewScannerWithProbe(settings, testLogger(), probeByLeaf(map[string]string{
		"temurin-17": "17.0.5",
	}))
	assert.Empty(t, scanner.Discover())
}

func TestDiscoverIsDeterministic(t *testing.T) {
	isolateEnv(t)
	settings := config.At(t.TempDir())

	root := t.TempDir()
	fakeJDK(t, root, "a-jdk")
	fakeJDK(t, root, "b-jdk")
	fakeJDK(t, root, "c-jdk")

	_, err := settings.AddCustomPath(root)
	require.NoError(t, err)

	versions := map[string]string{"a-jdk": "17.0.5", "b-jdk": "17.0.5", "c-jdk": "11.0.2"}
	scanner := NewScannerWithProbe(settings, testLogger(), probeByLeaf(versions))

	first := scanner.Discover()
	require.Len(t, first, 3)
	// Version descending, then name descending.
	assert.Equal(t, "17.0.5", first[0].Version)
	assert.Equal(t, "17.0.5", first[1].Version)
	assert.Equal(t, "11.0.2", first[2].Version)
	assert.True(t, first[0].Name >= first[1].Name)

	second := scanner.Discover()
	assert.Equal(t, first, second)
}

func TestSortCatalog(t *testing.T) {
	catalog := []Info{
		{Version: "11.0.2", Name: "b"},
		{Version: "17.0.5", Name: "a"},
		{Version: "17.0.5", Name: "z"},
	}
	SortCatalog(catalog)
	assert.Equal(t, "z", catalog[0].Name)
	assert.Equal(t, "a", catalog[1].Name)
	assert.Equal(t, "11.0.2", catalog[2].Version)
}
