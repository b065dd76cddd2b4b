package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsLayout(t *testing.T) {
	root := t.TempDir()
	s := At(root)

	assert.Equal(t, root, s.Root)
	assert.Equal(t, filepath.Join(root, "versions"), s.VersionsDir)
	assert.Equal(t, filepath.Join(root, "shims"), s.ShimsDir)
	assert.Equal(t, filepath.Join(root, "version"), s.GlobalVersionFile)
	assert.Equal(t, filepath.Join(root, "paths"), s.CustomPathsFile)
	assert.Equal(t, filepath.Join(root, "state.json"), s.StateFile)
}

func TestLoadHonorsDirOverride(t *testing.T) {
	root := t.TempDir()
	t.Setenv(DirEnvVar, root)

	s := Load()
	assert.Equal(t, root, s.Root)
}

func TestEnsureDirs(t *testing.T) {
	s := At(t.TempDir())
	require.NoError(t, s.EnsureDirs())

	for _, dir := range []string{s.Root, s.VersionsDir, s.ShimsDir} {
		fi, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, fi.IsDir())
	}
}

func TestCustomPathsMissingFile(t *testing.T) {
	s := At(t.TempDir())
	paths, err := s.CustomPaths()
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestCustomPathsSkipsCommentsAndBlanks(t *testing.T) {
	s := At(t.TempDir())
	require.NoError(t, os.MkdirAll(s.Root, 0o755))
	content := "# extra scan roots\n\n/opt/jdks\n  \n/usr/local/jdks\n"
	require.NoError(t, os.WriteFile(s.CustomPathsFile, []byte(content), 0o644))

	paths, err := s.CustomPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Clean("/opt/jdks"), filepath.Clean("/usr/local/jdks")}, paths)
}

func TestAddCustomPath(t *testing.T) {
	s := At(t.TempDir())

	changed, err := s.AddCustomPath("/opt/jdks")
	require.NoError(t, err)
	assert.True(t, changed)

	// Same path again is a no-op.
	changed, err = s.AddCustomPath("/opt/jdks")
	require.NoError(t, err)
	assert.False(t, changed)

	// Case differences do not duplicate.
	changed, err = s.AddCustomPath("/OPT/JDKS")
	require.NoError(t, err)
	assert.False(t, changed)

	assert.True(t, s.HasCustomPath("/opt/jdks"))

	paths, err := s.CustomPaths()
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}

func TestRemoveCustomPath(t *testing.T) {
	s := At(t.TempDir())

	_, err := s.AddCustomPath("/opt/jdks")
	require.NoError(t, err)

	changed, err := s.RemoveCustomPath("/opt/jdks")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, s.HasCustomPath("/opt/jdks"))

	changed, err = s.RemoveCustomPath("/opt/jdks")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestAddCustomPathRejectsEmpty(t *testing.T) {
	s := At(t.TempDir())

	changed, err := s.AddCustomPath("   ")
	require.NoError(t, err)
	assert.False(t, changed)
}
