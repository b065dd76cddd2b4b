package shim

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jenv/internal/config"
	"jenv/internal/jdk"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func fakeJDKHome(t *testing.T, root string, tools ...string) string {
	t.Helper()
	home := filepath.Join(root, "jdk")
	binDir := filepath.Join(home, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	for _, tool := range tools {
		require.NoError(t, os.WriteFile(jdk.ToolExe(home, tool), []byte("#!/bin/sh\n"), 0o755))
	}
	return home
}

func TestRehashWritesWellKnownTools(t *testing.T) {
	settings := config.At(t.TempDir())

	count, err := Rehash(settings, "", testLogger())
	require.NoError(t, err)
	assert.Equal(t, len(wellKnownTools), count)

	for _, tool := range wellKnownTools {
		name := tool
		if runtime.GOOS == "windows" {
			name += ".bat"
		}
		stub := filepath.Join(settings.ShimsDir, name)
		fi, err := os.Stat(stub)
		require.NoError(t, err, "missing stub for %s", tool)
		if runtime.GOOS != "windows" {
			assert.NotZero(t, fi.Mode()&0o111, "stub for %s not executable", tool)
		}
	}
}

func TestRehashIncludesActiveHomeTools(t *testing.T) {
	settings := config.At(t.TempDir())
	home := fakeJDKHome(t, t.TempDir(), "java", "native-image")

	count, err := Rehash(settings, home, testLogger())
	require.NoError(t, err)
	// Union: java overlaps the well-known set, native-image is extra.
	assert.Equal(t, len(wellKnownTools)+1, count)

	name := "native-image"
	if runtime.GOOS == "windows" {
		name += ".bat"
	}
	_, err = os.Stat(filepath.Join(settings.ShimsDir, name))
	assert.NoError(t, err)
}

func TestStubForwardsToolNameAndArgs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix stub content")
	}
	settings := config.At(t.TempDir())

	_, err := Rehash(settings, "", testLogger())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(settings.ShimsDir, "javac"))
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "#!"))
	assert.Contains(t, content, `exec jenv internal exec "javac" "$@"`)
}

func TestRehashIsIdempotent(t *testing.T) {
	settings := config.At(t.TempDir())

	first, err := Rehash(settings, "", testLogger())
	require.NoError(t, err)
	second, err := Rehash(settings, "", testLogger())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLocateTool(t *testing.T) {
	home := fakeJDKHome(t, t.TempDir(), "java", "jshell")

	assert.NotEmpty(t, LocateTool(home, "java"))
	assert.NotEmpty(t, LocateTool(home, "jshell"))
	// Absent tool yields "" so dispatch can exit 127.
	assert.Equal(t, "", LocateTool(home, "native-image"))
}

func TestLocateToolRejectsNonExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("mode bits are not meaningful on windows")
	}
	home := fakeJDKHome(t, t.TempDir())
	path := filepath.Join(home, "bin", "jar")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	assert.Equal(t, "", LocateTool(home, "jar"))
}

func TestBuildEnv(t *testing.T) {
	home := filepath.Join(string(os.PathSeparator), "opt", "jdks", "temurin-17")
	binDir := filepath.Join(home, "bin")

	environ := []string{
		"JAVA_HOME=/old/jdk",
		"PATH=/usr/bin:/bin",
		"TERM=xterm",
	}
	env := BuildEnv(environ, home)

	assert.Contains(t, env, "JAVA_HOME="+home)
	assert.NotContains(t, env, "JAVA_HOME=/old/jdk")
	assert.Contains(t, env, "TERM=xterm")

	foundPath := false
	for _, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			foundPath = true
			assert.True(t, strings.HasPrefix(kv, "PATH="+binDir+string(os.PathListSeparator)),
				"bin dir not prepended: %s", kv)
		}
	}
	assert.True(t, foundPath)
}

func TestBuildEnvAddsPathWhenMissing(t *testing.T) {
	home := filepath.Join(string(os.PathSeparator), "opt", "jdks", "temurin-17")
	env := BuildEnv([]string{"TERM=xterm"}, home)

	assert.Contains(t, env, "PATH="+filepath.Join(home, "bin"))
	assert.Contains(t, env, "JAVA_HOME="+home)
}

func TestToolSetSkipsLibraries(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extension filtering differs on windows")
	}
	home := fakeJDKHome(t, t.TempDir(), "java")
	require.NoError(t, os.WriteFile(filepath.Join(home, "bin", "libjli.so"), []byte{}, 0o755))

	tools := toolSet(home)
	assert.NotContains(t, tools, "libjli.so")
	assert.Contains(t, tools, "java")
}
