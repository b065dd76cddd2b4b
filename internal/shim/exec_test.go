package shim

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The hand-off tests re-invoke the test binary so Exec can replace the
// child process without taking the test runner with it. The child runs
// the same test function, detects the env marker, and jumps straight
// into Exec.

func TestExecForwardsArgsEnvAndExitCode(t *testing.T) {
	if home := os.Getenv("SHIM_TEST_EXEC_HOME"); home != "" {
		code := Exec(home, LocateTool(home, "java"), []string{"--version", "two words"}, testLogger())
		os.Exit(code)
	}

	if runtime.GOOS == "windows" {
		t.Skip("tool stub is a shell script")
	}

	home := filepath.Join(t.TempDir(), "jdk")
	require.NoError(t, os.MkdirAll(filepath.Join(home, "bin"), 0o755))
	record := filepath.Join(t.TempDir(), "record.txt")
	script := "#!/bin/sh\n" +
		"printf '%s\\n' \"$@\" > \"$SHIM_TEST_RECORD\"\n" +
		"printf '%s\\n' \"$JAVA_HOME\" >> \"$SHIM_TEST_RECORD\"\n" +
		"exit 42\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "bin", "java"), []byte(script), 0o755))

	cmd := exec.Command(os.Args[0], "-test.run", "^TestExecForwardsArgsEnvAndExitCode$")
	cmd.Env = append(os.Environ(),
		"SHIM_TEST_EXEC_HOME="+home,
		"SHIM_TEST_RECORD="+record,
	)
	err := cmd.Run()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 42, exitErr.ExitCode())

	data, err := os.ReadFile(record)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "--version", lines[0])
	assert.Equal(t, "two words", lines[1])
	assert.Equal(t, home, lines[2])
}

func TestExecCannotLaunchExitCode(t *testing.T) {
	if home := os.Getenv("SHIM_TEST_BROKEN_HOME"); home != "" {
		code := Exec(home, filepath.Join(home, "bin", "java"), nil, testLogger())
		os.Exit(code)
	}

	if runtime.GOOS == "windows" {
		t.Skip("relies on execve rejecting the format")
	}

	home := filepath.Join(t.TempDir(), "jdk")
	require.NoError(t, os.MkdirAll(filepath.Join(home, "bin"), 0o755))
	// Executable bit set, but neither a shebang nor a binary the kernel
	// recognizes, so execve fails with ENOEXEC.
	require.NoError(t, os.WriteFile(filepath.Join(home, "bin", "java"), []byte("\x00not a program"), 0o755))

	cmd := exec.Command(os.Args[0], "-test.run", "^TestExecCannotLaunchExitCode$")
	cmd.Env = append(os.Environ(), "SHIM_TEST_BROKEN_HOME="+home)
	err := cmd.Run()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitCannotLaunch, exitErr.ExitCode())
}
