package shim

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"

	"jenv/internal/jdk"
)

// LocateTool finds the named executable under a JDK home's bin
// directory, trying the platform extension first. Returns "" when the
// tool is absent.
func LocateTool(home, tool string) string {
	candidate := jdk.ToolExe(home, tool)
	if isExecutable(candidate) {
		return candidate
	}
	// Windows callers may pass a name that already carries an extension,
	// or the tool may ship without one.
	if runtime.GOOS == "windows" {
		bare := filepath.Join(home, "bin", tool)
		if isExecutable(bare) {
			return bare
		}
	}
	return ""
}

func isExecutable(path string) bool {
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return fi.Mode()&0o111 != 0
}

// Exec transfers control to the tool at toolPath with the forwarded
// argument vector, JAVA_HOME pointed at the active home, and the home's
// bin directory prepended to PATH. On platforms with execve the current
// process is replaced and Exec does not return on success; elsewhere the
// child is spawned, waited on, and its exit code returned. Either way
// the returned int is the process exit code to use.
func Exec(home, toolPath string, args []string, logger *log.Logger) int {
	argv := append([]string{toolPath}, args...)
	env := BuildEnv(os.Environ(), home)
	logger.Debug("dispatching", "tool", toolPath, "args", len(args), "JAVA_HOME", home)
	return execProcess(toolPath, argv, env, logger)
}

// BuildEnv returns a copy of environ with JAVA_HOME replaced by home and
// home's bin directory prepended to the path variable. All other entries
// pass through untouched.
func BuildEnv(environ []string, home string) []string {
	binDir := filepath.Join(home, "bin")
	out := make([]string, 0, len(environ)+2)
	pathSet := false
	for _, kv := range environ {
		key, val, found := strings.Cut(kv, "=")
		if !found {
			out = append(out, kv)
			continue
		}
		switch {
		case envKeyEqual(key, "JAVA_HOME"):
			continue
		case envKeyEqual(key, "PATH"):
			out = append(out, key+"="+binDir+string(os.PathListSeparator)+val)
			pathSet = true
		default:
			out = append(out, kv)
		}
	}
	out = append(out, "JAVA_HOME="+home)
	if !pathSet {
		out = append(out, "PATH="+binDir)
	}
	return out
}

// envKeyEqual compares environment variable names, case-insensitively on
// Windows where the environment block is case-preserving but
// case-insensitive.
func envKeyEqual(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}
