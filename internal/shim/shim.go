// Package shim generates the dispatch stubs that sit ahead of real JDK
// bin directories on PATH, and performs the exec hand-off those stubs
// invoke. A stub never parses its arguments; it forwards its own name
// and the full argument vector to `jenv internal exec`.
package shim

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"jenv/internal/config"
)

// Exit codes for the dispatch path. 127 mirrors the shell's "command not
// found"; 126 is "found but cannot be launched".
const (
	ExitOK           = 0
	ExitNotFound     = 127
	ExitCannotLaunch = 126
)

// wellKnownTools are always shimmed even when not present under the
// active JDK, so switching to a JDK that has them needs no rehash.
var wellKnownTools = []string{
	"java", "javac", "jar", "javadoc", "javap",
	"jps", "jstat", "jconsole", "jdb", "jshell",
}

const posixStubTemplate = `#!/usr/bin/env sh
# jenv shim for %[1]s
set -e
exec jenv internal exec "%[1]s" "$@"
`

const batchStubTemplate = "@echo off\r\nREM jenv shim for %~n0\r\njenv internal exec \"%~n0\" %*\r\n"

// Rehash regenerates one stub per tool in the shims directory. The tool
// set is the union of the well-known names and every executable under
// the active JDK's bin directory (when one is active). Returns the
// number of stubs written.
func Rehash(settings config.Settings, activeHome string, logger *log.Logger) (int, error) {
	if err := os.MkdirAll(settings.ShimsDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create shims directory: %w", err)
	}

	tools := toolSet(activeHome)
	written := 0
	for _, tool := range tools {
		if err := writeStub(settings.ShimsDir, tool); err != nil {
			logger.Error("failed to write shim", "tool", tool, "err", err)
			continue
		}
		written++
	}
	logger.Debug("rehashed shims", "count", written, "dir", settings.ShimsDir)
	return written, nil
}

func toolSet(activeHome string) []string {
	set := make(map[string]bool)
	for _, t := range wellKnownTools {
		set[t] = true
	}
	if activeHome != "" {
		binDir := filepath.Join(activeHome, "bin")
		if entries, err := os.ReadDir(binDir); err == nil {
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				name := entry.Name()
				if runtime.GOOS == "windows" {
					if !strings.EqualFold(filepath.Ext(name), ".exe") {
						continue
					}
					name = strings.TrimSuffix(name, filepath.Ext(name))
				} else if strings.Contains(name, ".") {
					// Skip shared libraries and the like.
					continue
				}
				set[name] = true
			}
		}
	}
	tools := make([]string, 0, len(set))
	for t := range set {
		tools = append(tools, t)
	}
	sort.Strings(tools)
	return tools
}

func writeStub(dir, tool string) error {
	if runtime.GOOS == "windows" {
		path := filepath.Join(dir, tool+".bat")
		return os.WriteFile(path, []byte(batchStubTemplate), 0o755)
	}
	path := filepath.Join(dir, tool)
	return os.WriteFile(path, []byte(fmt.Sprintf(posixStubTemplate, tool)), 0o755)
}
