//go:build !windows

package shim

import (
	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"
)

// execProcess replaces the current process via execve. Standard streams,
// working directory, and exit status all belong to the target from here
// on; a return value only happens when the exec itself fails.
func execProcess(path string, argv, env []string, logger *log.Logger) int {
	err := unix.Exec(path, argv, env)
	// Only reached on failure.
	logger.Error("exec failed", "tool", path, "err", err)
	return ExitCannotLaunch
}
