//go:build windows

package shim

import (
	"errors"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
)

// execProcess spawns the target and waits, reproducing the externally
// observable behavior of process replacement: same stdio, same working
// directory, exact exit code propagated.
func execProcess(path string, argv, env []string, logger *log.Logger) int {
	cmd := exec.Command(path)
	cmd.Args = argv
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		logger.Error("exec failed", "tool", path, "err", err)
		return ExitCannotLaunch
	}
	return ExitOK
}
