// Package logging configures the shared stderr logger.
//
// Verbosity is controlled by the JENV_LOG_LEVEL environment variable
// (debug, info, warn, error). The default is warn so that normal command
// output stays clean; discovery and dispatch internals log at debug.
package logging

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// EnvVar is the environment variable that overrides the log level.
const EnvVar = "JENV_LOG_LEVEL"

// New builds the process logger from the environment.
func New() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "jenv",
		Level:           levelFromEnv(os.Getenv(EnvVar)),
	})
}

func levelFromEnv(raw string) log.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	case "warn", "warning", "":
		return log.WarnLevel
	default:
		return log.WarnLevel
	}
}
