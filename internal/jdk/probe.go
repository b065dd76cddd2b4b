package jdk

import (
	"context"
	"os"
	"os/exec"
	"regexp"
	"time"
)

// probeTimeout caps how long one candidate may take to report its
// version, so a single hung binary cannot stall discovery of the rest.
const probeTimeout = 5 * time.Second

var (
	runtimeVersionRe = regexp.MustCompile(`java\.runtime\.version = (.*)`)
	shortVersionRe   = regexp.MustCompile(`java\.version = (.*)`)
	leadingRunRe     = regexp.MustCompile(`^[^\-+\s]+`)
)

// Probe runs the candidate's java binary and extracts its version
// string. ok is false when the candidate is not a usable JDK: missing
// binary, spawn failure, timeout, or output without a version property.
// All of those are equivalent to the caller; none is fatal.
func Probe(home string) (version string, ok bool) {
	exe := JavaExe(home)
	fi, err := os.Stat(exe)
	if err != nil || fi.IsDir() {
		return "", false
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	// The property listing goes to stderr, alongside the -version banner.
	cmd := exec.CommandContext(ctx, exe, "-XshowSettings:properties", "-version")
	out, err := cmd.CombinedOutput()
	if err != nil && len(out) == 0 {
		return "", false
	}

	raw := matchVersion(out)
	if raw == "" {
		return "", false
	}
	return CleanVersion(raw), true
}

func matchVersion(out []byte) string {
	if m := runtimeVersionRe.FindSubmatch(out); m != nil {
		return string(m[1])
	}
	if m := shortVersionRe.FindSubmatch(out); m != nil {
		return string(m[1])
	}
	return ""
}

// CleanVersion truncates a raw runtime version at the first build or
// qualifier suffix: "17.0.5+8-LTS" becomes "17.0.5". Already-clean
// strings pass through unchanged.
func CleanVersion(raw string) string {
	return leadingRunRe.FindString(raw)
}
