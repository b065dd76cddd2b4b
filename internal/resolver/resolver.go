// Package resolver picks the single active JDK for an invocation by
// applying the four-source precedence chain: shell environment variable,
// nearest local marker file, global marker file, then JAVA_HOME.
package resolver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"jenv/internal/config"
	"jenv/internal/jdk"
)

// Source identifies which precedence level produced a selection.
type Source string

const (
	SourceShell    Source = "shell"
	SourceLocal    Source = "local"
	SourceGlobal   Source = "global"
	SourceJavaHome Source = "JAVA_HOME"
)

// Selection is the resolved active JDK together with where it came from.
// Origin carries the marker file location for file-backed sources.
type Selection struct {
	JDK    jdk.Info
	Source Source
	Origin string
}

// ErrNotFound reports a selection token that matched no catalog entry.
var ErrNotFound = errors.New("no matching JDK")

// AmbiguousError reports a token that matched more than one catalog
// entry during assignment. The write is aborted and candidates listed.
type AmbiguousError struct {
	Token      string
	Candidates []jdk.Info
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous version %q: %d JDKs match", e.Token, len(e.Candidates))
}

// Match returns every catalog entry the token selects. Exact canonical
// name and exact resolved path each select a single entry; otherwise the
// token matches as a substring of version or name, and every hit is
// returned. Any match count above one is ambiguity regardless of which
// field matched.
func Match(catalog []jdk.Info, token string) []jdk.Info {
	for _, j := range catalog {
		if j.Name == token {
			return []jdk.Info{j}
		}
	}

	if asPath := resolveToken(token); asPath != "" {
		for _, j := range catalog {
			if j.Path == asPath {
				return []jdk.Info{j}
			}
		}
	}

	var hits []jdk.Info
	for _, j := range catalog {
		if strings.Contains(j.Version, token) || strings.Contains(j.Name, token) {
			hits = append(hits, j)
		}
	}
	return hits
}

// ResolveForWrite matches a token for an assignment operation. Ambiguity
// is an error here so the marker file is never written from a guess.
func ResolveForWrite(catalog []jdk.Info, token string) (jdk.Info, error) {
	hits := Match(catalog, token)
	switch len(hits) {
	case 0:
		return jdk.Info{}, fmt.Errorf("%w for %q", ErrNotFound, token)
	case 1:
		return hits[0], nil
	default:
		return jdk.Info{}, &AmbiguousError{Token: token, Candidates: hits}
	}
}

// resolveForRead matches a token during resolution. Zero or multiple
// matches both mean "unresolved": the precedence chain falls through to
// the next source instead of erroring.
func resolveForRead(catalog []jdk.Info, token string) (jdk.Info, bool) {
	hits := Match(catalog, token)
	if len(hits) == 1 {
		return hits[0], true
	}
	return jdk.Info{}, false
}

// resolveToken interprets a token as a filesystem path when it names an
// existing location, returning the symlink-resolved form.
func resolveToken(token string) string {
	if _, err := os.Stat(token); err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(token); err == nil {
		return resolved
	}
	return filepath.Clean(token)
}

// Resolver applies the precedence chain against a catalog.
type Resolver struct {
	settings config.Settings
	logger   *log.Logger
	probe    jdk.ProbeFunc
}

// New builds a Resolver over the given settings.
func New(settings config.Settings, logger *log.Logger) *Resolver {
	return &Resolver{settings: settings, logger: logger, probe: jdk.Probe}
}

// NewWithProbe builds a Resolver with an injected probe, for tests.
func NewWithProbe(settings config.Settings, logger *log.Logger, probe jdk.ProbeFunc) *Resolver {
	return &Resolver{settings: settings, logger: logger, probe: probe}
}

// Active returns the active JDK for the current environment and working
// directory, or nil when no source applies. Callers must surface the nil
// case explicitly; there is no silent default.
func (r *Resolver) Active(catalog []jdk.Info, cwd string) *Selection {
	if sel := r.fromShell(catalog); sel != nil {
		return sel
	}
	if sel := r.fromLocal(catalog, cwd); sel != nil {
		return sel
	}
	if sel := r.fromGlobal(catalog); sel != nil {
		return sel
	}
	if sel := r.fromJavaHome(catalog); sel != nil {
		return sel
	}
	r.logger.Debug("no active JDK: all sources exhausted")
	return nil
}

// fromShell handles the JENV_VERSION environment variable. The token
// resolves against the catalog like any marker content; a token that
// matches nothing may still be honored when JAVA_HOME names a probe-valid
// home whose path or derived name equals it.
func (r *Resolver) fromShell(catalog []jdk.Info) *Selection {
	token := os.Getenv(config.VersionEnvVar)
	if token == "" {
		return nil
	}
	if j, ok := resolveForRead(catalog, token); ok {
		return &Selection{JDK: j, Source: SourceShell}
	}

	home := r.validJavaHome()
	if home == "" {
		r.logger.Debug("shell-scope token unresolved", "token", token)
		return nil
	}
	version, ok := r.probe(home)
	if !ok {
		return nil
	}
	name, vendor := jdk.Identify(home, version)
	if home != token && name != token {
		r.logger.Debug("shell-scope token does not corroborate JAVA_HOME", "token", token)
		return nil
	}
	return &Selection{
		JDK:    jdk.Info{Version: version, Name: name, Path: home, Vendor: vendor},
		Source: SourceShell,
	}
}

func (r *Resolver) fromLocal(catalog []jdk.Info, cwd string) *Selection {
	marker := FindLocalMarker(cwd, config.LocalVersionFile)
	if marker == "" {
		return nil
	}
	token, err := ReadMarker(marker)
	if err != nil {
		r.logger.Error("failed to read local marker", "path", marker, "err", err)
		return nil
	}
	if token == "" {
		return nil
	}
	if j, ok := resolveForRead(catalog, token); ok {
		return &Selection{JDK: j, Source: SourceLocal, Origin: marker}
	}
	r.logger.Debug("local marker unresolved", "path", marker, "token", token)
	return nil
}

func (r *Resolver) fromGlobal(catalog []jdk.Info) *Selection {
	token, err := ReadMarker(r.settings.GlobalVersionFile)
	if err != nil {
		r.logger.Error("failed to read global marker", "err", err)
		return nil
	}
	if token == "" {
		return nil
	}
	if j, ok := resolveForRead(catalog, token); ok {
		return &Selection{JDK: j, Source: SourceGlobal, Origin: r.settings.GlobalVersionFile}
	}
	r.logger.Debug("global marker unresolved", "token", token)
	return nil
}

// fromJavaHome is the last resort: an otherwise-unmanaged JAVA_HOME that
// probes as a valid JDK. The catalog entry at that exact path is
// preferred for its derived identity.
func (r *Resolver) fromJavaHome(catalog []jdk.Info) *Selection {
	home := r.validJavaHome()
	if home == "" {
		return nil
	}
	for _, j := range catalog {
		if j.Path == home {
			return &Selection{JDK: j, Source: SourceJavaHome}
		}
	}
	version, ok := r.probe(home)
	if !ok {
		return nil
	}
	name, vendor := jdk.Identify(home, version)
	return &Selection{
		JDK:    jdk.Info{Version: version, Name: name, Path: home, Vendor: vendor},
		Source: SourceJavaHome,
	}
}

// validJavaHome returns the symlink-resolved JAVA_HOME when it points at
// a directory containing a java binary, else "".
func (r *Resolver) validJavaHome() string {
	home := os.Getenv("JAVA_HOME")
	if home == "" {
		return ""
	}
	if fi, err := os.Stat(jdk.JavaExe(home)); err != nil || fi.IsDir() {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(home); err == nil {
		return resolved
	}
	return filepath.Clean(home)
}
