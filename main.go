package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"jenv/internal/config"
	"jenv/internal/env"
	"jenv/internal/installer"
	"jenv/internal/jdk"
	"jenv/internal/logging"
	"jenv/internal/resolver"
	"jenv/internal/shim"
	"jenv/internal/theme"
	"jenv/internal/updater"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Version is set during build time via ldflags
var Version = "dev"

var (
	successStyle = theme.SuccessStyle
	errorStyle   = theme.ErrorStyle
	warningStyle = theme.WarningStyle
	infoStyle    = theme.InfoStyle
	titleStyle   = theme.Title
	currentStyle = theme.CurrentStyle
)

var (
	settings config.Settings
	logger   *log.Logger
)

func main() {
	logger = logging.New()
	settings = config.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	// Shim dispatch has to stay fast and quiet, so it bypasses the
	// regular command plumbing entirely.
	if command == "internal" {
		os.Exit(handleInternal(os.Args[2:]))
	}

	switch command {
	case "current", "version":
		handleCurrent()
	case "versions", "list":
		handleVersions()
	case "global":
		handleGlobal()
	case "local":
		handleLocal()
	case "shell":
		handleShell()
	case "which":
		handleWhich()
	case "rehash":
		handleRehash()
	case "scan":
		handleScan()
	case "init":
		handleInit()
	case "add-path":
		handleAddPath()
	case "remove-path":
		handleRemovePath()
	case "list-paths":
		handleListPaths()
	case "install":
		handleInstall()
	case "update":
		handleUpdate()
	case "doctor":
		handleDoctor()
	case "-v", "--version":
		printVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	checkForUpdateBackground()
}

func discover() []jdk.Info {
	return jdk.NewScanner(settings, logger).Discover()
}

func discoverWithSpinner() []jdk.Info {
	var catalog []jdk.Info
	installer.WithSpinner("Scanning for JDK installations...", func() error {
		catalog = discover()
		return nil
	})
	return catalog
}

func activeSelection(catalog []jdk.Info) *resolver.Selection {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	return resolver.New(settings, logger).Active(catalog, cwd)
}

func handleCurrent() {
	catalog := discover()
	sel := activeSelection(catalog)

	if sel == nil {
		fmt.Println(warningStyle.Render("No active JDK"))
		fmt.Println(theme.Faint.Render("Run 'jenv global <version>' to set one, or 'jenv install' to install a JDK"))
		os.Exit(1)
	}

	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Version:"), currentStyle.Render(sel.JDK.Version))
	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Name:   "), theme.ValueStyle.Render(sel.JDK.Name))
	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Path:   "), theme.PathStyle.Render(sel.JDK.Path))
	origin := string(sel.Source)
	if sel.Origin != "" {
		origin += " " + theme.Faint.Render("("+sel.Origin+")")
	}
	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Set by: "), origin)
}

func handleVersions() {
	catalog := discoverWithSpinner()

	if len(catalog) == 0 {
		fmt.Println(warningStyle.Render("No JDK installations found."))
		fmt.Println(infoStyle.Render("Run 'jenv install' to install one, or 'jenv add-path <dir>' to register a search directory."))
		return
	}

	sel := activeSelection(catalog)

	fmt.Println(titleStyle.Render("Installed JDKs"))
	fmt.Println()

	for _, j := range catalog {
		marker := "  "
		nameStr := j.Name
		if sel != nil && sel.JDK.Same(j) {
			marker = "* "
			nameStr = currentStyle.Render(j.Name)
		}

		source := "auto"
		sourceStyle := theme.Faint
		if j.Managed {
			source = "managed"
			sourceStyle = successStyle
		}

		visW := lipgloss.Width(nameStr)
		pad := 0
		if visW < 28 {
			pad = 28 - visW
		}
		fmt.Printf("%s%s%s %s %s\n", marker, nameStr, strings.Repeat(" ", pad), j.Path, sourceStyle.Render("("+source+")"))
	}

	if sel != nil {
		fmt.Println()
		fmt.Printf("%s %s %s\n", theme.Faint.Render("Active set by"), string(sel.Source), theme.Faint.Render(sel.Origin))
	}
}

// resolveWriteToken resolves a user-supplied token for assignment,
// printing candidates and exiting when it is ambiguous or unknown.
func resolveWriteToken(catalog []jdk.Info, token string) jdk.Info {
	target, err := resolver.ResolveForWrite(catalog, token)
	if err == nil {
		return target
	}

	// Errors go to stderr so 'jenv shell' output stays safe to eval.
	var ambiguous *resolver.AmbiguousError
	if errors.As(err, &ambiguous) {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Version %q is ambiguous. Candidates:", token)))
		for _, c := range ambiguous.Candidates {
			fmt.Fprintf(os.Stderr, "  %s %s\n", currentStyle.Render(c.Name), theme.Faint.Render(c.Path))
		}
		fmt.Fprintln(os.Stderr, infoStyle.Render("Use the full name to disambiguate."))
	} else {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("No JDK matches %q.", token)))
		fmt.Fprintln(os.Stderr, infoStyle.Render("Use 'jenv versions' to see what is installed."))
	}
	os.Exit(1)
	return jdk.Info{}
}

func handleGlobal() {
	if len(os.Args) < 3 {
		name, err := resolver.ReadMarker(settings.GlobalVersionFile)
		if err != nil {
			fmt.Println(errorStyle.Render("Error reading global version: " + err.Error()))
			os.Exit(1)
		}
		if name == "" {
			fmt.Println(warningStyle.Render("No global version set"))
			fmt.Println(theme.Faint.Render("Run 'jenv global <version>' to set one"))
			return
		}
		fmt.Println(name)
		return
	}

	token := os.Args[2]

	if token == "--machine" {
		handleGlobalMachine()
		return
	}

	if token == "--unset" {
		if err := resolver.RemoveMarker(settings.GlobalVersionFile); err != nil {
			fmt.Println(errorStyle.Render("Error: " + err.Error()))
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✓ Global version unset."))
		return
	}

	catalog := discoverWithSpinner()
	target := resolveWriteToken(catalog, token)

	if err := resolver.WriteMarker(settings.GlobalVersionFile, target.Name); err != nil {
		fmt.Println(errorStyle.Render("Error writing global version: " + err.Error()))
		os.Exit(1)
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Global version set to %s", target.Name)))
	fmt.Println(theme.Faint.Render("  " + target.Path))

	rehashQuiet(target.Path)
}

// handleGlobalMachine writes JAVA_HOME into the Windows machine
// environment, for tools that ignore shims.
func handleGlobalMachine() {
	if runtime.GOOS != "windows" {
		fmt.Println(errorStyle.Render("The --machine scope is only available on Windows."))
		os.Exit(1)
	}

	if len(os.Args) < 4 {
		fmt.Println(errorStyle.Render("Usage: jenv global --machine <version>"))
		os.Exit(1)
	}

	if !env.IsAdmin() {
		fmt.Println(errorStyle.Render("Setting the machine environment requires administrator privileges."))
		fmt.Println(theme.Faint.Render("Run your terminal as Administrator and try again."))
		os.Exit(1)
	}

	catalog := discoverWithSpinner()
	target := resolveWriteToken(catalog, os.Args[3])

	confirmed, err := confirmAction(
		fmt.Sprintf("Set machine JAVA_HOME to %s?", target.Name),
		fmt.Sprintf("Path: %s\n\nThis rewrites the machine PATH to use %%JAVA_HOME%%\\bin.", target.Path),
	)
	if err != nil || !confirmed {
		fmt.Println(warningStyle.Render("Operation cancelled."))
		return
	}

	if err := env.SetMachineJavaHome(target.Path); err != nil {
		fmt.Println(errorStyle.Render("Error: " + err.Error()))
		os.Exit(1)
	}

	fmt.Println(successStyle.Render("✓ Machine JAVA_HOME updated."))
	fmt.Println()
	fmt.Println(theme.Faint.Render("To apply in the current session, run:"))
	fmt.Println("  " + theme.Code.Render(env.RefreshCommand()))
}

func handleLocal() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(errorStyle.Render("Error: " + err.Error()))
		os.Exit(1)
	}
	markerPath := filepath.Join(cwd, config.LocalVersionFile)

	if len(os.Args) < 3 {
		marker := resolver.FindLocalMarker(cwd, config.LocalVersionFile)
		if marker == "" {
			fmt.Println(warningStyle.Render("No local version set"))
			fmt.Println(theme.Faint.Render("Run 'jenv local <version>' to pin one for this directory"))
			return
		}
		name, err := resolver.ReadMarker(marker)
		if err != nil {
			fmt.Println(errorStyle.Render("Error reading local version: " + err.Error()))
			os.Exit(1)
		}
		fmt.Println(name)
		fmt.Println(theme.Faint.Render("(set by " + marker + ")"))
		return
	}

	token := os.Args[2]

	if token == "--unset" {
		if err := resolver.RemoveMarker(markerPath); err != nil {
			fmt.Println(errorStyle.Render("Error: " + err.Error()))
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✓ Local version unset."))
		return
	}

	catalog := discoverWithSpinner()
	target := resolveWriteToken(catalog, token)

	if err := resolver.WriteMarker(markerPath, target.Name); err != nil {
		fmt.Println(errorStyle.Render("Error writing local version: " + err.Error()))
		os.Exit(1)
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Local version set to %s", target.Name)))
	fmt.Println(theme.Faint.Render("  " + markerPath))

	rehashQuiet(target.Path)
}

// handleShell prints the command that sets or clears JENV_VERSION in the
// calling shell. The process cannot mutate its parent's environment, so
// the user (or a shell function installed by 'jenv init') evals it.
func handleShell() {
	if len(os.Args) < 3 {
		name := os.Getenv(config.VersionEnvVar)
		if name == "" {
			fmt.Println(warningStyle.Render("No shell version set"))
			fmt.Println(theme.Faint.Render("Run 'jenv shell <version>' and eval its output"))
			return
		}
		fmt.Println(name)
		return
	}

	token := os.Args[2]

	if token == "--unset" {
		if runtime.GOOS == "windows" {
			fmt.Printf("Remove-Item Env:%s\n", config.VersionEnvVar)
		} else {
			fmt.Printf("unset %s\n", config.VersionEnvVar)
		}
		return
	}

	catalog := discover()
	target := resolveWriteToken(catalog, token)

	if runtime.GOOS == "windows" {
		fmt.Printf("$env:%s = \"%s\"\n", config.VersionEnvVar, target.Name)
	} else {
		fmt.Printf("export %s=\"%s\"\n", config.VersionEnvVar, target.Name)
	}
}

func handleWhich() {
	if len(os.Args) < 3 {
		fmt.Println(errorStyle.Render("Usage: jenv which <tool>"))
		os.Exit(1)
	}
	tool := os.Args[2]

	catalog := discover()
	sel := activeSelection(catalog)
	if sel == nil {
		fmt.Println(warningStyle.Render("No active JDK"))
		os.Exit(1)
	}

	toolPath := shim.LocateTool(sel.JDK.Path, tool)
	if toolPath == "" {
		fmt.Println(errorStyle.Render(fmt.Sprintf("%s not found in %s", tool, sel.JDK.Name)))
		os.Exit(1)
	}

	fmt.Println(toolPath)
}

// handleInternal dispatches a shim invocation to the active JDK. Exit
// codes mirror shell conventions: 127 when no tool can be found, 126
// when it exists but cannot be launched.
func handleInternal(args []string) int {
	if len(args) < 2 || args[0] != "exec" {
		fmt.Fprintln(os.Stderr, "Usage: jenv internal exec <tool> [args...]")
		return 1
	}
	tool := args[1]
	toolArgs := args[2:]

	home, label := dispatchHome()
	if home == "" {
		fmt.Fprintf(os.Stderr, "jenv: no JDK selected for %s\n", tool)
		fmt.Fprintln(os.Stderr, "jenv: set one with 'jenv global <version>' or a .jenv-version file")
		return shim.ExitNotFound
	}

	toolPath := shim.LocateTool(home, tool)
	if toolPath == "" {
		fmt.Fprintf(os.Stderr, "jenv: %s: not provided by %s\n", tool, label)
		return shim.ExitNotFound
	}

	return shim.Exec(home, toolPath, toolArgs, logger)
}

// dispatchHome resolves the active JDK home for shim dispatch. A marker
// that names a managed installation maps straight onto the versions
// directory; anything else pays for a full scan.
func dispatchHome() (home, label string) {
	if name := firstMarkerName(); name != "" {
		candidate := filepath.Join(settings.VersionsDir, name)
		if fileExists(jdk.JavaExe(candidate)) {
			return candidate, name
		}
	}

	catalog := discover()
	sel := activeSelection(catalog)
	if sel == nil {
		return "", ""
	}
	return sel.JDK.Path, sel.JDK.Name
}

// firstMarkerName returns the raw token of the highest-precedence marker
// without resolving it against the catalog.
func firstMarkerName() string {
	if v := os.Getenv(config.VersionEnvVar); v != "" {
		return v
	}
	if cwd, err := os.Getwd(); err == nil {
		if marker := resolver.FindLocalMarker(cwd, config.LocalVersionFile); marker != "" {
			if name, err := resolver.ReadMarker(marker); err == nil && name != "" {
				return name
			}
		}
	}
	if name, err := resolver.ReadMarker(settings.GlobalVersionFile); err == nil && name != "" {
		return name
	}
	return ""
}

func handleRehash() {
	catalog := discoverWithSpinner()
	sel := activeSelection(catalog)

	activeHome := ""
	if sel != nil {
		activeHome = sel.JDK.Path
	}

	count, err := shim.Rehash(settings, activeHome, logger)
	if err != nil {
		fmt.Println(errorStyle.Render("Error writing shims: " + err.Error()))
		os.Exit(1)
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Wrote %d shims to %s", count, settings.ShimsDir)))
}

func rehashQuiet(activeHome string) {
	if _, err := shim.Rehash(settings, activeHome, logger); err != nil {
		logger.Warn("rehash failed", "err", err)
	}
}

func handleScan() {
	catalog := discoverWithSpinner()

	if len(catalog) == 0 {
		fmt.Println(warningStyle.Render("No JDK installations found."))
		return
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Found %d JDK installation(s):", len(catalog))))
	fmt.Println()
	for _, j := range catalog {
		fmt.Printf("  %s %s %s\n",
			currentStyle.Render(j.Name),
			theme.PathStyle.Render(j.Path),
			theme.Faint.Render("("+j.Vendor+")"))
	}
}

// handleInit prints the shell snippet that puts the shims directory on
// PATH. Meant for eval from a shell profile.
func handleInit() {
	// The snippet puts the shims directory on PATH, so make sure it exists.
	if err := settings.EnsureDirs(); err != nil {
		logger.Warn("cannot create jenv directories", "err", err)
	}

	shell := ""
	if len(os.Args) >= 3 {
		shell = os.Args[2]
	}
	if shell == "" {
		if runtime.GOOS == "windows" {
			shell = "powershell"
		} else {
			shell = filepath.Base(os.Getenv("SHELL"))
		}
	}

	switch shell {
	case "fish":
		fmt.Printf("fish_add_path --path --prepend %q\n", settings.ShimsDir)
		fmt.Printf("function jenv-shell; jenv shell $argv | source; end\n")
	case "powershell", "pwsh":
		fmt.Printf("$env:Path = \"%s;\" + $env:Path\n", settings.ShimsDir)
		fmt.Printf("function jenv-shell { jenv shell @args | Invoke-Expression }\n")
	default:
		fmt.Printf("export PATH=%q:\"$PATH\"\n", settings.ShimsDir)
		fmt.Printf("jenv-shell() { eval \"$(jenv shell \"$@\")\"; }\n")
	}
}

func handleAddPath() {
	if len(os.Args) < 3 {
		fmt.Println(errorStyle.Render("Usage: jenv add-path <directory>"))
		fmt.Println(infoStyle.Render("Adds a directory the scanner will search for JDK installations."))
		os.Exit(1)
	}

	path := os.Args[2]

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		fmt.Printf("Invalid directory path: %s\n", path)
		fmt.Println("Make sure the path exists and is a directory.")
		os.Exit(1)
	}

	if settings.HasCustomPath(path) {
		fmt.Println(warningStyle.Render("This search path is already configured."))
		return
	}

	confirmed, err := confirmAction(
		"Add search path?",
		fmt.Sprintf("Path: %s\n\nThe scanner will look for JDK installations here.", path),
	)
	if err != nil || !confirmed {
		fmt.Println("Operation cancelled.")
		return
	}

	if _, err := settings.AddCustomPath(path); err != nil {
		fmt.Println(errorStyle.Render("Error saving search paths: " + err.Error()))
		os.Exit(1)
	}

	fmt.Println(theme.SuccessMessage("Added search path:"))
	fmt.Println("  " + theme.PathStyle.Render(path))
	fmt.Println(theme.Faint.Render("Run ") + theme.Code.Render("jenv versions") + theme.Faint.Render(" to see detected JDKs"))
}

func handleRemovePath() {
	paths, err := settings.CustomPaths()
	if err != nil {
		fmt.Println(errorStyle.Render("Error loading search paths: " + err.Error()))
		os.Exit(1)
	}

	var pathToRemove string

	if len(os.Args) < 3 {
		if len(paths) == 0 {
			fmt.Println(theme.InfoMessage("No custom search paths to remove"))
			fmt.Println("  " + theme.Faint.Render("Use ") + theme.Code.Render("jenv add-path <directory>") + theme.Faint.Render(" to add one"))
			return
		}

		options := make([]huh.Option[string], len(paths))
		for i, p := range paths {
			status := theme.Faint.Render("Not found")
			if info, err := os.Stat(p); err == nil && info.IsDir() {
				status = theme.SuccessStyle.Render("✓ Exists")
			}
			options[i] = huh.NewOption(fmt.Sprintf("%s  %s", theme.CurrentStyle.Render(p), status), p)
		}

		err := huh.NewSelect[string]().
			Title(theme.Subtitle.Render("Select Search Path to Remove")).
			Description(theme.Faint.Render("Use arrow keys to navigate, Enter to select")).
			Options(options...).
			Value(&pathToRemove).
			Run()

		if err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("Selection cancelled: %v", err)))
			os.Exit(1)
		}
	} else {
		pathToRemove = os.Args[2]
	}

	removed, err := settings.RemoveCustomPath(pathToRemove)
	if err != nil {
		fmt.Println(errorStyle.Render("Error saving search paths: " + err.Error()))
		os.Exit(1)
	}
	if !removed {
		fmt.Println(warningStyle.Render("This path is not in the search paths list."))
		return
	}

	fmt.Println(successStyle.Render("✓ Removed search path."))
}

func handleListPaths() {
	paths, err := settings.CustomPaths()
	if err != nil {
		fmt.Println(errorStyle.Render("Error loading search paths: " + err.Error()))
		os.Exit(1)
	}

	fmt.Println(titleStyle.Render("JDK Search Paths"))
	fmt.Println()

	fmt.Println(theme.LabelStyle.Render("Managed:"))
	fmt.Println("  " + theme.PathStyle.Render(settings.VersionsDir))
	fmt.Println()

	if len(paths) == 0 {
		fmt.Println(infoStyle.Render("No custom search paths configured."))
		fmt.Println(theme.Faint.Render("Use 'jenv add-path <directory>' to add one."))
		return
	}

	fmt.Println(theme.LabelStyle.Render("Custom:"))
	for _, p := range paths {
		status := theme.Faint.Render("(not found)")
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			status = successStyle.Render("(exists)")
		}
		fmt.Printf("  %s %s\n", theme.PathStyle.Render(p), status)
	}
}

func handleInstall() {
	if len(os.Args) >= 3 {
		// Non-interactive: install the named major version directly.
		inst := installer.New(settings, logger)
		home, err := inst.InstallVersion(os.Args[2])
		if err != nil {
			fmt.Println(errorStyle.Render("Error: " + err.Error()))
			os.Exit(1)
		}
		rehashQuiet(home)
		return
	}

	installed, err := installer.New(settings, logger).Run()
	if err != nil {
		fmt.Println(errorStyle.Render("Error: " + err.Error()))
		os.Exit(1)
	}
	if len(installed) > 0 {
		rehashQuiet(installed[len(installed)-1])
	}
}

func handleUpdate() {
	state := updater.LoadState(settings.StateFile)
	if !state.Enabled {
		fmt.Println(warningStyle.Render("Updates are disabled."))
		fmt.Println(theme.Faint.Render("To enable, edit " + settings.StateFile + " and set enabled to true"))
		return
	}

	upd, err := updater.New(settings, logger, Version)
	if err != nil {
		fmt.Println(errorStyle.Render("Error initializing updater: " + err.Error()))
		os.Exit(1)
	}

	updater.ShowCheckingForUpdates()

	ctx, cancel := context.WithTimeout(context.Background(), updater.UpdateTimeout)
	defer cancel()

	release, err := upd.CheckForUpdate(ctx)
	if err != nil {
		fmt.Println(errorStyle.Render("Update check failed: " + err.Error()))
		os.Exit(1)
	}

	if release == nil {
		updater.ShowAlreadyUpToDate(Version)
		return
	}

	action, err := upd.PromptForUpdate(release)
	if err != nil {
		fmt.Println(warningStyle.Render("Update cancelled."))
		return
	}

	if action != "update" {
		if action == "skip" {
			fmt.Println(theme.InfoMessage(fmt.Sprintf("Skipped version %s", release.Version())))
		} else {
			fmt.Println(theme.InfoMessage("Update postponed"))
		}
		return
	}

	updater.ShowDownloadingUpdate(release.Version())

	if err := upd.PerformUpdate(ctx, release); err != nil {
		fmt.Println()
		fmt.Println(errorStyle.Render("Update failed: " + err.Error()))
		fmt.Println()
		fmt.Println(theme.Faint.Render("Please try again or download manually from:"))
		fmt.Println(theme.Faint.Render("https://github.com/" + updater.GitHubRepo + "/releases"))
		os.Exit(1)
	}

	updater.ShowUpdateSuccess(release.Version())
}

func handleDoctor() {
	fmt.Println(titleStyle.Render("jenv - Environment Diagnostics"))
	fmt.Println()

	issues := []string{}
	warnings := []string{}

	// 1. Root layout
	fmt.Println(theme.LabelStyle.Render("Checking jenv directories..."))
	if err := settings.EnsureDirs(); err != nil {
		fmt.Println("  " + theme.ErrorMessage("Cannot create jenv directories: "+err.Error()))
		issues = append(issues, "jenv root is not writable: "+err.Error())
	} else {
		fmt.Println("  " + theme.SuccessMessage("Root: "+settings.Root))
	}
	fmt.Println()

	// 2. Shims on PATH
	fmt.Println(theme.LabelStyle.Render("Checking PATH..."))
	if pathHasDir(os.Getenv("PATH"), settings.ShimsDir) {
		fmt.Println("  " + theme.SuccessMessage("Shims directory is on PATH"))
	} else {
		fmt.Println("  " + theme.ErrorMessage("Shims directory is not on PATH"))
		fmt.Println("  " + theme.Faint.Render("Add it with: eval \"$(jenv init)\""))
		issues = append(issues, "shims directory is not on PATH")
	}
	fmt.Println()

	// 3. Installations
	fmt.Println(theme.LabelStyle.Render("Checking JDK installations..."))
	catalog := discover()
	if len(catalog) == 0 {
		fmt.Println("  " + theme.WarningMessage("No JDK installations found"))
		warnings = append(warnings, "No JDKs detected. Run 'jenv install' or 'jenv add-path <dir>'.")
	} else {
		fmt.Println("  " + theme.SuccessMessage(fmt.Sprintf("Found installations: %d", len(catalog))))
	}
	fmt.Println()

	// 4. Markers
	fmt.Println(theme.LabelStyle.Render("Checking version markers..."))
	checkMarker := func(label, token string) {
		if token == "" {
			fmt.Println("  " + theme.Faint.Render(label+": not set"))
			return
		}
		matches := resolver.Match(catalog, token)
		switch len(matches) {
		case 1:
			fmt.Println("  " + theme.SuccessMessage(fmt.Sprintf("%s: %s → %s", label, token, matches[0].Name)))
		case 0:
			fmt.Println("  " + theme.ErrorMessage(fmt.Sprintf("%s: %s matches no installed JDK", label, token)))
			issues = append(issues, fmt.Sprintf("%s version %q matches nothing", label, token))
		default:
			fmt.Println("  " + theme.WarningMessage(fmt.Sprintf("%s: %s is ambiguous (%d matches)", label, token, len(matches))))
			warnings = append(warnings, fmt.Sprintf("%s version %q is ambiguous", label, token))
		}
	}

	checkMarker("shell", os.Getenv(config.VersionEnvVar))
	if cwd, err := os.Getwd(); err == nil {
		localToken := ""
		if marker := resolver.FindLocalMarker(cwd, config.LocalVersionFile); marker != "" {
			localToken, _ = resolver.ReadMarker(marker)
		}
		checkMarker("local", localToken)
	}
	globalToken, _ := resolver.ReadMarker(settings.GlobalVersionFile)
	checkMarker("global", globalToken)
	fmt.Println()

	// 5. JAVA_HOME
	fmt.Println(theme.LabelStyle.Render("Checking JAVA_HOME..."))
	javaHome := os.Getenv("JAVA_HOME")
	if javaHome == "" {
		fmt.Println("  " + theme.Faint.Render("JAVA_HOME is not set (shims do not need it)"))
	} else if fileExists(jdk.JavaExe(javaHome)) {
		fmt.Println("  " + theme.SuccessMessage("JAVA_HOME is set and valid: "+javaHome))
	} else {
		fmt.Println("  " + theme.ErrorMessage("JAVA_HOME is set but invalid: "+javaHome))
		issues = append(issues, "JAVA_HOME points to an invalid location: "+javaHome)
	}
	fmt.Println()

	// 6. Machine environment (Windows)
	if runtime.GOOS == "windows" {
		fmt.Println(theme.LabelStyle.Render("Checking machine environment..."))
		if machineHome, err := env.MachineJavaHome(); err == nil {
			if fileExists(jdk.JavaExe(machineHome)) {
				fmt.Println("  " + theme.SuccessMessage("Machine JAVA_HOME is valid: "+machineHome))
			} else {
				fmt.Println("  " + theme.WarningMessage("Machine JAVA_HOME is invalid: "+machineHome))
				warnings = append(warnings, "machine JAVA_HOME points to an invalid location")
			}
		} else {
			fmt.Println("  " + theme.Faint.Render("Machine JAVA_HOME is not set"))
		}
		if !env.IsAdmin() {
			fmt.Println("  " + theme.WarningMessage("Not running as administrator ('jenv global --machine' requires it)"))
		}
		fmt.Println()
	}

	// Summary
	fmt.Println(titleStyle.Render("Diagnostics Summary"))
	fmt.Println()

	if len(issues) == 0 && len(warnings) == 0 {
		fmt.Println(theme.SuccessBox.Render(theme.SuccessMessage("All checks passed!") + "\n\nYour JDK environment is properly configured."))
		return
	}

	var summary string
	if len(issues) > 0 {
		summary += errorStyle.Render(fmt.Sprintf("Issues Found: %d", len(issues))) + "\n\n"
		for _, issue := range issues {
			summary += theme.ErrorMessage(issue) + "\n"
		}
	}
	if len(warnings) > 0 {
		if len(issues) > 0 {
			summary += "\n"
		}
		summary += warningStyle.Render(fmt.Sprintf("Warnings: %d", len(warnings))) + "\n\n"
		for _, warning := range warnings {
			summary += theme.WarningMessage(warning) + "\n"
		}
	}

	fmt.Println(theme.Box.Render(summary))

	if len(issues) > 0 {
		os.Exit(1)
	}
}

// pathHasDir reports whether dir appears as an entry of the PATH value.
func pathHasDir(pathEnv, dir string) bool {
	want := strings.TrimRight(filepath.Clean(dir), string(os.PathSeparator))
	for _, entry := range strings.Split(pathEnv, string(os.PathListSeparator)) {
		entry = strings.TrimSpace(strings.Trim(entry, "\""))
		if entry == "" {
			continue
		}
		got := strings.TrimRight(filepath.Clean(entry), string(os.PathSeparator))
		if runtime.GOOS == "windows" {
			if strings.EqualFold(got, want) {
				return true
			}
		} else if got == want {
			return true
		}
	}
	return false
}

func confirmAction(title, description string) (bool, error) {
	var confirmed bool

	err := huh.NewConfirm().
		Title(theme.Subtitle.Render(title)).
		Description(theme.Faint.Render(description)).
		Affirmative(theme.SuccessStyle.Render("Yes")).
		Negative(theme.ErrorStyle.Render("No")).
		Value(&confirmed).
		Run()

	return confirmed, err
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func printVersion() {
	linkStyle := lipgloss.NewStyle().
		Foreground(theme.Info).
		Underline(true)

	fmt.Printf("%s %s %s\n",
		theme.Subtitle.Render("jenv"),
		theme.Faint.Render("version"),
		theme.Code.Render(Version))
	fmt.Println(linkStyle.Render("https://github.com/" + updater.GitHubRepo))
}

func printUsage() {
	banner := `   ██╗███████╗███╗   ██╗██╗   ██╗
   ██║██╔════╝████╗  ██║██║   ██║
   ██║█████╗  ██╔██╗ ██║██║   ██║
██ ██║██╔══╝  ██║╚██╗██║╚██╗ ██╔╝
╚████║███████╗██║ ╚████║ ╚████╔╝
 ╚═══╝╚══════╝╚═╝  ╚═══╝  ╚═══╝  `

	fmt.Println(theme.Bold.Foreground(theme.Primary).Render(banner))
	fmt.Println(theme.Subtitle.Render("JDK Version Manager"))
	fmt.Println(theme.Faint.Render("Per-shell, per-directory, and global JDK selection"))
	fmt.Println()

	fmt.Println(theme.Title.Render("USAGE"))
	fmt.Println(theme.Faint.Render("  jenv <command> [arguments]"))
	fmt.Println()

	categoryStyle := theme.Subtitle
	commandStyle := theme.CommandStyle
	descStyle := theme.Faint

	fmt.Println(categoryStyle.Render("VERSION SELECTION"))
	fmt.Printf("  %s            %s\n", commandStyle.Render("current"), descStyle.Render("Show the active JDK and where it was selected"))
	fmt.Printf("  %s           %s\n", commandStyle.Render("versions"), descStyle.Render("List all detected JDK installations"))
	fmt.Printf("  %s [version]  %s\n", commandStyle.Render("global"), descStyle.Render("Show or set the global version"))
	fmt.Printf("  %s [version]   %s\n", commandStyle.Render("local"), descStyle.Render("Show or set the version for this directory"))
	fmt.Printf("  %s [version]   %s\n", commandStyle.Render("shell"), descStyle.Render("Print the command to set the shell version"))
	fmt.Printf("  %s <tool>      %s\n", commandStyle.Render("which"), descStyle.Render("Show the full path a tool resolves to"))
	fmt.Println()

	fmt.Println(categoryStyle.Render("SHIMS"))
	fmt.Printf("  %s             %s\n", commandStyle.Render("rehash"), descStyle.Render("Rewrite the shim executables"))
	fmt.Printf("  %s [shell]       %s\n", commandStyle.Render("init"), descStyle.Render("Print the shell setup snippet"))
	fmt.Println()

	fmt.Println(categoryStyle.Render("DISCOVERY"))
	fmt.Printf("  %s               %s\n", commandStyle.Render("scan"), descStyle.Render("Scan the system for JDK installations"))
	fmt.Printf("  %s <dir>     %s\n", commandStyle.Render("add-path"), descStyle.Render("Add a directory to scan for JDKs"))
	fmt.Printf("  %s [dir]  %s\n", commandStyle.Render("remove-path"), descStyle.Render("Remove a custom search directory"))
	fmt.Printf("  %s         %s\n", commandStyle.Render("list-paths"), descStyle.Render("Show configured search directories"))
	fmt.Println()

	fmt.Println(categoryStyle.Render("INSTALLATION & MAINTENANCE"))
	fmt.Printf("  %s [version]  %s\n", commandStyle.Render("install"), descStyle.Render("Install a JDK from Eclipse Adoptium"))
	fmt.Printf("  %s             %s\n", commandStyle.Render("doctor"), descStyle.Render("Run diagnostics on your environment"))
	fmt.Printf("  %s             %s\n", commandStyle.Render("update"), descStyle.Render("Check for and install jenv updates"))
	fmt.Println()

	fmt.Println(theme.Title.Render("EXAMPLES"))
	fmt.Println("  " + theme.Code.Render("jenv versions") + "               # List installed JDKs")
	fmt.Println("  " + theme.Code.Render("jenv global 21") + "              # Use Java 21 everywhere")
	fmt.Println("  " + theme.Code.Render("jenv local temurin-17.0.11") + "  # Pin this project to Temurin 17")
	fmt.Println("  " + theme.Code.Render("eval \"$(jenv shell 11)\"") + "     # Use Java 11 in this shell")
	fmt.Println("  " + theme.Code.Render("jenv install 21") + "             # Install Temurin 21")
	fmt.Println("  " + theme.Code.Render("jenv doctor") + "                 # Check environment health")
	fmt.Println()

	fmt.Println(theme.Faint.Italic(true).Render("Add 'eval \"$(jenv init)\"' to your shell profile to enable shims."))
}

func checkForUpdateBackground() {
	defer func() {
		if r := recover(); r != nil {
			// Ignore panics in the opportunistic check.
		}
	}()

	upd, err := updater.New(settings, logger, Version)
	if err != nil {
		return
	}

	if !upd.ShouldCheckForUpdate() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	release, err := upd.CheckForUpdate(ctx)
	if err != nil || release == nil {
		return
	}

	updater.ShowUpdateNotification(Version, release.Version())
}
