package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"jenv/internal/config"
	"jenv/internal/jdk"
	"jenv/internal/theme"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Installer drives the interactive JDK installation flow.
type Installer struct {
	settings    config.Settings
	logger      *log.Logger
	distributor Distributor
}

func New(settings config.Settings, logger *log.Logger) *Installer {
	return &Installer{
		settings:    settings,
		logger:      logger,
		distributor: NewAdoptiumDistributor(),
	}
}

// Run starts the interactive installation process. It returns the homes of
// the versions that were installed.
func (i *Installer) Run() ([]string, error) {
	title := theme.Title.Padding(0, 2).Render("JDK Installation")
	fmt.Println()
	fmt.Println(theme.Box.Render(title))
	fmt.Println()

	mode, err := i.selectMode()
	if err != nil {
		return nil, err
	}

	var versions []string
	if mode == "multi" {
		versions, err = i.selectMultipleVersions()
	} else {
		var v string
		v, err = i.selectVersion()
		versions = []string{v}
	}
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("no versions selected")
	}

	installed := []string{}
	for idx, version := range versions {
		if len(versions) > 1 {
			fmt.Printf("[%d/%d] Installing Java %s...\n", idx+1, len(versions), version)
		}
		home, err := i.InstallVersion(version)
		if err != nil {
			if len(versions) == 1 {
				return installed, err
			}
			fmt.Println(theme.ErrorMessage(fmt.Sprintf("Failed to install Java %s: %v", version, err)))
			continue
		}
		installed = append(installed, home)
	}

	if len(installed) > 0 {
		fmt.Println()
		fmt.Println(theme.SuccessBox.Render(theme.SuccessStyle.Padding(0, 2).Render("✓ Installation Complete")))
		fmt.Println()
		for _, home := range installed {
			fmt.Printf("  %s\n", theme.PathStyle.Render(home))
		}
		fmt.Println()
		fmt.Println(theme.Subtitle.Render("Next steps:"))
		fmt.Printf("  %s\n", theme.Code.Render("jenv versions"))
		fmt.Printf("  %s\n", theme.Code.Render("jenv global <name>"))
		fmt.Println()
	}

	return installed, nil
}

func (i *Installer) selectMode() (string, error) {
	var mode string

	err := huh.NewSelect[string]().
		Title(theme.Subtitle.Render("Installation Mode")).
		Options(
			huh.NewOption(theme.CurrentStyle.Render("Install")+" single version", "single"),
			huh.NewOption(theme.CurrentStyle.Render("Install")+" multiple versions (batch)", "multi"),
		).
		Value(&mode).
		Run()

	if err != nil {
		return "", err
	}

	return mode, nil
}

func (i *Installer) fetchReleases() ([]JavaRelease, error) {
	var releases []JavaRelease

	err := WithSpinner(
		fmt.Sprintf("Fetching available versions from %s...", i.distributor.Name()),
		func() error {
			var err error
			releases, err = i.distributor.AvailableVersions()
			return err
		},
	)
	if err != nil {
		// AvailableVersions degrades to a builtin list on API failure.
		i.logger.Warn("release list fetch degraded", "err", err)
	}

	return releases, nil
}

// installedMajors maps major versions already present in the managed
// versions directory, for tagging the menu.
func (i *Installer) installedMajors() map[string]bool {
	majors := make(map[string]bool)
	entries, err := os.ReadDir(i.settings.VersionsDir)
	if err != nil {
		return majors
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		home := filepath.Join(i.settings.VersionsDir, entry.Name())
		if _, err := os.Stat(jdk.JavaExe(home)); err != nil {
			continue
		}
		// Installation names end in <version>; take the major component.
		name := entry.Name()
		if idx := strings.LastIndex(name, "-"); idx >= 0 {
			name = name[idx+1:]
		}
		if major, _, found := strings.Cut(name, "."); found || major != "" {
			majors[major] = true
		}
	}
	return majors
}

// releaseOptions renders aligned menu labels with LTS and Installed tags.
func (i *Installer) releaseOptions(releases []JavaRelease) []huh.Option[string] {
	installed := i.installedMajors()

	maxW := 0
	for _, r := range releases {
		if w := lipgloss.Width("Java " + r.Version); w > maxW {
			maxW = w
		}
	}

	var ltsOptions, featureOptions []huh.Option[string]
	for _, release := range releases {
		vis := lipgloss.Width("Java " + release.Version)
		pad := ""
		if vis < maxW {
			pad = strings.Repeat(" ", maxW-vis)
		}

		ltsCol := strings.Repeat(" ", len("[LTS]"))
		if release.IsLTS {
			ltsCol = theme.SuccessStyle.Render("[LTS]")
		}
		instCol := strings.Repeat(" ", len("[Installed]"))
		if installed[release.Version] {
			instCol = theme.InfoStyle.Render("[Installed]")
		}

		left := theme.CurrentStyle.Render("Java") + " " + release.Version
		option := huh.NewOption(left+pad+" "+ltsCol+"  "+instCol, release.Version)

		if release.IsLTS {
			ltsOptions = append(ltsOptions, option)
		} else {
			featureOptions = append(featureOptions, option)
		}
	}

	return append(ltsOptions, featureOptions...)
}

func (i *Installer) selectVersion() (string, error) {
	releases, err := i.fetchReleases()
	if err != nil {
		return "", err
	}

	var selected string
	err = huh.NewSelect[string]().
		Title(theme.Subtitle.Render("Select Java Version")).
		Description(theme.Faint.Render("Use arrow keys to navigate, Enter to select")).
		Options(i.releaseOptions(releases)...).
		Value(&selected).
		Run()

	if err != nil {
		return "", err
	}

	return selected, nil
}

func (i *Installer) selectMultipleVersions() ([]string, error) {
	releases, err := i.fetchReleases()
	if err != nil {
		return nil, err
	}

	var selected []string
	err = huh.NewMultiSelect[string]().
		Title(theme.Subtitle.Render("Select Java Versions to Install")).
		Description(theme.Faint.Render("Use Space to select, Enter to confirm")).
		Options(i.releaseOptions(releases)...).
		Value(&selected).
		Limit(10).
		Run()

	if err != nil {
		return nil, err
	}

	return selected, nil
}

// InstallVersion downloads, verifies, and unpacks one major version into
// the managed versions directory. It returns the installed home.
func (i *Installer) InstallVersion(version string) (string, error) {
	fmt.Println()
	fmt.Println(theme.Subtitle.Render(fmt.Sprintf("Installing Java %s from %s", version, i.distributor.Name())))
	fmt.Println()

	var info *DownloadInfo
	err := WithSpinner(
		"Fetching download information...",
		func() error {
			var err error
			info, err = i.distributor.DownloadInfo(version, runtime.GOOS, runtime.GOARCH)
			return err
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to get download URL: %w", err)
	}

	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Package:"), theme.ValueStyle.Render(info.FileName))
	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Size:   "), theme.ValueStyle.Render(FormatSize(info.Size)))
	fmt.Println()

	return i.installArchive(info, version)
}

func (i *Installer) installArchive(info *DownloadInfo, version string) (string, error) {
	if err := os.MkdirAll(i.settings.VersionsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create versions directory: %w", err)
	}

	tempDir, err := os.MkdirTemp("", "jenv-install-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	archivePath := filepath.Join(tempDir, info.FileName)
	fmt.Println("Downloading JDK...")
	if err := DownloadFile(info.URL, archivePath); err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}

	if err := WithSpinner("Verifying checksum...", func() error {
		return VerifyChecksum(archivePath, info.Checksum)
	}); err != nil {
		return "", fmt.Errorf("checksum verification failed: %w", err)
	}
	fmt.Println(theme.SuccessMessage("Checksum verified"))

	var extractedPath string
	extractDir := filepath.Join(tempDir, "extract")
	if err := os.MkdirAll(extractDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create extract directory: %w", err)
	}
	if err := WithSpinner("Extracting JDK...", func() error {
		var err error
		extractedPath, err = ExtractArchive(archivePath, extractDir)
		return err
	}); err != nil {
		return "", fmt.Errorf("extraction failed: %w", err)
	}
	fmt.Println(theme.SuccessMessage("JDK extracted"))

	// macOS archives nest the home under Contents/Home.
	if nested := filepath.Join(extractedPath, "Contents", "Home"); fileExists(jdk.JavaExe(nested)) {
		extractedPath = nested
	}
	if !fileExists(jdk.JavaExe(extractedPath)) {
		return "", fmt.Errorf("invalid JDK structure: no java launcher under bin")
	}

	finalPath := filepath.Join(i.settings.VersionsDir, i.installName(info, version))

	if _, err := os.Stat(finalPath); err == nil {
		fmt.Printf("Removing existing installation at %s\n", finalPath)
		if err := os.RemoveAll(finalPath); err != nil {
			return "", fmt.Errorf("failed to remove old installation: %w", err)
		}
	}

	if err := os.Rename(extractedPath, finalPath); err != nil {
		return "", fmt.Errorf("failed to move JDK to final location: %w", err)
	}

	fmt.Printf("JDK installed to: %s\n", theme.PathStyle.Render(finalPath))
	return finalPath, nil
}

// installName builds the directory name, e.g. temurin-21.0.4.
func (i *Installer) installName(info *DownloadInfo, version string) string {
	v := jdk.CleanVersion(info.OpenJDKVersion)
	if v == "" {
		v = version
	}
	return i.distributor.Vendor() + "-" + v
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
