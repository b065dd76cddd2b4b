package updater

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"jenv/internal/config"

	"github.com/charmbracelet/log"
	"github.com/creativeprojects/go-selfupdate"
)

const (
	// GitHubRepo is the repository jenv releases are published from.
	GitHubRepo = "jenv-dev/jenv"

	// CheckInterval is the minimum time between automatic update checks.
	CheckInterval = 24 * time.Hour

	// UpdateTimeout bounds update operations.
	UpdateTimeout = 5 * time.Minute
)

// Updater checks for and applies new releases of the jenv binary.
type Updater struct {
	settings       config.Settings
	logger         *log.Logger
	currentVersion string
	selfUpdater    *selfupdate.Updater
	state          State
}

func New(settings config.Settings, logger *log.Logger, version string) (*Updater, error) {
	su, err := selfupdate.NewUpdater(selfupdate.Config{
		Validator: &selfupdate.ChecksumValidator{
			UniqueFilename: "SHA256SUMS.txt",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}

	return &Updater{
		settings:       settings,
		logger:         logger,
		currentVersion: strings.TrimPrefix(version, "v"),
		selfUpdater:    su,
		state:          LoadState(settings.StateFile),
	}, nil
}

// ShouldCheckForUpdate applies the state settings and the rate limit.
func (u *Updater) ShouldCheckForUpdate() bool {
	if !u.state.Enabled || !u.state.AutoCheck {
		return false
	}
	return time.Since(u.state.LastCheck) >= CheckInterval
}

// CheckForUpdate queries GitHub for the latest release. It returns nil when
// already up to date or when the user skipped the latest version.
func (u *Updater) CheckForUpdate(ctx context.Context) (*selfupdate.Release, error) {
	latest, found, err := u.selfUpdater.DetectLatest(ctx, selfupdate.ParseSlug(GitHubRepo))
	if err != nil {
		return nil, fmt.Errorf("failed to check for updates: %w", err)
	}

	if !found {
		return nil, fmt.Errorf("no releases found")
	}

	u.state.LastCheck = time.Now()
	if err := SaveState(u.settings.StateFile, u.state); err != nil {
		u.logger.Warn("failed to save update state", "err", err)
	}

	if latest.LessOrEqual(u.currentVersion) {
		return nil, nil
	}

	if u.state.SkipVersion == latest.Version() {
		return nil, nil
	}

	return latest, nil
}

// PerformUpdate downloads and installs the release, backing up the current
// binary and rolling back on failure.
func (u *Updater) PerformUpdate(ctx context.Context, release *selfupdate.Release) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to determine executable path: %w", err)
	}

	backup := exe + ".backup"
	if err := copyFile(exe, backup); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, release.AssetURL, release.AssetName, exe); err != nil {
		if rollbackErr := os.Rename(backup, exe); rollbackErr != nil {
			return fmt.Errorf("update failed and rollback failed: update error: %w, rollback error: %v", err, rollbackErr)
		}
		return fmt.Errorf("update failed (rolled back): %w", err)
	}

	go func() {
		time.Sleep(10 * time.Second)
		os.Remove(backup)
	}()

	return nil
}

// SkipVersion records that the user declined a release.
func (u *Updater) SkipVersion(version string) error {
	u.state.SkipVersion = version
	return SaveState(u.settings.StateFile, u.state)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0755)
}
