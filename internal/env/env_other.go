//go:build !windows

package env

import "errors"

// ErrUnsupported is returned on platforms without a machine-wide
// environment store.
var ErrUnsupported = errors.New("machine environment is only supported on windows")

func SetMachineJavaHome(javaHome string) error {
	return ErrUnsupported
}

func MachineJavaHome() (string, error) {
	return "", ErrUnsupported
}

// IsAdmin always reports true on platforms where no elevation is needed
// to manage the per-user installation.
func IsAdmin() bool {
	return true
}

// RefreshCommand returns an empty string; shims take effect without a
// session refresh on unix-like systems.
func RefreshCommand() string {
	return ""
}
