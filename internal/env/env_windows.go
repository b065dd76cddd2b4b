//go:build windows

package env

import (
	"fmt"
	"path/filepath"
	"strings"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const (
	hwndBroadcast   = 0xFFFF
	wmSettingChange = 0x001A
)

var (
	user32           = syscall.NewLazyDLL("user32.dll")
	sendMessageW     = user32.NewProc("SendMessageW")
	machineEnvRegKey = `System\CurrentControlSet\Control\Session Manager\Environment`
)

// SetMachineJavaHome writes JAVA_HOME into the machine environment and
// rewrites the machine PATH to reference %JAVA_HOME%\bin. Requires an
// elevated process.
func SetMachineJavaHome(javaHome string) error {
	javaHome = filepath.Clean(javaHome)

	key, err := registry.OpenKey(registry.LOCAL_MACHINE, machineEnvRegKey, registry.SET_VALUE|registry.QUERY_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open registry key (run as administrator): %w", err)
	}
	defer key.Close()

	currentPath, _, err := key.GetStringValue("Path")
	if err != nil {
		return fmt.Errorf("failed to read PATH: %w", err)
	}

	oldJavaHome, _, _ := key.GetStringValue("JAVA_HOME")

	if err := key.SetStringValue("JAVA_HOME", javaHome); err != nil {
		return fmt.Errorf("failed to set JAVA_HOME: %w", err)
	}

	if err := key.SetExpandStringValue("Path", rewritePath(currentPath, oldJavaHome)); err != nil {
		return fmt.Errorf("failed to update PATH: %w", err)
	}

	broadcastSettingChange()

	return nil
}

// rewritePath removes stale Java entries from the machine PATH and prepends
// %JAVA_HOME%\bin so the value tracks future JAVA_HOME changes.
func rewritePath(currentPath, oldJavaHome string) string {
	parts := strings.Split(currentPath, ";")
	kept := make([]string, 0, len(parts)+1)

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if oldJavaHome != "" {
			oldBin := filepath.Join(oldJavaHome, "bin")
			if strings.EqualFold(p, oldBin) {
				continue
			}
			if strings.Contains(strings.ToLower(p), strings.ToLower(oldJavaHome)) {
				continue
			}
		}
		if strings.Contains(strings.ToUpper(p), "%JAVA_HOME%") {
			continue
		}
		kept = append(kept, p)
	}

	return strings.Join(append([]string{`%JAVA_HOME%\bin`}, kept...), ";")
}

func broadcastSettingChange() {
	name := syscall.StringToUTF16Ptr("Environment")
	sendMessageW.Call(
		uintptr(hwndBroadcast),
		uintptr(wmSettingChange),
		0,
		uintptr(unsafe.Pointer(name)),
	)
}

// MachineJavaHome reads JAVA_HOME from the machine environment.
func MachineJavaHome() (string, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, machineEnvRegKey, registry.QUERY_VALUE)
	if err != nil {
		return "", fmt.Errorf("failed to open registry key: %w", err)
	}
	defer key.Close()

	value, _, err := key.GetStringValue("JAVA_HOME")
	if err != nil {
		return "", fmt.Errorf("JAVA_HOME not set: %w", err)
	}

	return value, nil
}

// IsAdmin reports whether the current process token belongs to the
// Administrators group.
func IsAdmin() bool {
	var sid *windows.SID

	err := windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid)
	if err != nil {
		return false
	}
	defer windows.FreeSid(sid)

	member, err := windows.Token(0).IsMember(sid)
	if err != nil {
		return false
	}

	return member
}

// RefreshCommand returns a PowerShell snippet that reloads JAVA_HOME and
// PATH from the machine environment into the current session.
func RefreshCommand() string {
	return `$env:JAVA_HOME = [System.Environment]::GetEnvironmentVariable('JAVA_HOME','Machine'); $env:Path = $env:JAVA_HOME + '\bin;' + $env:Path`
}
