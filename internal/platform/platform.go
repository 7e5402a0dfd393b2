// Package platform provides host platform detection.
package platform

import (
	"os"
	"runtime"
	"strings"
)

// Type represents the host platform type.
type Type int

const (
	Linux Type = iota
	WSL2
	Unknown
)

// String returns the string representation of the platform.
func (p Type) String() string {
	switch p {
	case Linux:
		return "linux"
	case WSL2:
		return "wsl2"
	default:
		return "unknown"
	}
}

// Detect determines the current platform.
func Detect() Type {
	if runtime.GOOS != "linux" {
		return Unknown
	}
	if isWSL() {
		return WSL2
	}
	return Linux
}

// isWSL checks if running in Windows Subsystem for Linux.
func isWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	lower := strings.ToLower(string(data))
	return strings.Contains(lower, "microsoft") || strings.Contains(lower, "wsl")
}

// IsLinux returns true if running on Linux (including WSL2).
func IsLinux() bool {
	return runtime.GOOS == "linux"
}

// HostArch returns the host architecture in dpkg format.
func HostArch() string {
	switch runtime.GOARCH {
	case "arm64":
		return "arm64"
	case "amd64":
		return "amd64"
	default:
		return runtime.GOARCH
	}
}
