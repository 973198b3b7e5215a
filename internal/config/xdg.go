// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML settings path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "gcdstats", "config.toml")
}

// DefaultTraceDir returns the directory where recorded traces are looked up.
func DefaultTraceDir() string {
	return filepath.Join(XDGDataHome(), "gcdstats", "traces")
}

// ResolveTracePath returns name unchanged when it exists or has a directory
// component, and otherwise looks it up in DefaultTraceDir.
func ResolveTracePath(name string) string {
	if filepath.Dir(name) != "." {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}
	candidate := filepath.Join(DefaultTraceDir(), name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return name
}
