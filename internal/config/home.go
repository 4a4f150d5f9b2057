package config

import (
	"os"
	"path/filepath"
)

const (
	// NvmdHomeEnv is the environment variable overriding the nvmd home directory.
	NvmdHomeEnv = "NVMD_HOME"
	// DefaultNvmdDir is the default directory name under the user home.
	DefaultNvmdDir = ".nvmd"
	// VersionsSubdir is the subdirectory holding installed node versions.
	VersionsSubdir = "versions"
	// LogsSubdir is the subdirectory for log files.
	LogsSubdir = "logs"
)

// NvmdHome returns the nvmd home directory.
// It checks the NVMD_HOME environment variable first, then defaults to ~/.nvmd.
func NvmdHome() (string, error) {
	if home := os.Getenv(NvmdHomeEnv); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultNvmdDir), nil
}

// VersionsDir returns the default install directory for node versions
// (~/.nvmd/versions).
func VersionsDir() (string, error) {
	home, err := NvmdHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, VersionsSubdir), nil
}

// LogsDir returns the log file directory (~/.nvmd/logs).
func LogsDir() (string, error) {
	home, err := NvmdHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, LogsSubdir), nil
}

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
