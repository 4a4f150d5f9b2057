package node

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// InstalledList scans the install directory for node version directories
// ("v20.0.0" or "20.0.0") and returns the bare version strings, newest
// first. A missing directory yields an empty list.
func InstalledList(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning install directory %s: %w", dir, err)
	}

	var versions []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := strings.TrimPrefix(entry.Name(), "v")
		if ParseSemver(name) == nil {
			continue
		}
		versions = append(versions, name)
	}

	SortVersionsDesc(versions)
	return versions, nil
}

// IsInstalled reports whether the given version exists in the install
// directory.
func IsInstalled(dir, version string) bool {
	installed, err := InstalledList(dir)
	if err != nil {
		return false
	}
	for _, v := range installed {
		if v == version {
			return true
		}
	}
	return false
}
