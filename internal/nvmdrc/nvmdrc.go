// Package nvmdrc reads and writes the per-project .nvmdrc marker file, the
// single on-disk source of truth for a project's assigned node version.
package nvmdrc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the marker file name at the project root.
const FileName = ".nvmdrc"

// Status is the synchronous result of a marker sync.
type Status int

const (
	// StatusWritten means the marker file now holds the requested version.
	StatusWritten Status = 200
	// StatusGone means the project directory no longer exists. This is a
	// soft, reportable condition, not an error — the caller may prompt to
	// remove the stale project.
	StatusGone Status = 404
)

// Sync writes version as the entire contents of dir/.nvmdrc, creating or
// overwriting the file. When the project directory does not exist it returns
// StatusGone and performs no write.
func Sync(dir, version string) (Status, error) {
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return StatusGone, nil
		}
		return 0, fmt.Errorf("checking project directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(version), 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return StatusWritten, nil
}

// Read returns the marker file contents for the project at dir, trimmed of
// surrounding whitespace. Absence of the file means "no assignment" and
// yields "" with no error.
func Read(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s marker: %w", dir, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Remove deletes the marker file for the project at dir. Missing files are
// not an error.
func Remove(dir string) error {
	err := os.Remove(filepath.Join(dir, FileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s marker: %w", dir, err)
	}
	return nil
}
