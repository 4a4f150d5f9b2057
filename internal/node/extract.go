package node

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Extract unpacks a downloaded distribution archive into
// <dir>/v<version>/, stripping the archive's single top-level directory,
// and removes the archive on success. The extraction target is created
// fresh: a partially extracted previous attempt is removed first.
func Extract(archive, dir, version string) (string, error) {
	target := filepath.Join(dir, "v"+version)
	if err := os.RemoveAll(target); err != nil {
		return "", fmt.Errorf("clearing %s: %w", target, err)
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", target, err)
	}

	var err error
	switch {
	case strings.HasSuffix(archive, ".tar.gz"):
		err = extractTarGz(archive, target)
	case strings.HasSuffix(archive, ".zip"):
		err = extractZip(archive, target)
	default:
		err = fmt.Errorf("unsupported archive format: %s", archive)
	}
	if err != nil {
		_ = os.RemoveAll(target)
		return "", err
	}

	_ = os.Remove(archive)
	return target, nil
}

func extractTarGz(archive, target string) error {
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("opening gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar entry: %w", err)
		}

		dest, err := entryPath(target, hdr.Name)
		if err != nil {
			return err
		}
		if dest == "" {
			continue
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := os.Symlink(hdr.Linkname, dest); err != nil && !os.IsExist(err) {
				return err
			}
		case tar.TypeReg:
			if err := writeEntry(dest, tr, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		}
	}
}

func extractZip(archive, target string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("opening zip archive: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		dest, err := entryPath(target, f.Name)
		if err != nil {
			return err
		}
		if dest == "" {
			continue
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return err
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = writeEntry(dest, rc, f.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// entryPath maps an archive member name to its extraction path, stripping
// the single top-level directory and rejecting traversal outside target.
// Returns "" for the top-level directory entry itself.
func entryPath(target, name string) (string, error) {
	name = filepath.ToSlash(name)
	parts := strings.SplitN(name, "/", 2)
	if len(parts) < 2 || parts[1] == "" {
		return "", nil
	}

	dest := filepath.Join(target, filepath.FromSlash(parts[1]))
	if !strings.HasPrefix(dest, filepath.Clean(target)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry escapes target: %s", name)
	}
	return dest, nil
}

func writeEntry(dest string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
