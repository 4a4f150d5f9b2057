package node

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// FetchConfig configures a distribution download. The progress callback and
// cancellation signal come from the caller; the transfer itself never
// touches configuration state, so aborting it leaves no partial
// configuration change behind.
type FetchConfig struct {
	// Mirror is the distribution mirror base URL.
	Mirror string
	// Dest is the directory receiving the downloaded archive.
	Dest string
	// Proxy is the outbound proxy URL; empty means environment proxies.
	Proxy string
	// NoProxy bypasses all proxies, including environment ones.
	NoProxy bool
	// Timeout bounds the whole transfer; zero means no client timeout
	// (the context still applies).
	Timeout time.Duration
	// OnProgress receives raw progress ticks; wrap it in a Throttle to
	// bound emission rate. May be nil.
	OnProgress ProgressFunc
}

// ArchiveName returns the distribution archive file name for a version on
// the current platform, e.g. "node-v20.0.0-linux-x64.tar.gz".
func ArchiveName(version string) string {
	osName := runtime.GOOS
	ext := "tar.gz"
	if osName == "windows" {
		osName = "win"
		ext = "zip"
	}

	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x64"
	case "386":
		arch = "x86"
	}

	return fmt.Sprintf("node-v%s-%s-%s.%s", version, osName, arch, ext)
}

// Fetch downloads the distribution archive for version into cfg.Dest,
// reporting progress through cfg.OnProgress, and returns the archive path.
// The download streams to a temp file and renames on completion, so an
// aborted transfer never leaves a partial archive at the final path.
func Fetch(ctx context.Context, cfg FetchConfig, version string) (string, error) {
	name := ArchiveName(version)
	archiveURL := fmt.Sprintf("%s/v%s/%s", strings.TrimSuffix(cfg.Mirror, "/"), version, name)

	client, err := newHTTPClient(cfg)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mirror returned %d for %s", resp.StatusCode, archiveURL)
	}

	if err := os.MkdirAll(cfg.Dest, 0o755); err != nil {
		return "", fmt.Errorf("creating destination directory: %w", err)
	}

	dest := filepath.Join(cfg.Dest, name)
	tmp, err := os.CreateTemp(cfg.Dest, ".nvmd-fetch-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := copyWithProgress(tmp, resp.Body, name, resp.ContentLength, cfg.OnProgress); err != nil {
		return "", fmt.Errorf("downloading %s: %w", name, err)
	}

	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("renaming archive to %s: %w", dest, err)
	}

	success = true
	return dest, nil
}

func newHTTPClient(cfg FetchConfig) (*http.Client, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}

	switch {
	case cfg.NoProxy:
		transport.Proxy = nil
	case cfg.Proxy != "":
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy address %q: %w", cfg.Proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}, nil
}

// copyWithProgress streams r into w in chunks, ticking onProgress with the
// cumulative byte count after every chunk.
func copyWithProgress(w io.Writer, r io.Reader, source string, total int64, onProgress ProgressFunc) error {
	buf := make([]byte, 32*1024)
	var transferred int64

	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
			transferred += int64(n)
			if onProgress != nil {
				onProgress(source, transferred, total)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
