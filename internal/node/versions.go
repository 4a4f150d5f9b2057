// Package node fetches the upstream node version catalog, scans locally
// installed versions, and downloads distribution archives with throttled
// progress reporting.
package node

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// CacheFileName is the cached catalog document under the nvmd home.
const CacheFileName = "versions.json"

// cacheTTL is how long the cached catalog is considered fresh.
const cacheTTL = 24 * time.Hour

// indexTimeout is the maximum time for the catalog request.
const indexTimeout = 15 * time.Second

// LTSName is a node release's LTS codename. The upstream index encodes the
// field as either a string ("Iron") or the JSON literal false.
type LTSName string

// UnmarshalJSON accepts both the string and false encodings.
func (l *LTSName) UnmarshalJSON(data []byte) error {
	if string(data) == "false" {
		*l = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding lts field: %w", err)
	}
	*l = LTSName(s)
	return nil
}

// MarshalJSON restores the upstream encoding.
func (l LTSName) MarshalJSON() ([]byte, error) {
	if l == "" {
		return []byte("false"), nil
	}
	return json.Marshal(string(l))
}

// NVersion is one catalog entry from the mirror's index document.
// Read-only release metadata; nvmd passes it through to callers.
type NVersion struct {
	Version  string   `json:"version"`
	Date     string   `json:"date"`
	Files    []string `json:"files"`
	NPM      string   `json:"npm,omitempty"`
	LTS      LTSName  `json:"lts"`
	Security bool     `json:"security"`
}

// Catalog fetches and caches the node version list.
type Catalog struct {
	// Mirror is the distribution mirror base URL.
	Mirror string
	// CachePath is where the fetched catalog document is cached.
	CachePath string
	// Client is the HTTP client; a default is used when nil.
	Client *http.Client
}

// List returns the version catalog. When fetch is false and a fresh cache
// exists, the cached document is returned; otherwise the mirror's index.json
// is fetched and the cache rewritten.
func (c *Catalog) List(ctx context.Context, fetch bool) ([]NVersion, error) {
	if !fetch {
		if list, ok := c.readCache(); ok {
			return list, nil
		}
	}

	list, err := c.fetchIndex(ctx)
	if err != nil {
		return nil, err
	}
	if c.CachePath != "" {
		if werr := writeCache(c.CachePath, list); werr != nil {
			// Cache write failure does not invalidate the fetched list.
			return list, nil
		}
	}
	return list, nil
}

func (c *Catalog) readCache() ([]NVersion, bool) {
	if c.CachePath == "" {
		return nil, false
	}
	info, err := os.Stat(c.CachePath)
	if err != nil || time.Since(info.ModTime()) > cacheTTL {
		return nil, false
	}
	data, err := os.ReadFile(c.CachePath)
	if err != nil {
		return nil, false
	}
	var list []NVersion
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, false
	}
	return list, true
}

func (c *Catalog) fetchIndex(ctx context.Context) ([]NVersion, error) {
	url := strings.TrimSuffix(c.Mirror, "/") + "/index.json"

	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: indexTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching version index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("version index returned %d", resp.StatusCode)
	}

	var list []NVersion
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decoding version index: %w", err)
	}
	return list, nil
}

// writeCache atomically writes the catalog cache (write to temp, rename).
func writeCache(path string, list []NVersion) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ParseSemver parses "MAJOR.MINOR.PATCH" (optionally "v"-prefixed, with any
// pre-release suffix stripped) into a 3-element slice. Returns nil if
// parsing fails.
func ParseSemver(v string) []int {
	v = strings.TrimPrefix(v, "v")
	if idx := strings.IndexByte(v, '-'); idx != -1 {
		v = v[:idx]
	}

	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return nil
	}

	result := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil
		}
		result[i] = n
	}
	return result
}

// CompareVersions orders two version strings, newest last. Unparseable
// versions sort before parseable ones.
func CompareVersions(a, b string) int {
	av, bv := ParseSemver(a), ParseSemver(b)
	switch {
	case av == nil && bv == nil:
		return strings.Compare(a, b)
	case av == nil:
		return -1
	case bv == nil:
		return 1
	}
	for i := 0; i < 3; i++ {
		if av[i] != bv[i] {
			if av[i] < bv[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// SortVersionsDesc sorts version strings newest-first, in place.
func SortVersionsDesc(versions []string) {
	sort.Slice(versions, func(i, j int) bool {
		return CompareVersions(versions[i], versions[j]) > 0
	})
}
