package node

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLTSName_Decode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want LTSName
	}{
		{name: "codename", in: `"Iron"`, want: "Iron"},
		{name: "false literal", in: `false`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got LTSName
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLTSName_EncodeRoundTrip(t *testing.T) {
	for _, l := range []LTSName{"", "Iron"} {
		data, err := json.Marshal(l)
		require.NoError(t, err)

		var got LTSName
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, l, got)
	}
}

const indexDoc = `[
  {"version": "v22.1.0", "date": "2024-05-02", "files": ["linux-x64"], "npm": "10.7.0", "lts": false, "security": false},
  {"version": "v20.0.0", "date": "2023-04-18", "files": ["linux-x64"], "npm": "9.6.4", "lts": "Iron", "security": true}
]`

func TestCatalog_ListFetchesIndex(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/index.json", r.URL.Path)
		w.Write([]byte(indexDoc))
	}))
	defer srv.Close()

	c := &Catalog{Mirror: srv.URL, CachePath: filepath.Join(t.TempDir(), CacheFileName)}

	list, err := c.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "v22.1.0", list[0].Version)
	assert.Equal(t, LTSName("Iron"), list[1].LTS)
	assert.True(t, list[1].Security)
	assert.Equal(t, 1, hits)

	// Second call without fetch is served from cache.
	list, err = c.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 1, hits)
}

func TestCatalog_ListFetchBypassesCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(indexDoc))
	}))
	defer srv.Close()

	c := &Catalog{Mirror: srv.URL, CachePath: filepath.Join(t.TempDir(), CacheFileName)}

	_, err := c.List(context.Background(), true)
	require.NoError(t, err)
	_, err = c.List(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestCatalog_ListMirrorError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := &Catalog{Mirror: srv.URL}

	_, err := c.List(context.Background(), true)
	assert.ErrorContains(t, err, "502")
}

func TestCatalog_CorruptCacheFallsThroughToFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(indexDoc))
	}))
	defer srv.Close()

	cachePath := filepath.Join(t.TempDir(), CacheFileName)
	require.NoError(t, os.WriteFile(cachePath, []byte("{not json"), 0o644))

	c := &Catalog{Mirror: srv.URL, CachePath: cachePath}

	list, err := c.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestParseSemver(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{in: "20.0.0", want: []int{20, 0, 0}},
		{in: "v22.1.3", want: []int{22, 1, 3}},
		{in: "18.0.0-rc.1", want: []int{18, 0, 0}},
		{in: "20.0", want: nil},
		{in: "not-a-version", want: nil},
		{in: "", want: nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseSemver(tt.in), "input %q", tt.in)
	}
}

func TestSortVersionsDesc(t *testing.T) {
	versions := []string{"18.2.0", "22.1.0", "20.10.1", "20.9.0"}
	SortVersionsDesc(versions)
	assert.Equal(t, []string{"22.1.0", "20.10.1", "20.9.0", "18.2.0"}, versions)
}
