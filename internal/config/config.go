// Package config owns nvmd's persisted configuration state: the settings,
// project registry, and group registry domains. Each domain is wrapped in a
// draft/commit/rollback Store and loaded lazily, once, for the process
// lifetime. All readers and writers go through the same Config instance;
// nothing else holds authoritative state.
package config

import (
	"fmt"
	"path/filepath"
	"sync"
)

// Config is the process-wide owner of the three configuration domains.
// Construct one per process (or per test) and inject it; domains initialize
// lazily on first access and stay alive until the process exits.
type Config struct {
	home string

	settingsOnce sync.Once
	settings     *Store[*Settings]
	settingsErr  error

	projectsOnce sync.Once
	projects     *Store[*Projects]
	projectsErr  error

	groupsOnce sync.Once
	groups     *Store[*Groups]
	groupsErr  error
}

// New creates a Config rooted at the resolved nvmd home directory.
func New() (*Config, error) {
	home, err := NvmdHome()
	if err != nil {
		return nil, fmt.Errorf("failed to determine nvmd home: %w", err)
	}
	return NewAt(home), nil
}

// NewAt creates a Config rooted at an explicit directory.
// Used by tests that need isolated state.
func NewAt(home string) *Config {
	return &Config{home: home}
}

// Home returns the configuration root directory.
func (c *Config) Home() string {
	return c.home
}

// Settings returns the settings domain store, loading settings.yaml (with
// defaults and NVMD_* environment overrides) on first access.
func (c *Config) Settings() (*Store[*Settings], error) {
	c.settingsOnce.Do(func() {
		path := filepath.Join(c.home, SettingsFileName)
		loader := NewSettingsLoaderWithPath(path)
		settings, err := loader.Load()
		if err != nil {
			c.settingsErr = err
			return
		}
		c.settings = NewStore(path, settings, encodeSettingsYAML)
	})
	return c.settings, c.settingsErr
}

// Projects returns the project registry store, loading projects.json on
// first access. A missing file yields an empty registry.
func (c *Config) Projects() (*Store[*Projects], error) {
	c.projectsOnce.Do(func() {
		path := filepath.Join(c.home, ProjectsFileName)
		var list []Project
		if _, err := readJSONFile(path, &list); err != nil {
			c.projectsErr = err
			return
		}
		c.projects = NewStore(path, &Projects{List: list}, encodeProjectsJSON)
	})
	return c.projects, c.projectsErr
}

// Groups returns the group registry store, loading groups.json on first
// access. A missing file yields an empty registry.
func (c *Config) Groups() (*Store[*Groups], error) {
	c.groupsOnce.Do(func() {
		path := filepath.Join(c.home, GroupsFileName)
		var list []Group
		if _, err := readJSONFile(path, &list); err != nil {
			c.groupsErr = err
			return
		}
		c.groups = NewStore(path, &Groups{List: list}, encodeGroupsJSON)
	})
	return c.groups, c.groupsErr
}

// ReadProjectsFile re-reads projects.json from disk, bypassing the in-memory
// domain. Used when an external writer (the GUI shell) may have replaced the
// document and the caller wants to refresh the working draft from it.
func (c *Config) ReadProjectsFile() ([]Project, error) {
	var list []Project
	if _, err := readJSONFile(filepath.Join(c.home, ProjectsFileName), &list); err != nil {
		return nil, err
	}
	return list, nil
}
