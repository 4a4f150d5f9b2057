// Package project orchestrates cross-domain configuration transactions:
// version assignments that must move the project registry, the group
// registry, and the on-disk marker file together or not at all.
package project

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/schmitthub/nvmd/internal/config"
	"github.com/schmitthub/nvmd/internal/logger"
	"github.com/schmitthub/nvmd/internal/nvmdrc"
)

// Service runs all mutating operations over the Projects and Groups domains.
// Each domain has a single shared working draft, so mutating transactions
// are serialized: the mutex admits one in-flight transaction at a time,
// keeping the apply/discard boundary intact.
type Service struct {
	mu  sync.Mutex
	cfg *config.Config
}

// NewService creates a Service over the given configuration owner.
func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// Info describes a candidate project directory and its current marker
// content, as produced for a picked-folders result.
type Info struct {
	Path    string
	Version string
}

// domains resolves both registries; every transaction touches both.
func (s *Service) domains() (*config.Store[*config.Projects], *config.Store[*config.Groups], error) {
	projects, err := s.cfg.Projects()
	if err != nil {
		return nil, nil, err
	}
	groups, err := s.cfg.Groups()
	if err != nil {
		return nil, nil, err
	}
	return projects, groups, nil
}

// ChangeWithVersion assigns an explicit version to the named project.
//
// The transaction: update the project's working entry, recompute group
// membership (the project may have left a group), write the marker file.
// Success commits the project domain always and the group domain only when
// membership changed; any failure discards both drafts. A missing project
// directory (marker status 404) is a reportable condition, not a failure —
// the assignment still commits and the returned status lets the caller act.
func (s *Service) ChangeWithVersion(name, version string) (nvmdrc.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, groups, err := s.domains()
	if err != nil {
		return 0, err
	}

	status, groupsChanged, err := func() (nvmdrc.Status, bool, error) {
		path, err := projects.Latest().UpdateVersion(name, config.ExplicitVersion(version))
		if err != nil {
			return 0, false, err
		}

		groupsChanged := groups.Latest().UpdateProjects(path)

		status, err := nvmdrc.Sync(path, version)
		if err != nil {
			return 0, false, err
		}
		return status, groupsChanged, nil
	}()

	if err != nil {
		projects.Discard()
		groups.Discard()
		return 0, err
	}

	projects.Apply()
	if err := projects.SaveFile(); err != nil {
		return status, err
	}

	if groupsChanged {
		groups.Apply()
		if err := groups.SaveFile(); err != nil {
			return status, err
		}
	}

	if status == nvmdrc.StatusGone {
		logger.Warn().Str("project", name).Msg("project directory is gone; marker not written")
	}
	return status, nil
}

// ChangeWithGroup assigns the named project to a group, resolving the
// group's version for the marker write. Both domains move together: the
// project gains a group reference, the group claims the project as a
// member. Success commits and saves both unconditionally; any failure —
// including an unknown group — discards both drafts, leaving the working
// state exactly as before the call.
func (s *Service) ChangeWithGroup(name, groupName string) (nvmdrc.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, groups, err := s.domains()
	if err != nil {
		return 0, err
	}

	status, err := func() (nvmdrc.Status, error) {
		path, err := projects.Latest().UpdateVersion(name, config.GroupRef(groupName))
		if err != nil {
			return 0, err
		}

		version, ok := groups.Latest().UpdateProjectsVersion(path, groupName)
		if !ok {
			return 0, &config.NotFoundError{Kind: "group", Name: groupName}
		}

		status, err := nvmdrc.Sync(path, version)
		if err != nil {
			return 0, err
		}
		return status, nil
	}()

	if err != nil {
		projects.Discard()
		groups.Discard()
		return 0, err
	}

	projects.Apply()
	if err := projects.SaveFile(); err != nil {
		return status, err
	}
	groups.Apply()
	if err := groups.SaveFile(); err != nil {
		return status, err
	}

	if status == nvmdrc.StatusGone {
		logger.Warn().Str("project", name).Msg("project directory is gone; marker not written")
	}
	return status, nil
}

// List returns the registered projects. When fetch is true the registry
// document is re-read from disk first (an external writer may have replaced
// it) and the refreshed list committed.
func (s *Service) List(fetch bool) ([]config.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.cfg.Projects()
	if err != nil {
		return nil, err
	}

	if fetch {
		list, err := s.cfg.ReadProjectsFile()
		if err != nil {
			return nil, err
		}
		if err := projects.Latest().UpdateList(list); err != nil {
			projects.Discard()
			return nil, err
		}
		projects.Apply()
	}

	return projects.Latest().Clone().List, nil
}

// Inspect reads the marker files for a set of picked project directories.
// It performs no registration; callers pass the result to Add.
func Inspect(dirs []string) ([]Info, error) {
	infos := make([]Info, 0, len(dirs))
	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", dir, err)
		}
		version, err := nvmdrc.Read(abs)
		if err != nil {
			return nil, err
		}
		infos = append(infos, Info{Path: abs, Version: version})
	}
	return infos, nil
}

// Add registers the given directories as projects, seeding each entry's
// assignment from its existing marker file. Already-registered paths are
// skipped. Commits and saves the project domain.
func (s *Service) Add(dirs []string) ([]config.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.cfg.Projects()
	if err != nil {
		return nil, err
	}

	infos, err := Inspect(dirs)
	if err != nil {
		return nil, err
	}

	var added []config.Project
	for _, info := range infos {
		if projects.Latest().LookupByPath(info.Path) >= 0 {
			logger.Debug().Str("path", info.Path).Msg("project already registered")
			continue
		}
		p := config.Project{
			Name:    filepath.Base(info.Path),
			Path:    info.Path,
			Version: config.ParseAssignment(info.Version),
		}
		if err := projects.Latest().Add(p); err != nil {
			projects.Discard()
			return nil, err
		}
		added = append(added, p)
	}

	if len(added) == 0 {
		projects.Discard()
		return nil, nil
	}

	projects.Apply()
	if err := projects.SaveFile(); err != nil {
		return added, err
	}
	return added, nil
}

// SyncResult reports the marker status for one project after a sync pass.
type SyncResult struct {
	Project config.Project
	Version string
	Status  nvmdrc.Status
}

// SyncAll re-mirrors every registered project's effective version onto its
// marker file. The effective version is the explicit assignment or exactly
// one group lookup away; a dangling group reference is a contract violation
// and fails the pass before any write. Projects with no assignment are
// skipped. Domains are not mutated.
func (s *Service) SyncAll() ([]SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, groups, err := s.domains()
	if err != nil {
		return nil, err
	}

	list := projects.Latest().Clone().List
	resolved := make([]SyncResult, 0, len(list))
	for _, p := range list {
		if p.Version.IsZero() {
			continue
		}
		version := p.Version.Version()
		if p.Version.IsGroup() {
			i := groups.Latest().Lookup(p.Version.GroupName())
			if i < 0 {
				return nil, &config.NotFoundError{Kind: "group", Name: p.Version.GroupName()}
			}
			version = groups.Latest().List[i].Version
		}
		resolved = append(resolved, SyncResult{Project: p, Version: version})
	}

	for i := range resolved {
		status, err := nvmdrc.Sync(resolved[i].Project.Path, resolved[i].Version)
		if err != nil {
			return resolved[:i], err
		}
		resolved[i].Status = status
	}
	return resolved, nil
}

// Remove unregisters the project at path, strips any group membership, and
// deletes its marker file. Both domains commit together; the marker removal
// is part of the transaction's success condition.
func (s *Service) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, groups, err := s.domains()
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	groupsChanged, err := func() (bool, error) {
		if !projects.Latest().Remove(abs) {
			return false, &config.NotFoundError{Kind: "project", Name: abs}
		}
		groupsChanged := groups.Latest().UpdateProjects(abs)
		if err := nvmdrc.Remove(abs); err != nil {
			return false, err
		}
		return groupsChanged, nil
	}()

	if err != nil {
		projects.Discard()
		groups.Discard()
		return err
	}

	projects.Apply()
	if err := projects.SaveFile(); err != nil {
		return err
	}
	if groupsChanged {
		groups.Apply()
		if err := groups.SaveFile(); err != nil {
			return err
		}
	}
	return nil
}
