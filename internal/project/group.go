package project

import (
	"path/filepath"

	"github.com/schmitthub/nvmd/internal/config"
	"github.com/schmitthub/nvmd/internal/nvmdrc"
)

// Groups returns the registered groups.
func (s *Service) Groups() ([]config.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups, err := s.cfg.Groups()
	if err != nil {
		return nil, err
	}
	return groups.Latest().Clone().List, nil
}

// CreateGroup registers a new group and claims the given projects as its
// initial members, assigning each a group reference and syncing its marker
// to the group's version. A member already claimed by another group moves:
// the old group's member list drops the path so no project is ever listed
// in two groups. Both domains commit together; any failure — unknown member
// project, marker write error — discards both drafts.
func (s *Service) CreateGroup(name, desc, version string, memberPaths []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, groups, err := s.domains()
	if err != nil {
		return err
	}

	projectsChanged, err := func() (bool, error) {
		if err := groups.Latest().Add(config.Group{
			Name:    name,
			Desc:    desc,
			Version: version,
			Members: []string{},
		}); err != nil {
			return false, err
		}

		members := make([]string, 0, len(memberPaths))
		for _, path := range memberPaths {
			abs, err := filepath.Abs(path)
			if err != nil {
				return false, err
			}

			i := projects.Latest().LookupByPath(abs)
			if i < 0 {
				return false, &config.NotFoundError{Kind: "project", Name: abs}
			}
			if _, err := projects.Latest().UpdateVersion(projects.Latest().List[i].Name, config.GroupRef(name)); err != nil {
				return false, err
			}
			// Claim membership, stripping the path from any other group.
			if _, ok := groups.Latest().UpdateProjectsVersion(abs, name); !ok {
				return false, &config.NotFoundError{Kind: "group", Name: name}
			}
			members = append(members, abs)
		}

		if err := nvmdrc.BatchSync(members, version); err != nil {
			return false, err
		}
		return len(members) > 0, nil
	}()

	if err != nil {
		projects.Discard()
		groups.Discard()
		return err
	}

	groups.Apply()
	if err := groups.SaveFile(); err != nil {
		return err
	}
	if projectsChanged {
		projects.Apply()
		if err := projects.SaveFile(); err != nil {
			return err
		}
	}
	return nil
}

// RemoveGroup deletes the named group. The group must be empty of member
// projects; reassign them first.
func (s *Service) RemoveGroup(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups, err := s.cfg.Groups()
	if err != nil {
		return err
	}

	if err := groups.Latest().Remove(name); err != nil {
		groups.Discard()
		return err
	}

	groups.Apply()
	return groups.SaveFile()
}

// ChangeGroupVersion updates a group's version and re-syncs every member
// project's marker file through the bounded-concurrency batch writer.
// Member projects keep their group reference; only the group record and the
// markers change. The batch is best-effort at the filesystem level — marker
// writes that completed before a failure stay on disk — but the group
// domain itself commits only on full success.
func (s *Service) ChangeGroupVersion(name, version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups, err := s.cfg.Groups()
	if err != nil {
		return err
	}

	err = func() error {
		members, err := groups.Latest().SetVersion(name, version)
		if err != nil {
			return err
		}
		return nvmdrc.BatchSync(members, version)
	}()

	if err != nil {
		groups.Discard()
		return err
	}

	groups.Apply()
	return groups.SaveFile()
}
