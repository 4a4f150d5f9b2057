package config

import (
	"fmt"
	"slices"
)

// GroupsFileName is the name of the group registry file.
const GroupsFileName = "groups.json"

// Group is a named, shared version policy applied to a set of projects.
// Membership is stored as plain project paths; the matching side lives on
// the project as a GroupRef assignment. There are no back-pointers — the
// orchestration layer recomputes consistency on every assignment change.
type Group struct {
	// Name uniquely identifies the group.
	Name string `json:"name"`
	// Desc is an optional human-readable description.
	Desc string `json:"desc,omitempty"`
	// Version is the version every member project resolves to.
	Version string `json:"version"`
	// Members are the paths of projects currently assigned to this group.
	Members []string `json:"members"`
}

// Groups is the group registry domain: an ordered list of groups, persisted
// as a JSON array in groups.json.
type Groups struct {
	List []Group
}

// Clone returns a deep copy sharing no mutable state with the receiver.
func (g *Groups) Clone() *Groups {
	out := &Groups{}
	if g.List != nil {
		out.List = make([]Group, len(g.List))
		for i, group := range g.List {
			out.List[i] = group
			out.List[i].Members = slices.Clone(group.Members)
		}
	}
	return out
}

// Lookup returns the index of the named group, or -1.
func (g *Groups) Lookup(name string) int {
	for i := range g.List {
		if g.List[i].Name == name {
			return i
		}
	}
	return -1
}

// UpdateProjects removes projectPath from every group that lists it as a
// member, recomputing membership consistency after the project moved to an
// explicit version. Returns whether any group's member list changed — the
// caller uses this to decide whether the group domain also needs committing.
func (g *Groups) UpdateProjects(projectPath string) bool {
	changed := false
	for i := range g.List {
		members := g.List[i].Members
		j := slices.Index(members, projectPath)
		if j < 0 {
			continue
		}
		g.List[i].Members = append(members[:j], members[j+1:]...)
		changed = true
	}
	return changed
}

// UpdateProjectsVersion claims projectPath as a member of the named group,
// removing it from any other group, and returns the group's current version.
// ok is false when the group does not exist; the caller must surface this as
// a group-not-found failure.
func (g *Groups) UpdateProjectsVersion(projectPath, groupName string) (version string, ok bool) {
	i := g.Lookup(groupName)
	if i < 0 {
		return "", false
	}

	for j := range g.List {
		if j == i {
			continue
		}
		members := g.List[j].Members
		if k := slices.Index(members, projectPath); k >= 0 {
			g.List[j].Members = append(members[:k], members[k+1:]...)
		}
	}

	if !slices.Contains(g.List[i].Members, projectPath) {
		g.List[i].Members = append(g.List[i].Members, projectPath)
	}

	return g.List[i].Version, true
}

// Add registers a new group. Fails when the name is already taken.
func (g *Groups) Add(group Group) error {
	if group.Name == "" {
		return fmt.Errorf("group has empty name")
	}
	if group.Version == "" {
		return fmt.Errorf("group %q has empty version", group.Name)
	}
	if g.Lookup(group.Name) >= 0 {
		return fmt.Errorf("group already exists: %s", group.Name)
	}
	g.List = append(g.List, group)
	return nil
}

// Remove deletes the named group. Fails with NotFoundError when absent and
// refuses to remove a group that still has members — callers detach the
// member projects first so no dangling references survive.
func (g *Groups) Remove(name string) error {
	i := g.Lookup(name)
	if i < 0 {
		return &NotFoundError{Kind: "group", Name: name}
	}
	if len(g.List[i].Members) > 0 {
		return fmt.Errorf("group %q still has %d member project(s)", name, len(g.List[i].Members))
	}
	g.List = append(g.List[:i], g.List[i+1:]...)
	return nil
}

// SetVersion updates the named group's version in the working draft and
// returns the member paths whose markers must be re-synced.
func (g *Groups) SetVersion(name, version string) ([]string, error) {
	i := g.Lookup(name)
	if i < 0 {
		return nil, &NotFoundError{Kind: "group", Name: name}
	}
	g.List[i].Version = version
	return slices.Clone(g.List[i].Members), nil
}

// encodeGroupsJSON is the Store encoder for the groups domain: the persisted
// document is the bare ordered array.
func encodeGroupsJSON(g *Groups) ([]byte, error) {
	if g.List == nil {
		return encodeJSON([]Group{})
	}
	return encodeJSON(g.List)
}
