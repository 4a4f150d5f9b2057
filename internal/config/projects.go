package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// ProjectsFileName is the name of the project registry file.
	ProjectsFileName = "projects.json"

	// groupRefPrefix tags a group reference in the persisted version field.
	groupRefPrefix = "group:"
)

// Assignment is a project's assigned version: either an explicit semantic
// version string or a reference to a named group. Exactly one side is set.
//
// The persisted form is a plain string, "20.0.0" or "group:<name>", matching
// the projects document layout. Keeping the two cases as a tagged value (and
// giving explicit-version and group assignment distinct entry points) avoids
// the name-collision ambiguity of treating any string that happens to match
// a group name as a reference.
type Assignment struct {
	version string
	group   string
}

// ExplicitVersion returns an assignment to a literal version string.
func ExplicitVersion(v string) Assignment {
	return Assignment{version: v}
}

// GroupRef returns an assignment referencing the named group.
func GroupRef(name string) Assignment {
	return Assignment{group: name}
}

// IsGroup reports whether the assignment references a group.
func (a Assignment) IsGroup() bool {
	return a.group != ""
}

// IsZero reports whether no version is assigned.
func (a Assignment) IsZero() bool {
	return a.version == "" && a.group == ""
}

// Version returns the explicit version string, or "" for group references.
func (a Assignment) Version() string {
	return a.version
}

// GroupName returns the referenced group name, or "" for explicit versions.
func (a Assignment) GroupName() string {
	return a.group
}

// String returns the persisted form of the assignment.
func (a Assignment) String() string {
	if a.group != "" {
		return groupRefPrefix + a.group
	}
	return a.version
}

// ParseAssignment parses the persisted form back into an Assignment.
func ParseAssignment(s string) Assignment {
	if name, ok := strings.CutPrefix(s, groupRefPrefix); ok {
		return GroupRef(name)
	}
	return ExplicitVersion(s)
}

// MarshalJSON encodes the assignment as its persisted string form.
func (a Assignment) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes the persisted string form.
func (a *Assignment) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = ParseAssignment(s)
	return nil
}

// Project is one registered project directory.
type Project struct {
	// Name identifies the project in commands; defaults to the directory base name.
	Name string `json:"name"`
	// Path is the absolute project directory.
	Path string `json:"path"`
	// Version is the assigned version or group reference.
	Version Assignment `json:"version"`
}

// Valid returns an error if the project is missing required fields.
func (p Project) Valid() error {
	if p.Name == "" {
		return fmt.Errorf("project has empty name")
	}
	if p.Path == "" {
		return fmt.Errorf("project has empty path")
	}
	if !filepath.IsAbs(p.Path) {
		return fmt.Errorf("project path %q is not absolute", p.Path)
	}
	return nil
}

// Projects is the project registry domain: an ordered list of projects,
// persisted as a JSON array in projects.json.
type Projects struct {
	List []Project
}

// Clone returns a deep copy sharing no mutable state with the receiver.
func (p *Projects) Clone() *Projects {
	out := &Projects{}
	if p.List != nil {
		out.List = make([]Project, len(p.List))
		copy(out.List, p.List)
	}
	return out
}

// Lookup returns the index of the project with the given name, or -1.
func (p *Projects) Lookup(name string) int {
	for i := range p.List {
		if p.List[i].Name == name {
			return i
		}
	}
	return -1
}

// LookupByPath returns the index of the project at the given path, or -1.
func (p *Projects) LookupByPath(path string) int {
	for i := range p.List {
		if p.List[i].Path == path {
			return i
		}
	}
	return -1
}

// UpdateVersion assigns a version (or group reference) to the named project
// in the working draft and returns the project's filesystem path for the
// caller's marker-file write. Fails with NotFoundError when the project is
// not registered. No disk I/O happens here.
func (p *Projects) UpdateVersion(name string, a Assignment) (string, error) {
	i := p.Lookup(name)
	if i < 0 {
		return "", &NotFoundError{Kind: "project", Name: name}
	}
	p.List[i].Version = a
	return p.List[i].Path, nil
}

// Add registers a project. Fails when another project claims the same path.
func (p *Projects) Add(project Project) error {
	if err := project.Valid(); err != nil {
		return err
	}
	if p.LookupByPath(project.Path) >= 0 {
		return fmt.Errorf("project already registered: %s", project.Path)
	}
	p.List = append(p.List, project)
	return nil
}

// Remove deletes the project at the given path, reporting whether it existed.
func (p *Projects) Remove(path string) bool {
	i := p.LookupByPath(path)
	if i < 0 {
		return false
	}
	p.List = append(p.List[:i], p.List[i+1:]...)
	return true
}

// UpdateList replaces the registry contents, validating every entry first.
func (p *Projects) UpdateList(list []Project) error {
	for _, project := range list {
		if err := project.Valid(); err != nil {
			return err
		}
	}
	p.List = make([]Project, len(list))
	copy(p.List, list)
	return nil
}

// encodeProjectsJSON is the Store encoder for the projects domain: the
// persisted document is the bare ordered array.
func encodeProjectsJSON(p *Projects) ([]byte, error) {
	if p.List == nil {
		return encodeJSON([]Project{})
	}
	return encodeJSON(p.List)
}
