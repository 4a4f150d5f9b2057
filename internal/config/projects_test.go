package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignment_PersistedForm(t *testing.T) {
	tests := []struct {
		name string
		a    Assignment
		want string
	}{
		{name: "explicit version", a: ExplicitVersion("20.0.0"), want: "20.0.0"},
		{name: "group reference", a: GroupRef("lts"), want: "group:lts"},
		{name: "zero value", a: Assignment{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.String())
			assert.Equal(t, tt.a, ParseAssignment(tt.want))
		})
	}
}

func TestAssignment_GroupNameCollision(t *testing.T) {
	// An explicit version that happens to equal a group name stays explicit.
	a := ExplicitVersion("lts")
	assert.False(t, a.IsGroup())
	assert.Equal(t, "lts", a.Version())

	g := GroupRef("lts")
	assert.True(t, g.IsGroup())
	assert.Equal(t, "lts", g.GroupName())
	assert.Empty(t, g.Version())
}

func TestAssignment_JSONRoundTrip(t *testing.T) {
	p := Project{Name: "app", Path: "/tmp/app", Version: GroupRef("lts")}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version":"group:lts"`)

	var got Project
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, p, got)
}

func TestProjects_UpdateVersion(t *testing.T) {
	p := &Projects{List: []Project{
		{Name: "app", Path: "/tmp/app"},
		{Name: "lib", Path: "/tmp/lib"},
	}}

	path, err := p.UpdateVersion("lib", ExplicitVersion("22.1.0"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/lib", path)
	assert.Equal(t, "22.1.0", p.List[1].Version.Version())

	// Other entries untouched.
	assert.True(t, p.List[0].Version.IsZero())
}

func TestProjects_UpdateVersionUnknownProject(t *testing.T) {
	p := &Projects{}

	_, err := p.UpdateVersion("ghost", ExplicitVersion("20.0.0"))
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestProjects_AddRejectsDuplicatePath(t *testing.T) {
	p := &Projects{}

	require.NoError(t, p.Add(Project{Name: "app", Path: "/tmp/app"}))
	err := p.Add(Project{Name: "other", Path: "/tmp/app"})
	assert.ErrorContains(t, err, "already registered")
}

func TestProjects_AddRejectsRelativePath(t *testing.T) {
	p := &Projects{}

	err := p.Add(Project{Name: "app", Path: "relative/app"})
	assert.ErrorContains(t, err, "not absolute")
}

func TestProjects_Remove(t *testing.T) {
	p := &Projects{List: []Project{{Name: "app", Path: "/tmp/app"}}}

	assert.True(t, p.Remove("/tmp/app"))
	assert.Empty(t, p.List)
	assert.False(t, p.Remove("/tmp/app"))
}

func TestProjects_CloneIsDeep(t *testing.T) {
	p := &Projects{List: []Project{{Name: "app", Path: "/tmp/app"}}}

	c := p.Clone()
	c.List[0].Name = "changed"

	assert.Equal(t, "app", p.List[0].Name)
}
