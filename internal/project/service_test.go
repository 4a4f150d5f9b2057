package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/schmitthub/nvmd/internal/config"
	"github.com/schmitthub/nvmd/internal/nvmdrc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv wires a Service over isolated state plus a few registered
// project directories.
type testEnv struct {
	svc  *Service
	cfg  *config.Config
	dirs map[string]string // project name -> directory
}

func newTestEnv(t *testing.T, names ...string) *testEnv {
	t.Helper()

	cfg := config.NewAt(t.TempDir())
	svc := NewService(cfg)

	base := t.TempDir()
	dirs := make(map[string]string, len(names))
	var paths []string
	for _, name := range names {
		dir := filepath.Join(base, name)
		require.NoError(t, os.Mkdir(dir, 0o755))
		dirs[name] = dir
		paths = append(paths, dir)
	}
	if len(paths) > 0 {
		_, err := svc.Add(paths)
		require.NoError(t, err)
	}

	return &testEnv{svc: svc, cfg: cfg, dirs: dirs}
}

func (e *testEnv) marker(t *testing.T, name string) string {
	t.Helper()
	version, err := nvmdrc.Read(e.dirs[name])
	require.NoError(t, err)
	return version
}

func (e *testEnv) persistedProjects(t *testing.T) []config.Project {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.cfg.Home(), config.ProjectsFileName))
	require.NoError(t, err)
	var list []config.Project
	require.NoError(t, json.Unmarshal(data, &list))
	return list
}

func (e *testEnv) persistedGroups(t *testing.T) []config.Group {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.cfg.Home(), config.GroupsFileName))
	require.NoError(t, err)
	var list []config.Group
	require.NoError(t, json.Unmarshal(data, &list))
	return list
}

func TestService_ChangeWithVersion(t *testing.T) {
	env := newTestEnv(t, "app")

	status, err := env.svc.ChangeWithVersion("app", "20.0.0")
	require.NoError(t, err)
	assert.Equal(t, nvmdrc.StatusWritten, status)
	assert.Equal(t, "20.0.0", env.marker(t, "app"))

	persisted := env.persistedProjects(t)
	require.Len(t, persisted, 1)
	assert.Equal(t, "20.0.0", persisted[0].Version.Version())
}

func TestService_ChangeWithVersionUnknownProject(t *testing.T) {
	env := newTestEnv(t, "app")

	_, err := env.svc.ChangeWithVersion("ghost", "20.0.0")
	require.Error(t, err)
	assert.True(t, config.IsNotFound(err))

	// The failed transaction left no assignment behind.
	projects, err := env.cfg.Projects()
	require.NoError(t, err)
	assert.True(t, projects.Latest().List[0].Version.IsZero())
}

func TestService_ChangeWithVersionGoneDirectoryStillCommits(t *testing.T) {
	env := newTestEnv(t, "app")
	require.NoError(t, os.RemoveAll(env.dirs["app"]))

	status, err := env.svc.ChangeWithVersion("app", "20.0.0")
	require.NoError(t, err)
	assert.Equal(t, nvmdrc.StatusGone, status)

	persisted := env.persistedProjects(t)
	assert.Equal(t, "20.0.0", persisted[0].Version.Version())
}

func TestService_ChangeWithGroup(t *testing.T) {
	env := newTestEnv(t, "app", "lib")
	require.NoError(t, env.svc.CreateGroup("lts", "", "20.0.0", nil))

	status, err := env.svc.ChangeWithGroup("app", "lts")
	require.NoError(t, err)
	assert.Equal(t, nvmdrc.StatusWritten, status)

	// The marker carries the group's resolved version, not the reference.
	assert.Equal(t, "20.0.0", env.marker(t, "app"))

	persisted := env.persistedProjects(t)
	assert.Equal(t, "lts", persisted[0].Version.GroupName())

	groups := env.persistedGroups(t)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{env.dirs["app"]}, groups[0].Members)
}

func TestService_ChangeWithGroupIsIdempotent(t *testing.T) {
	env := newTestEnv(t, "app")
	require.NoError(t, env.svc.CreateGroup("lts", "", "20.0.0", nil))

	_, err := env.svc.ChangeWithGroup("app", "lts")
	require.NoError(t, err)
	_, err = env.svc.ChangeWithGroup("app", "lts")
	require.NoError(t, err)

	groups := env.persistedGroups(t)
	assert.Equal(t, []string{env.dirs["app"]}, groups[0].Members)
}

func TestService_ChangeWithGroupUnknownGroupRollsBack(t *testing.T) {
	env := newTestEnv(t, "app")

	_, err := env.svc.ChangeWithVersion("app", "18.0.0")
	require.NoError(t, err)

	_, err = env.svc.ChangeWithGroup("app", "ghost")
	require.Error(t, err)
	assert.True(t, config.IsNotFound(err))

	// Rollback: the draft still holds the prior explicit assignment and the
	// marker is untouched.
	projects, err := env.cfg.Projects()
	require.NoError(t, err)
	assert.Equal(t, "18.0.0", projects.Latest().List[0].Version.Version())
	assert.Equal(t, "18.0.0", env.marker(t, "app"))
}

func TestService_ChangeWithVersionLeavesGroup(t *testing.T) {
	env := newTestEnv(t, "app")
	require.NoError(t, env.svc.CreateGroup("lts", "", "20.0.0", []string{env.dirs["app"]}))

	_, err := env.svc.ChangeWithVersion("app", "22.1.0")
	require.NoError(t, err)

	groups := env.persistedGroups(t)
	assert.Empty(t, groups[0].Members)
	assert.Equal(t, "22.1.0", env.marker(t, "app"))
}

func TestService_MovingBetweenGroups(t *testing.T) {
	env := newTestEnv(t, "app")
	require.NoError(t, env.svc.CreateGroup("lts", "", "20.0.0", nil))
	require.NoError(t, env.svc.CreateGroup("edge", "", "23.0.0", nil))

	_, err := env.svc.ChangeWithGroup("app", "lts")
	require.NoError(t, err)
	_, err = env.svc.ChangeWithGroup("app", "edge")
	require.NoError(t, err)

	groups := env.persistedGroups(t)
	assert.Empty(t, groups[0].Members)
	assert.Equal(t, []string{env.dirs["app"]}, groups[1].Members)
	assert.Equal(t, "23.0.0", env.marker(t, "app"))
}

func TestService_AddSeedsAssignmentFromMarker(t *testing.T) {
	cfg := config.NewAt(t.TempDir())
	svc := NewService(cfg)

	dir := filepath.Join(t.TempDir(), "seeded")
	require.NoError(t, os.Mkdir(dir, 0o755))
	_, err := nvmdrc.Sync(dir, "20.0.0")
	require.NoError(t, err)

	added, err := svc.Add([]string{dir})
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, "20.0.0", added[0].Version.Version())
}

func TestService_AddSkipsRegistered(t *testing.T) {
	env := newTestEnv(t, "app")

	added, err := env.svc.Add([]string{env.dirs["app"]})
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestService_List(t *testing.T) {
	env := newTestEnv(t, "app", "lib")

	list, err := env.svc.List(false)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestService_ListFetchReadsExternalEdit(t *testing.T) {
	env := newTestEnv(t, "app")

	// Simulate an external writer replacing the registry document.
	external := []config.Project{
		{Name: "other", Path: "/tmp/other", Version: config.ExplicitVersion("22.1.0")},
	}
	data, err := json.Marshal(external)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(env.cfg.Home(), config.ProjectsFileName), data, 0o644))

	list, err := env.svc.List(true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "other", list[0].Name)
}

func TestService_Remove(t *testing.T) {
	env := newTestEnv(t, "app")
	require.NoError(t, env.svc.CreateGroup("lts", "", "20.0.0", []string{env.dirs["app"]}))

	require.NoError(t, env.svc.Remove(env.dirs["app"]))

	assert.Empty(t, env.persistedProjects(t))
	assert.Empty(t, env.persistedGroups(t)[0].Members)

	_, err := os.Stat(filepath.Join(env.dirs["app"], nvmdrc.FileName))
	assert.True(t, os.IsNotExist(err))
}

func TestService_RemoveUnknown(t *testing.T) {
	env := newTestEnv(t, "app")

	err := env.svc.Remove(filepath.Join(t.TempDir(), "ghost"))
	assert.True(t, config.IsNotFound(err))
}

func TestService_SyncAll(t *testing.T) {
	env := newTestEnv(t, "app", "lib", "bare")
	require.NoError(t, env.svc.CreateGroup("lts", "", "20.0.0", []string{env.dirs["lib"]}))
	_, err := env.svc.ChangeWithVersion("app", "22.1.0")
	require.NoError(t, err)

	// Clear markers so the sync pass has something to restore.
	require.NoError(t, os.Remove(filepath.Join(env.dirs["app"], nvmdrc.FileName)))
	require.NoError(t, os.Remove(filepath.Join(env.dirs["lib"], nvmdrc.FileName)))

	results, err := env.svc.SyncAll()
	require.NoError(t, err)

	// "bare" has no assignment and is skipped.
	require.Len(t, results, 2)
	assert.Equal(t, "22.1.0", env.marker(t, "app"))
	assert.Equal(t, "20.0.0", env.marker(t, "lib"))
	for _, r := range results {
		assert.Equal(t, nvmdrc.StatusWritten, r.Status)
	}
}

func TestService_SyncAllDanglingGroupFailsBeforeWrites(t *testing.T) {
	env := newTestEnv(t, "app")

	// Forge a dangling group reference directly in the draft and commit it.
	projects, err := env.cfg.Projects()
	require.NoError(t, err)
	_, err = projects.Latest().UpdateVersion("app", config.GroupRef("ghost"))
	require.NoError(t, err)
	projects.Apply()

	_, err = env.svc.SyncAll()
	assert.True(t, config.IsNotFound(err))

	// No marker write happened.
	assert.Empty(t, env.marker(t, "app"))
}
