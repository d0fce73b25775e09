package profiles_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ruminaider/hostly/internal/paths"
	"github.com/ruminaider/hostly/internal/profiles"
	"github.com/ruminaider/hostly/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memHosts is an in-memory system hosts file.
type memHosts struct {
	content string
	readErr error
	writes  int
}

func (m *memHosts) Read() (string, error) {
	if m.readErr != nil {
		return "", m.readErr
	}
	return m.content, nil
}

func (m *memHosts) Write(content string) error {
	m.content = content
	m.writes++
	return nil
}

func newStore(t *testing.T) (*profiles.Store, *memHosts) {
	t.Helper()
	hosts := &memHosts{content: "127.0.0.1 localhost\n"}
	n := 0
	s := profiles.NewStore(&storage.Dir{Root: t.TempDir()}, hosts,
		profiles.WithBackupName("Backup"),
		profiles.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	return s, hosts
}

func mustID(t *testing.T, s *profiles.Store, name string) string {
	t.Helper()
	id, ok, err := s.FindIDByName(name)
	require.NoError(t, err)
	require.True(t, ok, "profile %q not found", name)
	return id
}

func profilePath(s *profiles.Store, id string) string {
	return filepath.Join(s.Dir().Root, paths.ProfilesName, id+".txt")
}

func TestLoadConfig_Bootstrap(t *testing.T) {
	s, _ := newStore(t)

	cfg, err := s.LoadConfig()
	require.NoError(t, err)

	require.Len(t, cfg.Profiles, 4)
	assert.False(t, cfg.MultiSelect)
	var names []string
	for _, p := range cfg.Profiles {
		assert.False(t, p.Active)
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Backup", "Dev", "Test", "Prod"}, names)

	backup, err := s.Get(cfg.Profiles[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1 localhost\n", backup.Content)

	dev, err := s.Get(cfg.Profiles[1].ID)
	require.NoError(t, err)
	assert.Equal(t, profiles.NewEnvironmentContent, dev.Content)
}

func TestLoadConfig_BootstrapUnreadableHosts(t *testing.T) {
	hosts := &memHosts{readErr: errors.New("permission denied")}
	s := profiles.NewStore(&storage.Dir{Root: t.TempDir()}, hosts)

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, profiles.BackupFailedContent, list[0].Content)
	assert.Equal(t, "System Hosts Backup", list[0].Name)
}

func TestLoadConfig_Idempotent(t *testing.T) {
	s, _ := newStore(t)

	first, err := s.LoadConfig()
	require.NoError(t, err)
	second, err := s.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadConfig_Malformed(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Dir().Write("config.json", []byte("[")))

	_, err := s.LoadConfig()
	assert.ErrorIs(t, err, storage.ErrMalformedConfig)
}

func TestCreate(t *testing.T) {
	s, hosts := newStore(t)

	id, err := s.Create("Stage", "10.0.0.5 stage\n")
	require.NoError(t, err)

	p, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Stage", p.Name)
	assert.Equal(t, "10.0.0.5 stage\n", p.Content)
	assert.False(t, p.Active)
	assert.Zero(t, hosts.writes)

	cfg, err := s.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "Stage", cfg.Profiles[len(cfg.Profiles)-1].Name)
}

func TestCreate_DuplicateNameWritesNothing(t *testing.T) {
	s, _ := newStore(t)
	before, err := s.LoadConfig()
	require.NoError(t, err)

	_, err = s.Create("Dev", "x")
	assert.ErrorIs(t, err, profiles.ErrDuplicateName)

	after, err := s.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	entries, err := os.ReadDir(filepath.Join(s.Dir().Root, paths.ProfilesName))
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestRename(t *testing.T) {
	s, hosts := newStore(t)
	dev := mustID(t, s, "Dev")

	require.NoError(t, s.Rename(dev, "Local"))
	assert.Equal(t, dev, mustID(t, s, "Local"))
	assert.Zero(t, hosts.writes)

	assert.ErrorIs(t, s.Rename(dev, "Prod"), profiles.ErrDuplicateName)
	assert.NoError(t, s.Rename("missing", "Ghost"))

	_, ok, err := s.FindIDByName("Ghost")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRename_ActiveReRenders(t *testing.T) {
	s, hosts := newStore(t)
	dev := mustID(t, s, "Dev")
	require.NoError(t, s.ToggleActive(dev))

	require.NoError(t, s.Rename(dev, "Local"))
	assert.Contains(t, hosts.content, "### Profile: Local ###")
	assert.NotContains(t, hosts.content, "### Profile: Dev ###")
}

func TestSaveContent(t *testing.T) {
	s, hosts := newStore(t)
	dev := mustID(t, s, "Dev")

	require.NoError(t, s.SaveContent(dev, "10.0.0.1 dev\n"))
	assert.Zero(t, hosts.writes, "inactive profile must not re-render")

	require.NoError(t, s.ToggleActive(dev))
	writes := hosts.writes

	require.NoError(t, s.SaveContent(dev, "10.0.0.2 dev\n"))
	assert.Equal(t, writes+1, hosts.writes)
	assert.Contains(t, hosts.content, "10.0.0.2 dev\n")
}

func TestSaveContent_UnknownIDWritesNothing(t *testing.T) {
	s, hosts := newStore(t)
	_, err := s.LoadConfig()
	require.NoError(t, err)
	writes := hosts.writes

	err = s.SaveContent("ghost", "10.0.0.9 ghost\n")
	assert.ErrorIs(t, err, profiles.ErrNotFound)

	_, statErr := os.Stat(profilePath(s, "ghost"))
	assert.True(t, os.IsNotExist(statErr))
	assert.Equal(t, writes, hosts.writes)
}

func TestDelete(t *testing.T) {
	s, _ := newStore(t)
	test := mustID(t, s, "Test")

	require.NoError(t, s.Delete(test))

	_, ok, err := s.FindIDByName("Test")
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = os.Stat(profilePath(s, test))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Delete(test))
	assert.NoError(t, s.Delete("never-existed"))
}

func TestDelete_MissingContentStillRemovesMetadata(t *testing.T) {
	s, _ := newStore(t)
	prod := mustID(t, s, "Prod")
	require.NoError(t, os.Remove(profilePath(s, prod)))

	require.NoError(t, s.Delete(prod))
	_, ok, err := s.FindIDByName("Prod")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete_ActiveReRenders(t *testing.T) {
	s, hosts := newStore(t)
	dev := mustID(t, s, "Dev")
	require.NoError(t, s.ToggleActive(dev))
	require.Contains(t, hosts.content, "### Profile: Dev ###")

	require.NoError(t, s.Delete(dev))
	assert.NotContains(t, hosts.content, "### Profile: Dev ###")
}

func TestUpsert(t *testing.T) {
	s, _ := newStore(t)
	dev := mustID(t, s, "Dev")

	id, err := s.Upsert("Dev", "10.1.1.1 dev\n")
	require.NoError(t, err)
	assert.Equal(t, dev, id)

	p, err := s.Get(dev)
	require.NoError(t, err)
	assert.Equal(t, "10.1.1.1 dev\n", p.Content)

	newID, err := s.Upsert("QA", "10.2.2.2 qa\n")
	require.NoError(t, err)
	assert.NotEqual(t, dev, newID)
	assert.Equal(t, newID, mustID(t, s, "QA"))
}

func TestUpsert_ActiveReRenders(t *testing.T) {
	s, hosts := newStore(t)
	require.NoError(t, s.ToggleActive(mustID(t, s, "Dev")))

	_, err := s.Upsert("Dev", "10.9.9.9 dev\n")
	require.NoError(t, err)
	assert.Contains(t, hosts.content, "10.9.9.9 dev\n")
}

func TestUpsertAll_RendersOnce(t *testing.T) {
	s, hosts := newStore(t)
	_, err := s.LoadConfig()
	require.NoError(t, err)

	n, err := s.UpsertAll([]profiles.Entry{
		{Name: "A", Content: "a"},
		{Name: "B", Content: "b"},
		{Name: "A", Content: "a2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, hosts.writes)

	p, err := s.Get(mustID(t, s, "A"))
	require.NoError(t, err)
	assert.Equal(t, "a2", p.Content)

	cfg, err := s.LoadConfig()
	require.NoError(t, err)
	assert.Len(t, cfg.Profiles, 6)
}

func TestToggleActive_PersistsAndRenders(t *testing.T) {
	s, hosts := newStore(t)
	dev := mustID(t, s, "Dev")
	test := mustID(t, s, "Test")

	require.NoError(t, s.ToggleActive(dev))
	require.NoError(t, s.ToggleActive(test))

	cfg, err := s.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"Test"}, cfg.ActiveNames())
	assert.Equal(t, 2, hosts.writes)
	assert.Contains(t, hosts.content, "### Profile: Test ###")
	assert.NotContains(t, hosts.content, "### Profile: Dev ###")
}

func TestSetMultiSelect_Scenario(t *testing.T) {
	s, hosts := newStore(t)

	require.NoError(t, s.SetMultiSelect(true))
	require.NoError(t, s.ToggleActive(mustID(t, s, "Dev")))
	require.NoError(t, s.ToggleActive(mustID(t, s, "Test")))

	cfg, err := s.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"Dev", "Test"}, cfg.ActiveNames())

	require.NoError(t, s.SetMultiSelect(false))

	cfg, err = s.LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.MultiSelect)
	assert.Equal(t, []string{"Dev"}, cfg.ActiveNames())
	assert.Contains(t, hosts.content, "### Profile: Dev ###")
	assert.NotContains(t, hosts.content, "### Profile: Test ###")
}

func TestSetActive(t *testing.T) {
	s, hosts := newStore(t)
	dev := mustID(t, s, "Dev")

	changed, err := s.SetActive(dev, true)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = s.SetActive(dev, true)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, hosts.writes)

	changed, err = s.SetActive(dev, false)
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = s.SetActive("missing", true)
	assert.ErrorIs(t, err, profiles.ErrNotFound)
}

func TestCommon(t *testing.T) {
	s, hosts := newStore(t)

	c, err := s.Common()
	require.NoError(t, err)
	assert.Empty(t, c)

	require.NoError(t, s.SaveCommon("A\n"))
	assert.Equal(t, 1, hosts.writes)
	assert.Contains(t, hosts.content, "### Common Config ###\nA\n")
}

func TestRender_MatchesApply(t *testing.T) {
	s, hosts := newStore(t)
	require.NoError(t, s.SaveCommon("A\n"))
	x, err := s.Create("X", "B\n")
	require.NoError(t, err)
	require.NoError(t, s.ToggleActive(x))

	first, err := s.Render()
	require.NoError(t, err)
	second, err := s.Render()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, hosts.content, first)
	assert.Less(t, strings.Index(first, "### Common Config ###"), strings.Index(first, "### Profile: X ###"))
}

func TestRender_MissingContentIsEmpty(t *testing.T) {
	s, _ := newStore(t)
	dev := mustID(t, s, "Dev")
	require.NoError(t, s.ToggleActive(dev))
	require.NoError(t, os.Remove(profilePath(s, dev)))

	out, err := s.Render()
	require.NoError(t, err)
	assert.Contains(t, out, "### Profile: Dev ###\n\n\n")
}

func TestReplaceConfig(t *testing.T) {
	s, _ := newStore(t)
	dev := mustID(t, s, "Dev")
	test := mustID(t, s, "Test")

	err := s.ReplaceConfig(profiles.AppConfig{
		Profiles: []profiles.Metadata{
			{ID: dev, Name: "Dev", Active: true},
			{ID: "new", Name: "New", Active: true},
		},
	})
	require.NoError(t, err)

	cfg, err := s.LoadConfig()
	require.NoError(t, err)
	require.Len(t, cfg.Profiles, 2)
	assert.Equal(t, []string{"Dev"}, cfg.ActiveNames(), "single-select repaired")

	_, err = os.Stat(profilePath(s, test))
	assert.True(t, os.IsNotExist(err), "stale content removed")
}

func TestReplaceConfig_RejectsInvalidID(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.LoadConfig()
	require.NoError(t, err)

	err = s.ReplaceConfig(profiles.AppConfig{Profiles: []profiles.Metadata{{ID: "../x", Name: "X"}}})
	assert.ErrorIs(t, err, profiles.ErrInvalidID)

	cfg, err := s.LoadConfig()
	require.NoError(t, err)
	assert.Len(t, cfg.Profiles, 4)
}

func TestReplaceConfig_RejectsDuplicates(t *testing.T) {
	s, _ := newStore(t)
	err := s.ReplaceConfig(profiles.AppConfig{
		Profiles: []profiles.Metadata{{ID: "a", Name: "X"}, {ID: "b", Name: "X"}},
	})
	assert.ErrorIs(t, err, profiles.ErrDuplicateName)
}
