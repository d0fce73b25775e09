package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ruminaider/hostly/internal/paths"
	"github.com/ruminaider/hostly/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	MultiSelect bool     `json:"multi_select"`
	Names       []string `json:"names"`
}

func TestReadWrite_CreatesParents(t *testing.T) {
	d := &storage.Dir{Root: filepath.Join(t.TempDir(), "nested", "app")}

	require.NoError(t, d.Write("profiles/a.txt", []byte("hello")))

	data, err := d.Read("profiles/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestRead_Missing(t *testing.T) {
	d := &storage.Dir{Root: t.TempDir()}
	_, err := d.Read("nope.txt")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRemove_Missing(t *testing.T) {
	d := &storage.Dir{Root: t.TempDir()}
	assert.ErrorIs(t, d.Remove("nope.txt"), storage.ErrNotFound)
}

func TestConfig_RoundTrip(t *testing.T) {
	d := &storage.Dir{Root: t.TempDir()}
	assert.False(t, d.HasConfig())

	require.NoError(t, d.WriteConfig(doc{MultiSelect: true, Names: []string{"b", "a"}}))
	assert.True(t, d.HasConfig())

	raw, err := os.ReadFile(filepath.Join(d.Root, paths.ConfigName))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"multi_select\": true")

	var got doc
	require.NoError(t, d.ReadConfig(&got))
	assert.Equal(t, []string{"b", "a"}, got.Names)
}

func TestReadConfig_Malformed(t *testing.T) {
	d := &storage.Dir{Root: t.TempDir()}
	require.NoError(t, d.Write("config.json", []byte("{not json")))

	var got doc
	assert.ErrorIs(t, d.ReadConfig(&got), storage.ErrMalformedConfig)
}

func TestCommon_DefaultsEmpty(t *testing.T) {
	d := &storage.Dir{Root: t.TempDir()}

	got, err := d.ReadCommon()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, d.WriteCommon("127.0.0.1 localhost\n"))
	got, err = d.ReadCommon()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1 localhost\n", got)
}

func TestProfile_Lifecycle(t *testing.T) {
	d := &storage.Dir{Root: t.TempDir()}

	require.NoError(t, d.WriteProfile("id1", "10.0.0.1 api\n"))
	_, err := os.Stat(filepath.Join(d.Root, paths.ProfilesName, "id1.txt"))
	require.NoError(t, err)

	got, err := d.ReadProfile("id1")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1 api\n", got)

	require.NoError(t, d.RemoveProfile("id1"))
	_, err = d.ReadProfile("id1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestOpen_UsesOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.DataDirEnv, dir)

	d, err := storage.Open(paths.Headless{})
	require.NoError(t, err)
	assert.Equal(t, dir, d.Root)
}

func TestProfile_RejectsEscapingID(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data")
	d := &storage.Dir{Root: root}

	err := d.WriteProfile("../../escaped", "10.0.0.1 outside\n")
	assert.ErrorIs(t, err, paths.ErrInvalidID)
	_, statErr := os.Stat(filepath.Join(filepath.Dir(root), "escaped.txt"))
	assert.True(t, os.IsNotExist(statErr))

	_, err = d.ReadProfile("../config")
	assert.ErrorIs(t, err, paths.ErrInvalidID)
	assert.ErrorIs(t, d.RemoveProfile("a/b"), paths.ErrInvalidID)
}
