package config_test

import (
	"os"
	"testing"

	"github.com/ruminaider/hostly/internal/config"
	"github.com/ruminaider/hostly/internal/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		s, err := config.Parse([]byte("hosts_file: /tmp/hosts\nlanguage: zh\n"))
		require.NoError(t, err)
		assert.Equal(t, "/tmp/hosts", s.HostsFile)
		assert.Equal(t, "zh", s.Language)
	})

	t.Run("language left unset", func(t *testing.T) {
		t.Setenv("LC_ALL", "")
		t.Setenv("LC_MESSAGES", "")
		t.Setenv("LANG", "zh_CN.UTF-8")
		s, err := config.Parse([]byte("hosts_file: /tmp/hosts\n"))
		require.NoError(t, err)
		assert.Empty(t, s.Language)
		assert.Equal(t, "zh", s.ResolvedLanguage())
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := config.Parse([]byte("{{{"))
		assert.Error(t, err)
	})
}

func TestLoad_Missing(t *testing.T) {
	s, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, s.HostsFile)
	assert.Empty(t, s.Language)
}

func TestSave_DoesNotPinDetectedLanguage(t *testing.T) {
	t.Setenv("LC_ALL", "zh_CN.UTF-8")
	dir := t.TempDir()

	s, err := config.Load(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("hosts_file", "/tmp/hosts"))
	require.NoError(t, config.Save(dir, s))

	raw, err := os.ReadFile(paths.SettingsFile(dir))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "language")

	t.Setenv("LC_ALL", "en_US.UTF-8")
	s, err = config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/hosts", s.HostsFile)
	assert.Equal(t, "System Hosts Backup", s.BackupProfileName())
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.Save(dir, config.Settings{HostsFile: "/x/hosts", Language: "en"}))

	_, err := os.Stat(paths.SettingsFile(dir))
	require.NoError(t, err)

	s, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/x/hosts", s.HostsFile)
	assert.Equal(t, "en", s.Language)
}

func TestDetectLanguage(t *testing.T) {
	env := func(m map[string]string) func(string) string {
		return func(k string) string { return m[k] }
	}

	assert.Equal(t, "en", config.DetectLanguage(env(nil)))
	assert.Equal(t, "zh", config.DetectLanguage(env(map[string]string{"LANG": "zh_TW.UTF-8"})))
	assert.Equal(t, "en", config.DetectLanguage(env(map[string]string{"LC_ALL": "C", "LANG": "zh_CN"})))
}

func TestBackupProfileName(t *testing.T) {
	assert.Equal(t, "系统hosts备份", config.Settings{Language: "zh"}.BackupProfileName())
	assert.Equal(t, "System Hosts Backup", config.Settings{Language: "en"}.BackupProfileName())

	t.Setenv("LC_ALL", "zh_CN.UTF-8")
	assert.Equal(t, "系统hosts备份", config.Settings{}.BackupProfileName())
	assert.Equal(t, "System Hosts Backup", config.Settings{Language: "en"}.BackupProfileName())
}

func TestSet(t *testing.T) {
	var s config.Settings
	require.NoError(t, s.Set("hosts_file", "/tmp/hosts"))
	require.NoError(t, s.Set("language", "zh"))
	assert.Equal(t, "/tmp/hosts", s.HostsFile)
	assert.Equal(t, "zh", s.Language)

	require.NoError(t, s.Set("hosts_file", ""))
	assert.Empty(t, s.HostsFile)

	assert.Error(t, s.Set("language", "fr"))
	assert.Error(t, s.Set("colour", "blue"))
}
