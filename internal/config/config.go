package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ruminaider/hostly/internal/paths"
	"go.yaml.in/yaml/v3"
)

// Settings represents <appdir>/settings.yaml.
type Settings struct {
	// HostsFile overrides the platform hosts path.
	HostsFile string `yaml:"hosts_file,omitempty"`
	// Language selects localized default names ("en" or "zh").
	Language string `yaml:"language,omitempty"`
}

// Parse parses settings.yaml bytes into Settings. Unset fields stay empty
// so saving the result back never records a value the user did not choose.
func Parse(data []byte) (Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing settings: %w", err)
	}
	return s, nil
}

// Marshal serializes Settings to YAML bytes.
func Marshal(s Settings) ([]byte, error) {
	return yaml.Marshal(s)
}

// Default returns the settings used when settings.yaml is missing.
func Default() Settings {
	return Settings{}
}

// Load reads settings.yaml from dir. A missing file yields Default().
func Load(dir string) (Settings, error) {
	data, err := os.ReadFile(paths.SettingsFile(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}
	return Parse(data)
}

// Save writes settings.yaml into dir.
func Save(dir string, s Settings) error {
	data, err := Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return os.WriteFile(paths.SettingsFile(dir), data, 0644)
}

// DetectLanguage picks "zh" when the locale environment is Chinese and "en"
// otherwise.
func DetectLanguage(getenv func(string) string) string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := getenv(key)
		if v == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(v), "zh") {
			return "zh"
		}
		return "en"
	}
	return "en"
}

// ResolvedLanguage returns Language, or the locale environment's language
// when it is unset.
func (s Settings) ResolvedLanguage() string {
	if s.Language != "" {
		return s.Language
	}
	return DetectLanguage(os.Getenv)
}

// BackupProfileName returns the localized name of the profile that holds
// the snapshot of the system hosts file taken on first run.
func (s Settings) BackupProfileName() string {
	if s.ResolvedLanguage() == "zh" {
		return "系统hosts备份"
	}
	return "System Hosts Backup"
}

// Keys lists the settings names accepted by Set.
var Keys = []string{"hosts_file", "language"}

// Set assigns one setting by its YAML name. An empty value clears it.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "hosts_file":
		s.HostsFile = value
	case "language":
		if value != "" && value != "en" && value != "zh" {
			return fmt.Errorf("unsupported language %q (want en or zh)", value)
		}
		s.Language = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
