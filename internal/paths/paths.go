package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// AppID is the application identity both execution contexts resolve against.
const AppID = "com.hostly.app"

// DataDirEnv overrides the resolved data directory for every context.
const DataDirEnv = "HOSTLY_DATA_DIR"

// ExecutionContext says who is asking for the data directory. It is either
// Interactive or Headless.
type ExecutionContext interface {
	executionContext()
}

// Interactive is the interactive shell. DataDir is the directory the host
// hands us; when empty, HostDataDir is used.
type Interactive struct {
	DataDir string
}

// Headless is a command-line invocation with no host to ask, so the
// directory is rebuilt from the per-OS convention.
type Headless struct{}

func (Interactive) executionContext() {}
func (Headless) executionContext()    {}

// Resolver rebuilds per-OS data directories. The zero value is not usable;
// use System() or fill every field in tests.
type Resolver struct {
	GOOS    string
	Getenv  func(string) string
	HomeDir func() (string, error)
}

// System returns a Resolver backed by the running process.
func System() Resolver {
	return Resolver{
		GOOS:    runtime.GOOS,
		Getenv:  os.Getenv,
		HomeDir: os.UserHomeDir,
	}
}

// AppDir resolves the application data directory for ctx.
func AppDir(ctx ExecutionContext) (string, error) {
	return System().AppDir(ctx)
}

// HostDataDir is the directory the interactive host provides.
func HostDataDir() (string, error) {
	return System().HostDataDir()
}

// AppDir resolves the application data directory for ctx. Both contexts
// land on the same directory for the same AppID.
func (r Resolver) AppDir(ctx ExecutionContext) (string, error) {
	if dir := r.Getenv(DataDirEnv); dir != "" {
		return dir, nil
	}

	switch c := ctx.(type) {
	case Interactive:
		if c.DataDir != "" {
			return c.DataDir, nil
		}
		return r.HostDataDir()
	case Headless:
		return r.headlessDir()
	default:
		return "", fmt.Errorf("unknown execution context %T", ctx)
	}
}

// HostDataDir mirrors what a desktop host returns as its per-app data
// directory: the user config root on Windows and macOS, the XDG data root
// elsewhere.
func (r Resolver) HostDataDir() (string, error) {
	if dir := r.Getenv(DataDirEnv); dir != "" {
		return dir, nil
	}

	var base string
	switch r.GOOS {
	case "windows":
		base = r.Getenv("APPDATA")
		if base == "" {
			return "", fmt.Errorf("%%APPDATA%% is not defined")
		}
	case "darwin":
		home, err := r.HomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = r.Getenv("XDG_DATA_HOME")
		if base == "" || !filepath.IsAbs(base) {
			home, err := r.HomeDir()
			if err != nil {
				return "", fmt.Errorf("resolving home directory: %w", err)
			}
			base = filepath.Join(home, ".local", "share")
		}
	}
	return filepath.Join(base, AppID), nil
}

func (r Resolver) headlessDir() (string, error) {
	switch r.GOOS {
	case "windows":
		appData := r.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("%%APPDATA%% is not defined")
		}
		return filepath.Join(appData, AppID), nil
	case "darwin":
		home, err := r.HomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", AppID), nil
	default:
		if xdg := r.Getenv("XDG_DATA_HOME"); xdg != "" && filepath.IsAbs(xdg) {
			return filepath.Join(xdg, AppID), nil
		}
		home, err := r.HomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, ".local", "share", AppID), nil
	}
}

// Names of the documents under the data directory. Keys are slash separated
// and relative to the data directory.
const (
	ConfigName   = "config.json"
	CommonName   = "common.txt"
	SettingsName = "settings.yaml"
	ProfilesName = "profiles"
)

// ErrInvalidID is returned for a profile id that cannot name a file inside
// the profiles directory.
var ErrInvalidID = errors.New("invalid profile id")

// ValidID reports whether id is usable as a bare file name.
func ValidID(id string) bool {
	if id == "" || id == "." || strings.Contains(id, "..") || strings.ContainsAny(id, `/\`) {
		return false
	}
	return filepath.Base(id) == id
}

// ProfileKey returns the key of the content document for id.
func ProfileKey(id string) (string, error) {
	if !ValidID(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return ProfilesName + "/" + id + ".txt", nil
}

// SettingsFile returns <dir>/settings.yaml.
func SettingsFile(dir string) string {
	return filepath.Join(dir, SettingsName)
}
