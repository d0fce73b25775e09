// Package storage persists the hostly store as plain files under one
// application data directory.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ruminaider/hostly/internal/paths"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrMalformedConfig is returned when config.json cannot be decoded.
	ErrMalformedConfig = errors.New("malformed config")
)

// Dir is a file-backed store rooted at an application data directory.
type Dir struct {
	Root string
}

// Open returns a Dir for the data directory of ctx.
func Open(ctx paths.ExecutionContext) (*Dir, error) {
	root, err := paths.AppDir(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving data directory: %w", err)
	}
	return &Dir{Root: root}, nil
}

// Read returns the bytes stored under key, a slash-separated path relative
// to Root.
func (d *Dir) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(d.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// Write stores data under key, creating parent directories on demand.
func (d *Dir) Write(key string, data []byte) error {
	path := d.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", key, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Remove deletes key. A missing key yields ErrNotFound.
func (d *Dir) Remove(key string) error {
	err := os.Remove(d.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", key, ErrNotFound)
		}
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

// Exists reports whether key is present.
func (d *Dir) Exists(key string) bool {
	_, err := os.Stat(d.path(key))
	return err == nil
}

func (d *Dir) path(key string) string {
	return filepath.Join(d.Root, filepath.FromSlash(key))
}

const (
	configKey = paths.ConfigName
	commonKey = paths.CommonName
)

// HasConfig reports whether config.json has been written yet.
func (d *Dir) HasConfig() bool {
	return d.Exists(configKey)
}

// ReadConfig decodes config.json into v.
func (d *Dir) ReadConfig(v any) error {
	data, err := d.Read(configKey)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedConfig, err)
	}
	return nil
}

// WriteConfig writes v as pretty-printed JSON to config.json.
func (d *Dir) WriteConfig(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return d.Write(configKey, append(data, '\n'))
}

// ReadCommon returns common.txt, or "" if it does not exist.
func (d *Dir) ReadCommon() (string, error) {
	data, err := d.Read(commonKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

// WriteCommon overwrites common.txt.
func (d *Dir) WriteCommon(content string) error {
	return d.Write(commonKey, []byte(content))
}

// ReadProfile returns the content document for id.
func (d *Dir) ReadProfile(id string) (string, error) {
	key, err := paths.ProfileKey(id)
	if err != nil {
		return "", err
	}
	data, err := d.Read(key)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteProfile overwrites the content document for id.
func (d *Dir) WriteProfile(id, content string) error {
	key, err := paths.ProfileKey(id)
	if err != nil {
		return err
	}
	return d.Write(key, []byte(content))
}

// RemoveProfile deletes the content document for id.
func (d *Dir) RemoveProfile(id string) error {
	key, err := paths.ProfileKey(id)
	if err != nil {
		return err
	}
	return d.Remove(key)
}
