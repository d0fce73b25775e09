package profiles

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ruminaider/hostly/internal/storage"
	"github.com/ruminaider/hostly/internal/synth"
)

const (
	// BackupFailedContent is stored in the bootstrap backup profile when the
	// system hosts file cannot be read.
	BackupFailedContent = "# Backup failed"
	// NewEnvironmentContent is the body of the default environments.
	NewEnvironmentContent = "# New Environment\n"
)

// DefaultEnvironments are created on first run after the backup profile.
var DefaultEnvironments = []string{"Dev", "Test", "Prod"}

// Hosts is the system hosts file as seen by the store.
type Hosts interface {
	Read() (string, error)
	Write(content string) error
}

// Store is the profile store. Every mutating call loads config.json,
// changes it in memory, writes it back, and re-renders the hosts file when
// the active set or active content may have changed.
type Store struct {
	dir        *storage.Dir
	hosts      Hosts
	backupName string
	newID      func() string
}

// Option configures a Store.
type Option func(*Store)

// WithBackupName sets the name of the profile that snapshots the system
// hosts file on first run.
func WithBackupName(name string) Option {
	return func(s *Store) { s.backupName = name }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// NewStore returns a Store persisting into dir and rendering into hosts.
func NewStore(dir *storage.Dir, hosts Hosts, opts ...Option) *Store {
	s := &Store{
		dir:        dir,
		hosts:      hosts,
		backupName: "System Hosts Backup",
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the backing storage.
func (s *Store) Dir() *storage.Dir {
	return s.dir
}

// LoadConfig returns config.json, creating the default store on first run.
func (s *Store) LoadConfig() (*AppConfig, error) {
	if !s.dir.HasConfig() {
		return s.bootstrap()
	}
	var cfg AppConfig
	if err := s.dir.ReadConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.Profiles == nil {
		cfg.Profiles = []Metadata{}
	}
	return &cfg, nil
}

func (s *Store) bootstrap() (*AppConfig, error) {
	cfg := &AppConfig{Profiles: []Metadata{}}

	snapshot, err := s.hosts.Read()
	if err != nil {
		slog.Debug("system hosts not readable, storing placeholder", "error", err)
		snapshot = BackupFailedContent
	}

	id := s.newID()
	if err := s.dir.WriteProfile(id, snapshot); err != nil {
		return nil, err
	}
	cfg.Profiles = append(cfg.Profiles, Metadata{ID: id, Name: s.backupName})

	for _, name := range DefaultEnvironments {
		id := s.newID()
		if err := s.dir.WriteProfile(id, NewEnvironmentContent); err != nil {
			return nil, err
		}
		cfg.Profiles = append(cfg.Profiles, Metadata{ID: id, Name: name})
	}

	if err := s.saveConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *Store) saveConfig(cfg *AppConfig) error {
	if err := s.dir.WriteConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

// ReplaceConfig overwrites config.json with cfg after validating it. The
// content documents of profiles that are no longer listed are removed on a
// best-effort basis. The hosts file is not re-rendered.
func (s *Store) ReplaceConfig(cfg AppConfig) error {
	cfg = cfg.Clone()
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Normalize()

	var stale []string
	if s.dir.HasConfig() {
		if old, err := s.LoadConfig(); err == nil {
			for _, p := range old.Profiles {
				if cfg.Index(p.ID) < 0 {
					stale = append(stale, p.ID)
				}
			}
		}
	}

	if err := s.saveConfig(&cfg); err != nil {
		return err
	}
	for _, id := range stale {
		s.removeContent(id)
	}
	return nil
}

// content returns the content of id, or "" if it cannot be read.
func (s *Store) content(id string) string {
	c, err := s.dir.ReadProfile(id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Debug("reading profile content", "id", id, "error", err)
		}
		return ""
	}
	return c
}

func (s *Store) removeContent(id string) {
	if err := s.dir.RemoveProfile(id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.Debug("removing profile content", "id", id, "error", err)
	}
}

// List returns every profile with its content, in stored order.
func (s *Store) List() ([]Profile, error) {
	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}
	out := make([]Profile, 0, len(cfg.Profiles))
	for _, p := range cfg.Profiles {
		out = append(out, Profile{ID: p.ID, Name: p.Name, Content: s.content(p.ID), Active: p.Active})
	}
	return out, nil
}

// Get returns the profile with id.
func (s *Store) Get(id string) (Profile, error) {
	cfg, err := s.LoadConfig()
	if err != nil {
		return Profile{}, err
	}
	i := cfg.Index(id)
	if i < 0 {
		return Profile{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	p := cfg.Profiles[i]
	return Profile{ID: p.ID, Name: p.Name, Content: s.content(p.ID), Active: p.Active}, nil
}

// FindIDByName returns the id of the profile named name.
func (s *Store) FindIDByName(name string) (string, bool, error) {
	cfg, err := s.LoadConfig()
	if err != nil {
		return "", false, err
	}
	p, ok := cfg.FindByName(name)
	return p.ID, ok, nil
}

// Create adds an inactive profile and returns its id.
func (s *Store) Create(name, content string) (string, error) {
	cfg, err := s.LoadConfig()
	if err != nil {
		return "", err
	}
	if _, ok := cfg.FindByName(name); ok {
		return "", fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	id := s.newID()
	if err := cfg.Add(Metadata{ID: id, Name: name}); err != nil {
		return "", err
	}
	if err := s.dir.WriteProfile(id, content); err != nil {
		return "", err
	}
	if err := s.saveConfig(cfg); err != nil {
		return "", err
	}
	return id, nil
}

// Rename renames id. Renaming an unknown id does nothing.
func (s *Store) Rename(id, name string) error {
	cfg, err := s.LoadConfig()
	if err != nil {
		return err
	}
	changed, err := cfg.Rename(id, name)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := s.saveConfig(cfg); err != nil {
		return err
	}
	if cfg.isActive(id) {
		return s.Apply()
	}
	return nil
}

// SaveContent overwrites the content of id and re-renders the hosts file
// when id is active. An unknown id yields ErrNotFound and writes nothing.
func (s *Store) SaveContent(id, content string) error {
	cfg, err := s.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Index(id) < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := s.dir.WriteProfile(id, content); err != nil {
		return err
	}
	if cfg.isActive(id) {
		return s.Apply()
	}
	return nil
}

// WriteContent overwrites the content of id without re-rendering.
func (s *Store) WriteContent(id, content string) error {
	return s.dir.WriteProfile(id, content)
}

// Delete removes id. Deleting an unknown id does nothing; failing to remove
// the content document does not fail the call.
func (s *Store) Delete(id string) error {
	cfg, err := s.LoadConfig()
	if err != nil {
		return err
	}
	removed, ok := cfg.Remove(id)
	if ok {
		if err := s.saveConfig(cfg); err != nil {
			return err
		}
	}
	s.removeContent(id)

	if ok && removed.Active {
		return s.Apply()
	}
	return nil
}

// Upsert overwrites the content of the profile named name, or creates it.
func (s *Store) Upsert(name, content string) (string, error) {
	id, active, err := s.upsert(name, content)
	if err != nil {
		return "", err
	}
	if active {
		if err := s.Apply(); err != nil {
			return "", err
		}
	}
	return id, nil
}

// UpsertAll upserts entries in order and re-renders once at the end. It is
// not atomic: entries written before a failure stay written.
func (s *Store) UpsertAll(entries []Entry) (int, error) {
	count := 0
	for _, e := range entries {
		if _, _, err := s.upsert(e.Name, e.Content); err != nil {
			return count, fmt.Errorf("importing %q: %w", e.Name, err)
		}
		count++
	}
	if err := s.Apply(); err != nil {
		return count, err
	}
	return count, nil
}

func (s *Store) upsert(name, content string) (string, bool, error) {
	cfg, err := s.LoadConfig()
	if err != nil {
		return "", false, err
	}
	if p, ok := cfg.FindByName(name); ok {
		if err := s.dir.WriteProfile(p.ID, content); err != nil {
			return "", false, err
		}
		return p.ID, p.Active, nil
	}
	id, err := s.Create(name, content)
	return id, false, err
}

// ToggleActive applies one activation click on id, persists, and
// re-renders the hosts file.
func (s *Store) ToggleActive(id string) error {
	cfg, err := s.LoadConfig()
	if err != nil {
		return err
	}
	cfg.ToggleActive(id)
	if err := s.saveConfig(cfg); err != nil {
		return err
	}
	return s.Apply()
}

// SetMultiSelect switches selection mode, persists, and re-renders.
func (s *Store) SetMultiSelect(enable bool) error {
	cfg, err := s.LoadConfig()
	if err != nil {
		return err
	}
	cfg.SetMultiSelect(enable)
	if err := s.saveConfig(cfg); err != nil {
		return err
	}
	return s.Apply()
}

// SetActive makes id active or inactive. It reports whether anything
// changed; a profile already in the wanted state is left alone.
func (s *Store) SetActive(id string, active bool) (bool, error) {
	cfg, err := s.LoadConfig()
	if err != nil {
		return false, err
	}
	i := cfg.Index(id)
	if i < 0 {
		return false, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if cfg.Profiles[i].Active == active {
		return false, nil
	}
	if err := s.ToggleActive(id); err != nil {
		return false, err
	}
	return true, nil
}

// Common returns the common config.
func (s *Store) Common() (string, error) {
	return s.dir.ReadCommon()
}

// SaveCommon overwrites the common config and re-renders.
func (s *Store) SaveCommon(content string) error {
	if err := s.dir.WriteCommon(content); err != nil {
		return err
	}
	return s.Apply()
}

// WriteCommon overwrites the common config without re-rendering.
func (s *Store) WriteCommon(content string) error {
	return s.dir.WriteCommon(content)
}

// Render returns the hosts file the current store would produce.
func (s *Store) Render() (string, error) {
	cfg, common, err := s.synthInputs()
	if err != nil {
		return "", err
	}
	return synth.Render(common, cfg.synthProfiles(), s.content), nil
}

// Apply renders the store and overwrites the system hosts file.
func (s *Store) Apply() error {
	cfg, common, err := s.synthInputs()
	if err != nil {
		return err
	}
	if _, err := synth.Apply(s.hosts, common, cfg.synthProfiles(), s.content); err != nil {
		return fmt.Errorf("applying hosts: %w", err)
	}
	return nil
}

func (s *Store) synthInputs() (*AppConfig, string, error) {
	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, "", err
	}
	common, err := s.dir.ReadCommon()
	if err != nil {
		slog.Debug("reading common config", "error", err)
		common = ""
	}
	return cfg, common, nil
}
