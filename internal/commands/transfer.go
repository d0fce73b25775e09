package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/ruminaider/hostly/internal/backup"
	"github.com/ruminaider/hostly/internal/profiles"
	"github.com/ruminaider/hostly/internal/switchhosts"
)

// ExportKind says what Export wrote.
type ExportKind int

const (
	ExportedProfile ExportKind = iota
	ExportedBackup
)

// Export writes the content of the profile called name to target, or a full
// backup when name is empty.
func Export(s *profiles.Store, name, target string) (ExportKind, error) {
	if name != "" {
		id, ok, err := s.FindIDByName(name)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, fmt.Errorf("%w: %q", profiles.ErrNotFound, name)
		}
		p, err := s.Get(id)
		if err != nil {
			return 0, err
		}
		if err := os.WriteFile(target, []byte(p.Content), 0644); err != nil {
			return 0, fmt.Errorf("writing %s: %w", target, err)
		}
		return ExportedProfile, nil
	}

	doc, err := backup.Export(s)
	if err != nil {
		return 0, fmt.Errorf("exporting backup: %w", err)
	}
	data, err := backup.Marshal(doc)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", target, err)
	}
	return ExportedBackup, nil
}

// ImportKind says how Import interpreted the file.
type ImportKind int

const (
	ImportedProfile ImportKind = iota
	ImportedBackup
	ImportedCommon
)

// ImportOptions configures Import.
type ImportOptions struct {
	// Name imports the file as the content of this profile.
	Name string
	// Target is the file to read.
	Target string
	// Open lists profiles to activate afterwards. A non-nil empty slice
	// means the imported profile itself.
	Open []string
	// Multi enables multi-select before opening.
	Multi bool
}

// ImportResult describes what Import did.
type ImportResult struct {
	Kind         ImportKind
	EnabledMulti bool
	Opened       []Outcome
}

// Import reads opts.Target and stores it. With a name the file becomes that
// profile's content. Without one, a .json file is restored as a full backup
// and anything else replaces the common config. Listed profiles are then
// opened, enabling multi-select when more than one is listed.
func Import(s *profiles.Store, opts ImportOptions) (*ImportResult, error) {
	data, err := os.ReadFile(opts.Target)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", opts.Target, err)
	}

	var toOpen []string
	if opts.Open != nil {
		if len(opts.Open) == 0 && opts.Name != "" {
			toOpen = []string{opts.Name}
		} else {
			toOpen = opts.Open
		}
	}

	result := &ImportResult{}
	switch {
	case opts.Name != "":
		if _, err := s.Upsert(opts.Name, string(data)); err != nil {
			return nil, fmt.Errorf("importing profile %q: %w", opts.Name, err)
		}
		result.Kind = ImportedProfile
	case strings.HasSuffix(strings.ToLower(opts.Target), ".json"):
		if err := backup.Import(s, data); err != nil {
			return nil, fmt.Errorf("importing backup: %w", err)
		}
		result.Kind = ImportedBackup
	default:
		if err := s.SaveCommon(string(data)); err != nil {
			return nil, fmt.Errorf("saving common config: %w", err)
		}
		result.Kind = ImportedCommon
	}

	if len(toOpen) > 1 || opts.Multi {
		cfg, err := s.LoadConfig()
		if err != nil {
			return nil, err
		}
		if !cfg.MultiSelect {
			if err := s.SetMultiSelect(true); err != nil {
				return nil, fmt.Errorf("enabling multi-select: %w", err)
			}
			result.EnabledMulti = true
		}
	}

	for _, name := range toOpen {
		result.Opened = append(result.Opened, setActive(s, name, true))
	}
	return result, nil
}

// ImportSwitchHosts imports a SwitchHosts export file and returns the
// number of profiles written.
func ImportSwitchHosts(s *profiles.Store, target string) (int, error) {
	data, err := os.ReadFile(target)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", target, err)
	}
	n, err := switchhosts.Import(s, data)
	if err != nil {
		return n, fmt.Errorf("importing SwitchHosts data: %w", err)
	}
	return n, nil
}
