// Package backup exports and restores the whole store as one JSON document.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ruminaider/hostly/internal/profiles"
)

// Version is the schema written by Export. Version 1 documents carry
// profile bodies in ProfilesContent instead of Profiles.
const Version = 2

// ErrMalformedBackup is returned when a backup document cannot be used.
var ErrMalformedBackup = errors.New("malformed backup")

// Document is a full backup.
type Document struct {
	Version   int                 `json:"version"`
	Timestamp string              `json:"timestamp"`
	Config    *profiles.AppConfig `json:"config"`
	Profiles  []profiles.Profile  `json:"profiles"`
	// ProfilesContent maps id to content. Read-only compatibility.
	ProfilesContent map[string]string `json:"profiles_content,omitempty"`
	CommonContent   *string           `json:"common_content,omitempty"`
}

// Export captures the store.
func Export(s *profiles.Store) (*Document, error) {
	return exportAt(s, time.Now())
}

func exportAt(s *profiles.Store, now time.Time) (*Document, error) {
	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}
	list, err := s.List()
	if err != nil {
		return nil, err
	}
	common, err := s.Common()
	if err != nil {
		return nil, err
	}
	return &Document{
		Version:       Version,
		Timestamp:     now.UTC().Format(time.RFC3339),
		Config:        cfg,
		Profiles:      list,
		CommonContent: &common,
	}, nil
}

// Marshal encodes doc as pretty-printed JSON.
func Marshal(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling backup: %w", err)
	}
	return append(data, '\n'), nil
}

// Parse decodes and validates a backup document of either schema. Profile
// ids become file names, so an id that is empty or carries a path separator
// or ".." makes the document malformed.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}
	if doc.Config == nil {
		return nil, fmt.Errorf("%w: missing config", ErrMalformedBackup)
	}
	if err := doc.Config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}
	return &doc, nil
}

// Contents returns content by id, from Profiles when present and from the
// legacy ProfilesContent map otherwise.
func (d *Document) Contents() map[string]string {
	out := make(map[string]string)
	if d.Profiles != nil {
		for _, p := range d.Profiles {
			out[p.ID] = p.Content
		}
		return out
	}
	for id, c := range d.ProfilesContent {
		out[id] = c
	}
	return out
}

// Restore replaces the store with doc. Profiles missing from the backup are
// gone afterwards. Content for ids the backup does not carry is written
// empty. The hosts file is re-rendered once at the end.
func Restore(s *profiles.Store, doc *Document) error {
	if doc == nil || doc.Config == nil {
		return fmt.Errorf("%w: missing config", ErrMalformedBackup)
	}
	if err := s.ReplaceConfig(*doc.Config); err != nil {
		if errors.Is(err, profiles.ErrDuplicateName) || errors.Is(err, profiles.ErrDuplicateID) || errors.Is(err, profiles.ErrInvalidID) {
			return fmt.Errorf("%w: %v", ErrMalformedBackup, err)
		}
		return err
	}

	contents := doc.Contents()
	for _, p := range doc.Config.Profiles {
		if err := s.WriteContent(p.ID, contents[p.ID]); err != nil {
			return err
		}
	}

	if doc.CommonContent != nil {
		if err := s.WriteCommon(*doc.CommonContent); err != nil {
			return err
		}
	}
	return s.Apply()
}

// Import parses data and restores it into s.
func Import(s *profiles.Store, data []byte) error {
	doc, err := Parse(data)
	if err != nil {
		return err
	}
	return Restore(s, doc)
}
