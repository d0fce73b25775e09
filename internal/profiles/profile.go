package profiles

import (
	"errors"
	"fmt"

	"github.com/ruminaider/hostly/internal/paths"
	"github.com/ruminaider/hostly/internal/synth"
)

var (
	// ErrDuplicateName is returned when a profile name is already taken.
	ErrDuplicateName = errors.New("profile name already exists")
	// ErrDuplicateID is returned when two profiles share an id.
	ErrDuplicateID = errors.New("duplicate profile id")
	// ErrNotFound is returned when no profile matches.
	ErrNotFound = errors.New("profile not found")
	// ErrInvalidID is returned when an id cannot name a content document.
	ErrInvalidID = paths.ErrInvalidID
)

// Metadata is the entry for one profile in config.json.
type Metadata struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// AppConfig represents <appdir>/config.json. Profiles are kept in display
// and merge order.
type AppConfig struct {
	MultiSelect bool       `json:"multi_select"`
	Profiles    []Metadata `json:"profiles"`
}

// Profile is a profile together with its content.
type Profile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Active  bool   `json:"active"`
}

// Entry is a name/content pair to upsert.
type Entry struct {
	Name    string
	Content string
}

// Clone returns a deep copy of c.
func (c AppConfig) Clone() AppConfig {
	out := AppConfig{MultiSelect: c.MultiSelect, Profiles: make([]Metadata, len(c.Profiles))}
	copy(out.Profiles, c.Profiles)
	return out
}

// Index returns the position of id, or -1.
func (c *AppConfig) Index(id string) int {
	for i, p := range c.Profiles {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// FindByName returns the profile with exactly this name.
func (c *AppConfig) FindByName(name string) (Metadata, bool) {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Metadata{}, false
}

// Add appends m. The name and id must both be unused.
func (c *AppConfig) Add(m Metadata) error {
	if _, ok := c.FindByName(m.Name); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, m.Name)
	}
	if c.Index(m.ID) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateID, m.ID)
	}
	c.Profiles = append(c.Profiles, m)
	return nil
}

// Rename changes the name of id. An unknown id is not an error; it reports
// false and leaves c unchanged.
func (c *AppConfig) Rename(id, name string) (bool, error) {
	for _, p := range c.Profiles {
		if p.Name == name && p.ID != id {
			return false, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
	}
	i := c.Index(id)
	if i < 0 {
		return false, nil
	}
	c.Profiles[i].Name = name
	return true, nil
}

// Remove drops id and returns the removed entry.
func (c *AppConfig) Remove(id string) (Metadata, bool) {
	i := c.Index(id)
	if i < 0 {
		return Metadata{}, false
	}
	m := c.Profiles[i]
	c.Profiles = append(c.Profiles[:i], c.Profiles[i+1:]...)
	return m, true
}

// ToggleActive applies one click on id.
//
// In multi-select mode only id flips. In single-select mode every profile
// is switched off and id is switched on unless it was already on, so
// clicking the active profile leaves nothing active.
func (c *AppConfig) ToggleActive(id string) {
	if c.MultiSelect {
		if i := c.Index(id); i >= 0 {
			c.Profiles[i].Active = !c.Profiles[i].Active
		}
		return
	}

	wasActive := false
	if i := c.Index(id); i >= 0 {
		wasActive = c.Profiles[i].Active
	}
	for i := range c.Profiles {
		c.Profiles[i].Active = false
	}
	if !wasActive {
		if i := c.Index(id); i >= 0 {
			c.Profiles[i].Active = true
		}
	}
}

// SetMultiSelect switches mode. Leaving multi-select keeps only the first
// active profile in stored order.
func (c *AppConfig) SetMultiSelect(enable bool) {
	c.MultiSelect = enable
	if !enable {
		c.keepFirstActive()
	}
}

func (c *AppConfig) keepFirstActive() {
	found := false
	for i := range c.Profiles {
		if !c.Profiles[i].Active {
			continue
		}
		if found {
			c.Profiles[i].Active = false
		} else {
			found = true
		}
	}
}

// Normalize repairs the single-select invariant when multi-select is off.
func (c *AppConfig) Normalize() {
	if c.Profiles == nil {
		c.Profiles = []Metadata{}
	}
	if !c.MultiSelect {
		c.keepFirstActive()
	}
}

// Validate checks that ids are usable file names and that ids and names are
// unique.
func (c *AppConfig) Validate() error {
	ids := make(map[string]bool, len(c.Profiles))
	names := make(map[string]bool, len(c.Profiles))
	for _, p := range c.Profiles {
		if !paths.ValidID(p.ID) {
			return fmt.Errorf("%w: %q", ErrInvalidID, p.ID)
		}
		if ids[p.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, p.ID)
		}
		if names[p.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, p.Name)
		}
		ids[p.ID] = true
		names[p.Name] = true
	}
	return nil
}

// ActiveNames returns the names of active profiles in stored order.
func (c *AppConfig) ActiveNames() []string {
	var names []string
	for _, p := range c.Profiles {
		if p.Active {
			names = append(names, p.Name)
		}
	}
	return names
}

func (c *AppConfig) isActive(id string) bool {
	i := c.Index(id)
	return i >= 0 && c.Profiles[i].Active
}

func (c *AppConfig) synthProfiles() []synth.Profile {
	out := make([]synth.Profile, 0, len(c.Profiles))
	for _, p := range c.Profiles {
		out = append(out, synth.Profile{ID: p.ID, Name: p.Name, Active: p.Active})
	}
	return out
}
