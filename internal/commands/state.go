package commands

import (
	"github.com/ruminaider/hostly/internal/profiles"
)

// MenuState holds the detected state used to build the interactive menu.
type MenuState struct {
	MultiSelect bool
	Profiles    []profiles.Metadata
	Active      []string
	HostsPath   string
	Writable    bool
}

// Probe reports whether the hosts file can be written.
type Probe interface {
	Writable() bool
}

// DetectMenuState loads the store for menu rendering. Unlike the other
// commands it never fails: unreadable state shows up as an empty menu.
func DetectMenuState(s *profiles.Store, hostsPath string, probe Probe) MenuState {
	state := MenuState{HostsPath: hostsPath}
	if probe != nil {
		state.Writable = probe.Writable()
	}

	cfg, err := s.LoadConfig()
	if err != nil {
		return state
	}
	state.MultiSelect = cfg.MultiSelect
	state.Profiles = cfg.Profiles
	state.Active = cfg.ActiveNames()
	return state
}
