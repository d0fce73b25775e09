package commands

import (
	"errors"
	"fmt"

	"github.com/ruminaider/hostly/internal/profiles"
)

// Status is what happened to one named profile.
type Status int

const (
	StatusOpened Status = iota
	StatusClosed
	StatusAlreadyActive
	StatusAlreadyClosed
	StatusSkipped
	StatusNotFound
	StatusFailed
)

// Outcome is the result for one named profile.
type Outcome struct {
	Name   string
	Status Status
	Err    error
}

// ActivateResult collects the outcome of Open or Close.
type ActivateResult struct {
	// EnabledMulti is set when Open switched the store to multi-select.
	EnabledMulti bool
	// SingleMode is set when Open received several names while
	// multi-select was off; only the first one is opened.
	SingleMode bool
	Outcomes   []Outcome
}

// SelectMode switches selection mode. mode is "single" or "multi".
func SelectMode(s *profiles.Store, mode string) error {
	switch mode {
	case "single":
		return s.SetMultiSelect(false)
	case "multi":
		return s.SetMultiSelect(true)
	default:
		return fmt.Errorf("unknown selection mode %q (want single or multi)", mode)
	}
}

// Open activates profiles by name. With multi set, multi-select is enabled
// first. In single-select mode only the first name is opened and the rest
// are reported as skipped. A failure on one name does not stop the others.
func Open(s *profiles.Store, names []string, multi bool) (*ActivateResult, error) {
	result := &ActivateResult{}

	if multi {
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

	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.MultiSelect && len(names) > 1 {
		result.SingleMode = true
	}

	for i, name := range names {
		if result.SingleMode && i > 0 {
			result.Outcomes = append(result.Outcomes, Outcome{Name: name, Status: StatusSkipped})
			continue
		}
		result.Outcomes = append(result.Outcomes, setActive(s, name, true))
	}
	return result, nil
}

// Close deactivates profiles by name.
func Close(s *profiles.Store, names []string) (*ActivateResult, error) {
	if _, err := s.LoadConfig(); err != nil {
		return nil, err
	}
	result := &ActivateResult{}
	for _, name := range names {
		result.Outcomes = append(result.Outcomes, setActive(s, name, false))
	}
	return result, nil
}

func setActive(s *profiles.Store, name string, active bool) Outcome {
	id, ok, err := s.FindIDByName(name)
	if err != nil {
		return Outcome{Name: name, Status: StatusFailed, Err: err}
	}
	if !ok {
		return Outcome{Name: name, Status: StatusNotFound}
	}

	changed, err := s.SetActive(id, active)
	switch {
	case errors.Is(err, profiles.ErrNotFound):
		return Outcome{Name: name, Status: StatusNotFound}
	case err != nil:
		return Outcome{Name: name, Status: StatusFailed, Err: err}
	case !changed && active:
		return Outcome{Name: name, Status: StatusAlreadyActive}
	case !changed:
		return Outcome{Name: name, Status: StatusAlreadyClosed}
	case active:
		return Outcome{Name: name, Status: StatusOpened}
	default:
		return Outcome{Name: name, Status: StatusClosed}
	}
}

// Failed reports whether any outcome is a not-found or a failure.
func (r *ActivateResult) Failed() bool {
	for _, o := range r.Outcomes {
		if o.Status == StatusNotFound || o.Status == StatusFailed {
			return true
		}
	}
	return false
}
