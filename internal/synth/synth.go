// Package synth renders the merged hosts file from the common config and
// the active profiles.
package synth

import (
	"strings"
)

const (
	header        = "# Generated by Hostly\n\n"
	commonHeading = "### Common Config ###\n"
	sectionEnd    = "\n\n"
)

// Profile is the part of a profile the renderer needs.
type Profile struct {
	ID     string
	Name   string
	Active bool
}

// ContentFunc returns the content of a profile. Missing content is "".
type ContentFunc func(id string) string

// Writer receives the rendered hosts file.
type Writer interface {
	Write(content string) error
}

// Render builds the hosts file: a fixed header, the common section, then
// one section per active profile in the given order. It has no side effects.
func Render(common string, profiles []Profile, content ContentFunc) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString(commonHeading)
	b.WriteString(common)
	b.WriteString(sectionEnd)

	for _, p := range profiles {
		if !p.Active {
			continue
		}
		b.WriteString(SectionHeading(p.Name))
		if content != nil {
			b.WriteString(content(p.ID))
		}
		b.WriteString(sectionEnd)
	}
	return b.String()
}

// SectionHeading returns the heading line that opens a profile section.
func SectionHeading(name string) string {
	return "### Profile: " + name + " ###\n"
}

// Apply renders and hands the result to w in a single write.
func Apply(w Writer, common string, profiles []Profile, content ContentFunc) (string, error) {
	text := Render(common, profiles, content)
	if err := w.Write(text); err != nil {
		return "", err
	}
	return text, nil
}
