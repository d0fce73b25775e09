package main

import (
	"fmt"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
	"github.com/ruminaider/hostly/internal/profiles"
)

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

var (
	colorGreen    = lipgloss.Color(flavor.Green().Hex)
	colorRed      = lipgloss.Color(flavor.Red().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
)

var (
	activeBadge   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	inactiveBadge = lipgloss.NewStyle().Foreground(colorOverlay0)
	modeStyle     = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(colorYellow)
	errorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// profileLine renders "name [ACTIVE]" or "name [OFF]".
func profileLine(name string, active bool) string {
	if active {
		return fmt.Sprintf("%s [%s]", name, activeBadge.Render("ACTIVE"))
	}
	return fmt.Sprintf("%s [%s]", name, inactiveBadge.Render("OFF"))
}

func modeLabel(multi bool) string {
	if multi {
		return modeStyle.Render("multi-select")
	}
	return modeStyle.Render("single-select")
}

func printProfiles(cfg *profiles.AppConfig) {
	fmt.Printf("Mode: %s\n", modeLabel(cfg.MultiSelect))
	for _, p := range cfg.Profiles {
		fmt.Println(profileLine(p.Name, p.Active))
	}
}
