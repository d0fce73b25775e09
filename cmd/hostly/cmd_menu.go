package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/ruminaider/hostly/internal/commands"
	"github.com/ruminaider/hostly/internal/profiles"
	"github.com/spf13/cobra"
)

// Menu action IDs.
const (
	actionToggle = "toggle"
	actionMode   = "mode"
	actionCreate = "create"
	actionEdit   = "edit"
	actionRename = "rename"
	actionDelete = "delete"
	actionCommon = "common"
	actionApply  = "apply"
	actionQuit   = "quit"
)

func allActionIDs() []string {
	return []string{actionToggle, actionMode, actionCreate, actionEdit, actionRename, actionDelete, actionCommon, actionApply, actionQuit}
}

func runMainMenu(cmd *cobra.Command, args []string) error {
	// TTY guard: fall back to list when stdin is not a terminal
	// (piping, CI, scripts, etc.)
	if !term.IsTerminal(os.Stdin.Fd()) {
		return listCmd.RunE(cmd, args)
	}

	store, hosts, err := openStore()
	if err != nil {
		return err
	}

	for {
		state := commands.DetectMenuState(store, hosts.Path, hosts)
		printMenuHeader(state)

		var action string
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("What would you like to do?").
					Options(menuOptions(state)...).
					Value(&action),
			),
		).Run()
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if action == actionQuit {
			return nil
		}

		if err := dispatchAction(store, state, action); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}
			fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		}
	}
}

func printMenuHeader(state commands.MenuState) {
	fmt.Println()
	fmt.Printf("hostly %s  %s\n", version, modeLabel(state.MultiSelect))
	if !state.Writable {
		fmt.Println(warnStyle.Render(fmt.Sprintf("%s is not writable; changes are saved but not applied.", state.HostsPath)))
	}
	for _, p := range state.Profiles {
		fmt.Println("  " + profileLine(p.Name, p.Active))
	}
	fmt.Println()
}

func menuOptions(state commands.MenuState) []huh.Option[string] {
	modeTarget := "multi"
	if state.MultiSelect {
		modeTarget = "single"
	}
	options := []huh.Option[string]{}
	if len(state.Profiles) > 0 {
		options = append(options, huh.NewOption("Choose active profiles", actionToggle))
	}
	options = append(options,
		huh.NewOption("Switch to "+modeTarget+" selection", actionMode),
		huh.NewOption("Create profile", actionCreate),
	)
	if len(state.Profiles) > 0 {
		options = append(options,
			huh.NewOption("Edit profile", actionEdit),
			huh.NewOption("Rename profile", actionRename),
			huh.NewOption("Delete profile", actionDelete),
		)
	}
	options = append(options,
		huh.NewOption("Edit common config", actionCommon),
		huh.NewOption("Apply to hosts file", actionApply),
		huh.NewOption("Quit", actionQuit),
	)
	return options
}

func dispatchAction(store *profiles.Store, state commands.MenuState, action string) error {
	switch action {
	case actionToggle:
		return menuToggle(store, state)
	case actionMode:
		mode := "multi"
		if state.MultiSelect {
			mode = "single"
		}
		return setModeOn(store, mode)
	case actionCreate:
		return menuCreate(store)
	case actionEdit:
		return menuEdit(store, state)
	case actionRename:
		return menuRename(store, state)
	case actionDelete:
		return menuDelete(store, state)
	case actionCommon:
		return menuCommon(store)
	case actionApply:
		return store.Apply()
	case actionQuit:
		return nil
	default:
		return fmt.Errorf("unknown action: %s", action)
	}
}

func profileOptions(metas []profiles.Metadata, preselect bool) []huh.Option[string] {
	var options []huh.Option[string]
	for _, m := range metas {
		options = append(options, huh.NewOption(m.Name, m.ID).Selected(preselect && m.Active))
	}
	return options
}

func pickProfile(state commands.MenuState, title string) (string, error) {
	var id string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(profileOptions(state.Profiles, false)...).
				Value(&id),
		),
	).Run()
	return id, err
}

func menuToggle(store *profiles.Store, state commands.MenuState) error {
	if !state.MultiSelect {
		id, err := pickProfile(state, "Toggle which profile?")
		if err != nil {
			return err
		}
		return store.ToggleActive(id)
	}

	var selected []string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Active profiles:").
				Description("Space to toggle, Enter to confirm").
				Options(profileOptions(state.Profiles, true)...).
				Value(&selected),
		),
	).Run()
	if err != nil {
		return err
	}

	want := make(map[string]bool, len(selected))
	for _, id := range selected {
		want[id] = true
	}
	for _, p := range state.Profiles {
		if p.Active == want[p.ID] {
			continue
		}
		if _, err := store.SetActive(p.ID, want[p.ID]); err != nil {
			return err
		}
	}
	return nil
}

func menuCreate(store *profiles.Store) error {
	var name string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Profile name").
				Validate(requireName).
				Value(&name),
		),
	).Run()
	if err != nil {
		return err
	}
	_, err = store.Create(name, profiles.NewEnvironmentContent)
	return err
}

func menuEdit(store *profiles.Store, state commands.MenuState) error {
	id, err := pickProfile(state, "Edit which profile?")
	if err != nil {
		return err
	}
	p, err := store.Get(id)
	if err != nil {
		return err
	}

	content := p.Content
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(p.Name).
				Lines(15).
				Value(&content),
		),
	).Run()
	if err != nil {
		return err
	}
	return store.SaveContent(id, content)
}

func menuRename(store *profiles.Store, state commands.MenuState) error {
	id, err := pickProfile(state, "Rename which profile?")
	if err != nil {
		return err
	}
	var name string
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New name").
				Validate(requireName).
				Value(&name),
		),
	).Run()
	if err != nil {
		return err
	}
	return store.Rename(id, name)
}

func menuDelete(store *profiles.Store, state commands.MenuState) error {
	id, err := pickProfile(state, "Delete which profile?")
	if err != nil {
		return err
	}
	var confirm bool
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete this profile?").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirm),
		),
	).Run()
	if err != nil || !confirm {
		return err
	}
	return store.Delete(id)
}

func menuCommon(store *profiles.Store) error {
	common, err := store.Common()
	if err != nil {
		return err
	}
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Common config").
				Lines(15).
				Value(&common),
		),
	).Run()
	if err != nil {
		return err
	}
	return store.SaveCommon(common)
}

func requireName(s string) error {
	if s == "" {
		return errors.New("name cannot be empty")
	}
	return nil
}
