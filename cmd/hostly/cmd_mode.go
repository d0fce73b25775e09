package main

import (
	"fmt"

	"github.com/ruminaider/hostly/internal/commands"
	"github.com/ruminaider/hostly/internal/profiles"
	"github.com/spf13/cobra"
)

var selectModeCmd = &cobra.Command{
	Use:       "select-mode {single|multi}",
	Short:     "Choose between single and multi selection",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"single", "multi"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return setMode(args[0])
	},
}

var singleCmd = &cobra.Command{
	Use:   "single",
	Short: "Enable single selection mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setMode("single")
	},
}

var multiCmd = &cobra.Command{
	Use:   "multi",
	Short: "Enable multi selection mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setMode("multi")
	},
}

func setMode(mode string) error {
	store, _, err := openStore()
	if err != nil {
		return err
	}
	return setModeOn(store, mode)
}

func setModeOn(store *profiles.Store, mode string) error {
	if err := commands.SelectMode(store, mode); err != nil {
		return fmt.Errorf("setting %s mode: %w", mode, err)
	}
	if mode == "multi" {
		fmt.Println("Multi selection mode enabled.")
	} else {
		fmt.Println("Single selection mode enabled.")
	}
	return nil
}
