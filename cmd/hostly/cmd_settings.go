package main

import (
	"fmt"

	"github.com/ruminaider/hostly/internal/config"
	"github.com/ruminaider/hostly/internal/storage"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show hostly settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := storage.Open(execCtx)
		if err != nil {
			return err
		}
		s, err := config.Load(dir.Root)
		if err != nil {
			return err
		}
		data, err := config.Marshal(s)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:       "set <key> [value]",
	Short:     "Change a setting; omit the value to clear it",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: config.Keys,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := storage.Open(execCtx)
		if err != nil {
			return err
		}
		s, err := config.Load(dir.Root)
		if err != nil {
			return err
		}

		var value string
		if len(args) == 2 {
			value = args[1]
		}
		if err := s.Set(args[0], value); err != nil {
			return err
		}
		if err := config.Save(dir.Root, s); err != nil {
			return err
		}
		fmt.Printf("Set %s.\n", args[0])
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
}
