package main

import (
	"fmt"
	"os"

	"github.com/ruminaider/hostly/internal/profiles"
	"github.com/spf13/cobra"
)

var createFrom string

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an inactive profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		content := profiles.NewEnvironmentContent
		if createFrom != "" {
			data, err := os.ReadFile(createFrom)
			if err != nil {
				return fmt.Errorf("reading %s: %w", createFrom, err)
			}
			content = string(data)
		}

		if _, err := store.Create(args[0], content); err != nil {
			return err
		}
		fmt.Printf("Created profile '%s'.\n", args[0])
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}
		id, err := lookupID(store, args[0])
		if err != nil {
			return err
		}
		if err := store.Rename(id, args[1]); err != nil {
			return err
		}
		fmt.Printf("Renamed '%s' to '%s'.\n", args[0], args[1])
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <names...>",
	Short: "Delete profiles",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		failed := false
		for _, name := range args {
			id, err := lookupID(store, name)
			if err == nil {
				err = store.Delete(id)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
				failed = true
				continue
			}
			fmt.Printf("Deleted '%s'.\n", name)
		}
		if failed {
			return fmt.Errorf("some profiles could not be deleted")
		}
		return nil
	},
}

func lookupID(store *profiles.Store, name string) (string, error) {
	id, ok, err := store.FindIDByName(name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("profile '%s' not found", name)
	}
	return id, nil
}

func init() {
	createCmd.Flags().StringVar(&createFrom, "from", "", "Read the initial content from a file")
}
