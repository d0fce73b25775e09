package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var commonSet string

var commonCmd = &cobra.Command{
	Use:   "common",
	Short: "Show or replace the common config",
	Long:  "Prints the common config that precedes every active profile. With --set, replaces it with the content of a file and rewrites the hosts file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		if commonSet == "" {
			common, err := store.Common()
			if err != nil {
				return err
			}
			fmt.Print(common)
			return nil
		}

		data, err := os.ReadFile(commonSet)
		if err != nil {
			return fmt.Errorf("reading %s: %w", commonSet, err)
		}
		if err := store.SaveCommon(string(data)); err != nil {
			return err
		}
		fmt.Println("Common config updated.")
		return nil
	},
}

func init() {
	commonCmd.Flags().StringVar(&commonSet, "set", "", "Replace the common config with the content of this file")
}
