package main

import (
	"fmt"
	"runtime"

	"github.com/ruminaider/hostly/internal/commands"
	"github.com/spf13/cobra"
)

var applyDryRun bool

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Rewrite the hosts file from the active profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, hosts, err := openStore()
		if err != nil {
			return err
		}

		if applyDryRun {
			out, err := store.Render()
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		}

		if err := store.Apply(); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", hosts.Path)
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report the data directory and whether the hosts file is writable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, hosts, err := openStore()
		if err != nil {
			return err
		}

		state := commands.DetectMenuState(store, hosts.Path, hosts)
		fmt.Printf("Data dir:   %s\n", store.Dir().Root)
		fmt.Printf("Hosts file: %s\n", state.HostsPath)
		fmt.Printf("Mode:       %s\n", modeLabel(state.MultiSelect))
		fmt.Printf("Profiles:   %d (%d active)\n", len(state.Profiles), len(state.Active))
		if state.Writable {
			fmt.Println("Writable:   " + activeBadge.Render("yes"))
			return nil
		}
		fmt.Println("Writable:   " + warnStyle.Render("no"))
		fmt.Println(privilegeHint(runtime.GOOS))
		return nil
	},
}

func privilegeHint(goos string) string {
	if goos == "windows" {
		return "Run hostly from an elevated (Administrator) terminal to change the hosts file."
	}
	return "Run hostly with sudo to change the hosts file."
}

func init() {
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Print the synthesized hosts file instead of writing it")
}
