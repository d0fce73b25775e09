package main

import (
	"fmt"
	"os"

	"github.com/ruminaider/hostly/internal/commands"
	"github.com/spf13/cobra"
)

var openMulti bool

var openCmd = &cobra.Command{
	Use:   "open <names...>",
	Short: "Activate profiles by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		result, err := commands.Open(store, args, openMulti)
		if err != nil {
			return err
		}
		if result.EnabledMulti {
			fmt.Println("Multi selection mode enabled.")
		}
		if result.SingleMode {
			fmt.Fprintln(os.Stderr, warnStyle.Render(fmt.Sprintf("Warning: single selection mode is active. Only the first profile '%s' will be activated.", args[0])))
			fmt.Fprintln(os.Stderr, "Use --multi to enable multi selection mode automatically.")
		}
		printOutcomes(result.Outcomes)
		return outcomeError(result)
	},
}

var closeCmd = &cobra.Command{
	Use:   "close <names...>",
	Short: "Deactivate profiles by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		result, err := commands.Close(store, args)
		if err != nil {
			return err
		}
		printOutcomes(result.Outcomes)
		return outcomeError(result)
	},
}

func printOutcomes(outcomes []commands.Outcome) {
	for _, o := range outcomes {
		switch o.Status {
		case commands.StatusOpened:
			fmt.Printf("Opened '%s'\n", o.Name)
		case commands.StatusClosed:
			fmt.Printf("Closed '%s'\n", o.Name)
		case commands.StatusAlreadyActive:
			fmt.Printf("'%s' is already active.\n", o.Name)
		case commands.StatusAlreadyClosed:
			fmt.Printf("'%s' is already closed.\n", o.Name)
		case commands.StatusSkipped:
			fmt.Printf("Skipped '%s' (single selection mode)\n", o.Name)
		case commands.StatusNotFound:
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Profile '%s' not found.", o.Name)))
		case commands.StatusFailed:
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Failed on '%s': %v", o.Name, o.Err)))
		}
	}
}

func outcomeError(r *commands.ActivateResult) error {
	if r.Failed() {
		return fmt.Errorf("some profiles could not be updated")
	}
	return nil
}

func init() {
	openCmd.Flags().BoolVarP(&openMulti, "multi", "m", false, "Enable multi selection mode before opening")
}
