package main

import (
	"fmt"
	"strings"

	"github.com/ruminaider/hostly/internal/commands"
	"github.com/spf13/cobra"
)

var (
	exportTarget string

	importTarget string
	importOpen   []string
	importMulti  bool

	switchHostsTarget string
)

var exportCmd = &cobra.Command{
	Use:   "export [name]",
	Short: "Export a profile, or a full backup when no name is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		var name string
		if len(args) == 1 {
			name = args[0]
		}
		kind, err := commands.Export(store, name, exportTarget)
		if err != nil {
			return err
		}
		if kind == commands.ExportedProfile {
			fmt.Printf("Exported '%s' to '%s'\n", name, exportTarget)
		} else {
			fmt.Printf("Full backup exported to '%s'\n", exportTarget)
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [name]",
	Short: "Import a profile, a full backup (.json) or the common config",
	Long: `Import reads --target and stores it.

With a name, the file becomes the content of that profile (created if needed).
Without a name, a .json file is restored as a full backup and any other file
replaces the common config.

--open=a,b activates the listed profiles afterwards (repeat the flag or use
commas). A bare --open activates the imported profile. Opening more than one
profile enables multi selection mode.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		opts := commands.ImportOptions{Target: importTarget, Multi: importMulti}
		if len(args) == 1 {
			opts.Name = args[0]
		}
		if cmd.Flags().Changed("open") {
			opts.Open = openNames(importOpen)
		}

		result, err := commands.Import(store, opts)
		if err != nil {
			return err
		}

		switch result.Kind {
		case commands.ImportedProfile:
			fmt.Printf("Imported profile '%s'.\n", opts.Name)
		case commands.ImportedBackup:
			fmt.Printf("Global backup imported from '%s'.\n", importTarget)
		case commands.ImportedCommon:
			fmt.Printf("Common config updated from '%s'.\n", importTarget)
		}
		if result.EnabledMulti {
			fmt.Println("Multi selection mode enabled.")
		}
		printOutcomes(result.Opened)
		return nil
	},
}

var importSwitchHostsCmd = &cobra.Command{
	Use:   "import-switchhosts",
	Short: "Import profiles from a SwitchHosts export",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}
		n, err := commands.ImportSwitchHosts(store, switchHostsTarget)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d profile(s) from '%s'.\n", n, switchHostsTarget)
		return nil
	},
}

// openNames drops the blank placeholder a bare --open leaves behind. The
// result is never nil so a bare flag still means "open the imported one".
func openNames(values []string) []string {
	names := []string{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			names = append(names, v)
		}
	}
	return names
}

func init() {
	exportCmd.Flags().StringVarP(&exportTarget, "target", "t", "", "Output file path")
	exportCmd.MarkFlagRequired("target")

	importCmd.Flags().StringVarP(&importTarget, "target", "t", "", "Input file path")
	importCmd.MarkFlagRequired("target")
	importCmd.Flags().StringSliceVar(&importOpen, "open", nil, "Profiles to activate after import (empty for the imported one)")
	importCmd.Flags().Lookup("open").NoOptDefVal = " "
	importCmd.Flags().BoolVarP(&importMulti, "multi", "m", false, "Enable multi selection mode before opening")

	importSwitchHostsCmd.Flags().StringVarP(&switchHostsTarget, "target", "t", "", "SwitchHosts export file")
	importSwitchHostsCmd.MarkFlagRequired("target")
}
