package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ruminaider/hostly/internal/config"
	"github.com/ruminaider/hostly/internal/hostsfile"
	"github.com/ruminaider/hostly/internal/paths"
	"github.com/ruminaider/hostly/internal/profiles"
	"github.com/ruminaider/hostly/internal/storage"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	hostsFileFlag string
	verboseFlag   bool
)

// execCtx is decided once in main from the raw arguments.
var execCtx paths.ExecutionContext = paths.Headless{}

var rootCmd = &cobra.Command{
	Use:           "hostly",
	Short:         "Switch between hosts file profiles",
	Long:          "hostly keeps named hosts profiles, activates one or several of them, and merges the active set into the system hosts file.",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(verboseFlag || os.Getenv("HOSTLY_DEBUG") != "")
	},
	RunE: runMainMenu,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hostly %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&hostsFileFlag, "hosts-file", "", "Hosts file to write instead of the system one")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(selectModeCmd)
	rootCmd.AddCommand(singleCmd)
	rootCmd.AddCommand(multiCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(closeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(importSwitchHostsCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(commonCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(settingsCmd)
}

// resolveExecutionContext treats any argument as a headless command line
// invocation; a bare invocation is the interactive shell.
func resolveExecutionContext(args []string) (paths.ExecutionContext, error) {
	if len(args) > 0 {
		return paths.Headless{}, nil
	}
	dir, err := paths.HostDataDir()
	if err != nil {
		return nil, err
	}
	return paths.Interactive{DataDir: dir}, nil
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// openStore wires the store for the current execution context.
func openStore() (*profiles.Store, *hostsfile.File, error) {
	dir, err := storage.Open(execCtx)
	if err != nil {
		return nil, nil, err
	}
	settings, err := config.Load(dir.Root)
	if err != nil {
		return nil, nil, err
	}

	override := hostsFileFlag
	if override == "" {
		override = settings.HostsFile
	}
	hosts := hostsfile.System(override)
	slog.Debug("opened store", "dir", dir.Root, "hosts", hosts.Path)

	store := profiles.NewStore(dir, hosts, profiles.WithBackupName(settings.BackupProfileName()))
	return store, hosts, nil
}

func main() {
	ctx, err := resolveExecutionContext(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	execCtx = ctx

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
