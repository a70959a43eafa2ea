package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the fieldguide CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "fieldguide",
		Short:   "Species and cultural heritage lookup CLI",
		Version: a.version,
		Long: `Fieldguide looks a species or cultural heritage entity up across
several public data sources, reconciles the results into a single
record, and explains it for a chosen audience.

Data comes from the GBIF species API, the iNaturalist taxa API, and
the UNESCO intangible cultural heritage dataset. Explanations are
generated with the Gemini API when a GEMINI_API_KEY is configured.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (shortcut for debug logging)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output (shortcut for warn logging)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().Bool("json", false, "print machine-readable JSON output")

	rootCmd.SetVersionTemplate("fieldguide {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// Update config from parsed flags. These flags are defined as persistent
	// flags above, so errors indicate programming errors.
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	jsonOut := mustGetBool(cmd, "json")

	a.config.UpdateFromFlags(verbose, quiet, noColor, jsonOut)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(a.NewLookupCommand())
	rootCmd.AddCommand(a.NewRolesCommand())
	rootCmd.AddCommand(a.NewVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't
// exist. This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
