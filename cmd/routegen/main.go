package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zoro11031/routegen/internal/cli"
	"github.com/zoro11031/routegen/internal/ui"
	"github.com/zoro11031/routegen/pkg/version"
)

var (
	// Global flags
	configPath     string
	nonInteractive bool

	versionShort bool
)

var rootCmd = &cobra.Command{
	Use:   "routegen",
	Short: "Customer route handler generator for the invoice app",
	Long: `routegen writes the customer API route handler into the invoice app.

The handler serves GET, PUT and DELETE on /api/customers/[id], checks the
user session and forwards each request to the backend API with the session
token as bearer credential.

Commands:
- write the route file (the default when run without arguments)
- show or check the embedded handler against a file on disk
- manage the settings file
- serve the same handlers from a local Go proxy

Run without arguments to overwrite the default route file and print DONE.`,
	SilenceUsage:  true, // We handle errors manually, but silence usage on error
	SilenceErrors: true, // We format errors ourselves for consistent output
	Args:          cobra.NoArgs,
	RunE:          runWrite,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if versionShort {
			fmt.Fprintln(cmd.OutOrStdout(), version.Short())
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), version.Info())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (default ~/.routegen.conf)")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "Never prompt; use default answers")
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
	rootCmd.AddCommand(versionCmd)
}

// newContext builds the command context from the global flags
func newContext(quiet bool) *cli.Context {
	return cli.NewContext(cli.Options{
		ConfigPath:     configPath,
		NonInteractive: nonInteractive,
		Quiet:          quiet,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		ui.New().Errorf("%v", err)
		os.Exit(1)
	}
}
