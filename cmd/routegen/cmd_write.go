package main

import (
	"github.com/spf13/cobra"

	"github.com/zoro11031/routegen/internal/cli"
)

var (
	writeTarget  string
	writeConfirm bool
	writeQuiet   bool
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Overwrite the customer route file",
	Long: `Write the embedded customer route handler to the target file.

The file is truncated and replaced. Its directory must already exist.
DONE is printed to stdout once the file has been written.

Target resolution:
  --target flag, then ROUTE_TARGET from the settings file, then
  invoice-app/app/api/customers/[id]/route.ts`,
	Args: cobra.NoArgs,
	RunE: runWrite,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, writeCmd} {
		c.Flags().StringVarP(&writeTarget, "target", "t", "", "Route file to overwrite")
		c.Flags().BoolVar(&writeConfirm, "confirm", false, "Ask before replacing an existing file")
		c.Flags().BoolVarP(&writeQuiet, "quiet", "q", false, "Only print warnings, errors and the DONE marker")
	}

	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	ctx := newContext(writeQuiet)
	return cli.RunWrite(ctx, writeTarget, writeConfirm)
}
