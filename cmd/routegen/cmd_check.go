package main

import (
	"github.com/spf13/cobra"

	"github.com/zoro11031/routegen/internal/cli"
)

var checkTarget string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether the route file matches the embedded handler",
	Long: `Compare the route file with the embedded handler.

Exits non-zero when the file is missing or differs, and reports the first
line that differs.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkTarget, "target", "t", "", "Route file to check")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := newContext(false)
	return cli.RunCheck(ctx, checkTarget)
}
