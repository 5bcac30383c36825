package main

import (
	"github.com/spf13/cobra"

	"github.com/zoro11031/routegen/internal/cli"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the embedded route handler",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := newContext(true)
		return cli.RunShow(ctx)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
