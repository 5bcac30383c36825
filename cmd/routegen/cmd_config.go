package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoro11031/routegen/internal/cli"
	"github.com/zoro11031/routegen/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the routegen settings file",
	Long: `Read and change the KEY=VALUE settings file.

Keys:
  ` + strings.Join(config.KnownKeys, "\n  "),
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored settings and defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := newContext(false)
		return cli.ListSettings(ctx)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print the effective value of a setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := newContext(false)
		return cli.GetSetting(ctx, args[0])
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY [VALUE]",
	Short: "Store a setting, prompting for the value when omitted",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := newContext(false)

		var value *string
		if len(args) == 2 {
			value = &args[1]
		}
		return cli.SetSetting(ctx, args[0], value)
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset KEY",
	Short: "Remove a setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := newContext(false)
		return cli.UnsetSetting(ctx, args[0])
	},
}

func init() {
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}
