package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/blueprintctl/cmd/blueprintctl/handlers"
)

// Config returns the config command group.
func Config() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage the configuration file",
		Annotations: withoutSession(),
	}
	cmd.AddCommand(configInit())
	return cmd
}

func configInit() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Init writes a configuration file with default values.

The file is written to --config, or ~/.blueprintctl.yaml when unset. An
existing file is only replaced with --force or after confirmation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			return handlers.ConfigInit(cmd.Context(), cmd.OutOrStdout(), path, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}
