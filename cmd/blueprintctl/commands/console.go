package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/imamik/blueprintctl/cmd/blueprintctl/handlers"
)

// Shell returns the shell command.
//
// Each line typed into the shell is parsed by a fresh command tree that
// shares the session of the shell, so a blueprint staged with
// "cluster build" stays staged for the next line.
func Shell() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			return handlers.Shell(cmd.Context(), cmd.InOrStdin(), func(ctx context.Context, args []string) error {
				line := Root()
				line.SetArgs(args)
				line.SetOut(out)
				line.SetErr(errOut)
				return line.ExecuteContext(ctx)
			})
		},
	}
}

// Hint returns the hint command.
func Hint() *cobra.Command {
	return &cobra.Command{
		Use:   "hint",
		Short: "Suggest the next step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Hint(cmd.Context())
		},
	}
}

// Debug returns the debug command group.
func Debug() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Toggle logging of Ambari API calls",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "on",
			Short: "Log every Ambari API call",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return handlers.Debug(cmd.Context(), true)
			},
		},
		&cobra.Command{
			Use:   "off",
			Short: "Stop logging Ambari API calls",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return handlers.Debug(cmd.Context(), false)
			},
		},
	)
	return cmd
}
