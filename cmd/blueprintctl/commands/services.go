package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/blueprintctl/cmd/blueprintctl/handlers"
)

// Services returns the services command group of the connected cluster.
func Services() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "Inspect, start and stop the services of the connected cluster",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List services with their state",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return handlers.ServicesList(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "components",
			Short: "List the components of every service with their state",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return handlers.ServicesComponents(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "start",
			Short: "Start all services and follow the progress",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return handlers.ServicesStart(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "stop",
			Short: "Stop all services and follow the progress",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return handlers.ServicesStop(cmd.Context())
			},
		},
	)
	return cmd
}
