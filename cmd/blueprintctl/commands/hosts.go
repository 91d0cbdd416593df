package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/blueprintctl/cmd/blueprintctl/handlers"
)

// Hosts returns the hosts command group.
func Hosts() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hosts",
		Short: "Inspect the assignable hosts",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List hosts with their status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.HostsList(cmd.Context())
		},
	})
	return cmd
}
