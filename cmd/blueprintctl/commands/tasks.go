package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/blueprintctl/cmd/blueprintctl/handlers"
)

// Tasks returns the tasks command.
func Tasks() *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the tasks of a request of the connected cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Tasks(cmd.Context(), id)
		},
	}

	cmd.Flags().IntVar(&id, "id", 1, "Request id")
	return cmd
}
