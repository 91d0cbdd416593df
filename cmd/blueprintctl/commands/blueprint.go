package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/blueprintctl/cmd/blueprintctl/handlers"
)

// Blueprint returns the blueprint command group.
func Blueprint() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blueprint",
		Short: "Inspect the blueprints registered on the server",
	}
	cmd.AddCommand(blueprintList(), blueprintShow())
	return cmd
}

func blueprintList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List blueprints with their stack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.BlueprintList(cmd.Context())
		},
	}
}

func blueprintShow() *cobra.Command {
	var id, output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the host groups and components of a blueprint",
		Example: `  blueprintctl blueprint show --id single-node
  blueprintctl blueprint show --id single-node -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.BlueprintShow(cmd.Context(), id, output)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Blueprint id (required)")
	cmd.Flags().StringVarP(&output, "output", "o", handlers.OutputTable, "Output format: table or yaml")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(
		[]string{handlers.OutputTable, handlers.OutputYAML}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
