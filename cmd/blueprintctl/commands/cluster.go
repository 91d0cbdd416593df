package commands

import (
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/imamik/blueprintctl/cmd/blueprintctl/handlers"
)

// Cluster returns the cluster command group.
//
// A cluster is built in steps: "cluster build" stages a blueprint,
// "cluster assign" places hosts into its host groups and "cluster create"
// submits the result. "cluster provision" runs all three at once.
func Cluster() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Build, create and delete the cluster",
	}
	cmd.AddCommand(
		clusterBuild(),
		clusterAssign(),
		clusterPreview(),
		clusterReset(),
		clusterCreate(),
		clusterDelete(),
		clusterProvision(),
	)
	return cmd
}

func clusterBuild() *cobra.Command {
	var blueprint string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Stage a blueprint for host assignment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ClusterBuild(cmd.Context(), blueprint)
		},
	}

	cmd.Flags().StringVar(&blueprint, "blueprint", "", "Blueprint id (required)")
	_ = cmd.MarkFlagRequired("blueprint")
	return cmd
}

func clusterAssign() *cobra.Command {
	var host, group string

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign a host to a host group of the staged blueprint",
		Long: `Assign adds a host to a host group of the staged blueprint.

When --host or --hostGroup is omitted on a terminal, the missing value is
selected interactively.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ClusterAssign(cmd.Context(), host, group)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Host name")
	cmd.Flags().StringVar(&group, "hostGroup", "", "Host group name")
	_ = cmd.RegisterFlagCompletionFunc("host", completeHosts)
	return cmd
}

func completeHosts(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	configPath, _ := cmd.Flags().GetString("config")
	names := handlers.HostCompletions(cmd.Context(), handlers.Options{
		ConfigPath: configPath,
		Flags:      cmd.Flags(),
		Out:        cmd.OutOrStdout(),
		Err:        cmd.ErrOrStderr(),
	})
	names = lo.Filter(names, func(name string, _ int) bool {
		return strings.HasPrefix(name, toComplete)
	})
	return names, cobra.ShellCompDirectiveNoFileComp
}

func clusterPreview() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Show the staged host assignment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ClusterPreview(cmd.Context())
		},
	}
}

func clusterReset() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Drop the staged blueprint and host assignment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ClusterReset(cmd.Context())
		},
	}
}

func clusterCreate() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create the cluster from the staged blueprint",
		Long: `Create submits the staged blueprint and host assignment.

If the server rejects the request, whatever it may have created is deleted
again and the host groups are reset so the assignment can be redone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ClusterCreate(cmd.Context())
		},
	}
}

func clusterDelete() *cobra.Command {
	var archive bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the connected cluster",
		Long: `Delete removes the connected cluster from the Ambari server.

With --archive the cluster's blueprint is exported and uploaded to the
configured S3 bucket first. The cluster is kept if the upload fails.

WARNING: This operation is irreversible.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ClusterDelete(cmd.Context(), archive)
		},
	}

	cmd.Flags().BoolVar(&archive, "archive", false, "Archive the cluster blueprint to S3 before deleting")
	return cmd
}

func clusterProvision() *cobra.Command {
	var blueprint string
	var assignments []string

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Build, assign and create in one step",
		Example: `  blueprintctl cluster provision --blueprint single-node \
    --assign node1.example.com=host_group_1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ClusterProvision(cmd.Context(), blueprint, assignments)
		},
	}

	cmd.Flags().StringVar(&blueprint, "blueprint", "", "Blueprint id (required)")
	cmd.Flags().StringArrayVar(&assignments, "assign", nil, "host=group assignment, repeatable")
	_ = cmd.MarkFlagRequired("blueprint")
	return cmd
}
