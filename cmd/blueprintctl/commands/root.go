// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imamik/blueprintctl/cmd/blueprintctl/handlers"
)

// noSession marks commands that run without connecting to Ambari.
const noSession = "blueprintctl/no-session"

// Root returns the root command for the blueprintctl CLI.
//
// Every subcommand except version, completion and config init first
// bootstraps the console session, which loads the configuration, connects
// to the Ambari server and checks that the command is available in the
// current session state.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blueprintctl",
		Short: "Provision Ambari clusters from blueprints",
		Long: `blueprintctl is an operator console for Ambari.

Select a blueprint, assign hosts to its host groups and create the cluster.
A failed create is rolled back before you can retry. Run "blueprintctl shell"
for an interactive session that keeps the staged assignment between commands.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: bootstrap,
	}

	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to the configuration file (default ~/.blueprintctl.yaml)")
	flags.String("server", "", "Ambari server URL")
	flags.String("user", "", "Ambari user")
	flags.String("password", "", "Ambari password")
	flags.Bool("debug", false, "Log every Ambari API call")
	flags.String("host-source", "", "Where assignable hosts come from: ambari or hcloud")
	flags.String("metrics-addr", "", "Serve prometheus metrics on this address")

	// Cluster lifecycle
	cmd.AddCommand(Blueprint())
	cmd.AddCommand(Cluster())
	cmd.AddCommand(Hosts())

	// Connected cluster
	cmd.AddCommand(Services())
	cmd.AddCommand(Tasks())

	// Console
	cmd.AddCommand(Shell())
	cmd.AddCommand(Hint())
	cmd.AddCommand(Debug())
	cmd.AddCommand(Config())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// Execute runs the command line in a fresh console runtime.
func Execute(ctx context.Context, args []string) error {
	ctx, release := handlers.NewRuntime(ctx)
	defer release()

	cmd := Root()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func bootstrap(cmd *cobra.Command, _ []string) error {
	if skipsSession(cmd) {
		return nil
	}

	configPath, _ := cmd.Flags().GetString("config")
	ctx, err := handlers.Bootstrap(cmd.Context(), handlers.Options{
		ConfigPath: configPath,
		Flags:      cmd.Flags(),
		Out:        cmd.OutOrStdout(),
		Err:        cmd.ErrOrStderr(),
		Command:    commandPath(cmd),
	})
	if err != nil {
		return err
	}
	cmd.SetContext(ctx)
	return nil
}

func skipsSession(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[noSession]; ok {
			return true
		}
	}
	return false
}

// commandPath returns the command path without the binary name.
func commandPath(cmd *cobra.Command) string {
	return strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")
}

func withoutSession() map[string]string {
	return map[string]string{noSession: "true"}
}
