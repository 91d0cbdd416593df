package commands

import (
	"github.com/spf13/cobra"
)

// Completion returns the completion command for shell autocompletion.
func Completion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for blueprintctl.

To load completions:

Bash:
  $ source <(blueprintctl completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ blueprintctl completion bash > /etc/bash_completion.d/blueprintctl

Zsh:
  $ blueprintctl completion zsh > "${fpath[1]}/_blueprintctl"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ blueprintctl completion fish > ~/.config/fish/completions/blueprintctl.fish

PowerShell:
  PS> blueprintctl completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		Annotations:           withoutSession(),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
