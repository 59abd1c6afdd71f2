package cmd

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for barong.

To load completions:

Bash:
  $ source <(barong completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ barong completion bash > /etc/bash_completion.d/barong
  # macOS:
  $ barong completion bash > $(brew --prefix)/etc/bash_completion.d/barong

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ barong completion zsh > "${fpath[1]}/_barong"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ barong completion fish | source

  # To load completions for each session, execute once:
  $ barong completion fish > ~/.config/fish/completions/barong.fish

PowerShell:
  PS> barong completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> barong completion powershell > barong.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  usageArgs(cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		}
		return nil
	},
}

