// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klytics/officeskills/internal/skillerr"
)

// NewCommand returns the completion command for rootCmd.
func NewCommand(rootCmd *cobra.Command) *cobra.Command {
	name := rootCmd.Name()
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completions",
		Long: fmt.Sprintf(`Generate shell completion scripts for %[1]s.

Install instructions:
  Bash:       %[1]s completion bash > /etc/bash_completion.d/%[1]s
              echo 'source <(%[1]s completion bash)' >> ~/.bashrc
  Zsh:        %[1]s completion zsh > ~/.zsh/completions/_%[1]s
  Fish:       %[1]s completion fish > ~/.config/fish/completions/%[1]s.fish
  PowerShell: %[1]s completion powershell >> $PROFILE`, name),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args: func(c *cobra.Command, args []string) error {
			if len(args) != 1 {
				return skillerr.MalformedInput("completion: expected one shell name (bash, zsh, fish, powershell)")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				fmt.Fprintf(out, "# %s bash completion\n\n", name)
				return rootCmd.GenBashCompletion(out)
			case "zsh":
				fmt.Fprintf(out, "# %s zsh completion\n\n", name)
				return rootCmd.GenZshCompletion(out)
			case "fish":
				fmt.Fprintf(out, "# %s fish completion\n\n", name)
				return rootCmd.GenFishCompletion(out, true)
			case "powershell":
				fmt.Fprintf(out, "# %s PowerShell completion\n\n", name)
				return rootCmd.GenPowerShellCompletionWithDesc(out)
			default:
				return skillerr.MalformedInput("unsupported shell: %s (supported: bash, zsh, fish, powershell)", args[0])
			}
		},
	}
	return cmd
}
