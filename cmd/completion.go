package cmd

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion <bash|zsh|fish>",
	Short: "Prints a shell completion script",
	Long: `Prints a completion script for the given shell. Besides commands and
flags it completes chip families and their boards from the SDK the shell
is in, and the values of --toolchain, --effort, --stage, --destination and
--source.

Load it into the current bash session with

  source <(elements completion bash)

or install it for zsh and fish with

  elements completion zsh > "${fpath[1]}/_elements"
  elements completion fish > ~/.config/fish/completions/elements.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:                  runCompletion,
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

func runCompletion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	switch args[0] {
	case "zsh":
		return cmd.Root().GenZshCompletion(out)
	case "fish":
		return cmd.Root().GenFishCompletion(out, true)
	default:
		return cmd.Root().GenBashCompletionV2(out, true)
	}
}
