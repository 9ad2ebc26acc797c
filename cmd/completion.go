package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Output shell completion code for the specified shell",
	Long: `
Output shell completion code for the specified shell (bash, zsh, or fish).

Bash:

  $ source <(cozy-barcode completion bash)

Zsh:

  $ cozy-barcode completion zsh > "${fpath[1]}/_cozy-barcode"

fish:

  $ cozy-barcode completion fish | source
`,
	ValidArgs: []string{"bash", "zsh", "fish"},
	Args:      cobra.ExactArgs(1),
	// No configuration is needed to print the completion code
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return RootCmd.GenBashCompletion(out)
		case "zsh":
			return RootCmd.GenZshCompletion(out)
		case "fish":
			return RootCmd.GenFishCompletion(out, true)
		}
		return errors.New("Unsupported shell")
	},
}

func init() {
	RootCmd.AddCommand(completionCmd)
}
