package commands

import (
	"strings"

	"github.com/bryanchriswhite/hyprwatch/internal/hypr"
	"github.com/spf13/cobra"
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch DISPATCHER [ARGS...]",
	Short: "Run a compositor dispatcher",
	Long: `Send a dispatch command over the command socket and print the
compositor's response. Arguments are joined with single spaces.`,
	Example: `  # Switch to workspace 3
  hyprwatch dispatch workspace 3

  # Launch a terminal
  hyprwatch dispatch exec kitty`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invokeAndPrint(cmd, hypr.Dispatch{Args: strings.Join(args, " ")})
	},
}

func init() {
	rootCmd.AddCommand(dispatchCmd)
}
