package commands

import (
	"fmt"
	"strconv"

	"github.com/bryanchriswhite/hyprwatch/internal/hypr"
	"github.com/spf13/cobra"
)

var dismissCmd = &cobra.Command{
	Use:   "dismiss [COUNT]",
	Short: "Dismiss notifications",
	Long:  `Dismiss the COUNT most recent notifications, or all of them when COUNT is omitted.`,
	Example: `  # Dismiss everything
  hyprwatch dismiss

  # Dismiss the two most recent
  hyprwatch dismiss 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scope := hypr.DismissAll()
		if len(args) == 1 {
			n, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid count %q: %w", args[0], err)
			}
			scope = hypr.DismissRecent(uint32(n))
		}
		return invokeAndPrint(cmd, hypr.DismissNotify{Scope: scope})
	},
}

func init() {
	rootCmd.AddCommand(dismissCmd)
}
