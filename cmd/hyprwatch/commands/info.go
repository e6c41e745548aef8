package commands

import (
	"fmt"
	"strings"

	"github.com/bryanchriswhite/hyprwatch/internal/hypr"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info KIND [ARG]",
	Short: "Run an info query",
	Long: `Run an info query against the command socket and print the raw JSON
response. decorations takes a window id and getoption takes an option name.`,
	Example: `  # List workspaces
  hyprwatch info workspaces

  # Read one option
  hyprwatch info getoption general:border_size

  # List every kind
  hyprwatch info --list`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runInfo,
}

var infoList bool

func init() {
	infoCmd.Flags().BoolVar(&infoList, "list", false, "list the available query kinds")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	if infoList {
		for _, k := range hypr.InfoKinds {
			suffix := ""
			if k.TakesArg() {
				suffix = " ARG"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", k, suffix)
		}
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("KIND is required (one of: %s)", kindList())
	}

	kind, err := hypr.ParseInfoKind(args[0])
	if err != nil {
		return err
	}
	q := hypr.Info{Kind: kind}
	switch {
	case kind.TakesArg() && len(args) < 2:
		return fmt.Errorf("%s requires an argument", kind)
	case !kind.TakesArg() && len(args) > 1:
		return fmt.Errorf("%s takes no argument", kind)
	case len(args) > 1:
		q.Arg = args[1]
	}
	return invokeAndPrint(cmd, q)
}

func kindList() string {
	names := make([]string, len(hypr.InfoKinds))
	for i, k := range hypr.InfoKinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
