package commands

import (
	"fmt"
	"strings"

	"github.com/bryanchriswhite/hyprwatch/internal/hypr"
	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify MESSAGE...",
	Short: "Show a compositor notification",
	Example: `  # Plain notification for 5 seconds
  hyprwatch notify "build finished"

  # Error icon, red, larger font, 10 seconds
  hyprwatch notify --icon error --color ff0000 --font-size 18 --duration 10000 "build failed"

  # Color with alpha channel
  hyprwatch notify --color 00ff0080 --rgba "half transparent"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNotify,
}

var (
	notifyIcon     string
	notifyDuration uint32
	notifyColor    string
	notifyRGBA     bool
	notifyFontSize uint32
)

func init() {
	notifyCmd.Flags().StringVar(&notifyIcon, "icon", "noicon", "icon (noicon, warning, info, hint, error, confused, ok)")
	notifyCmd.Flags().Uint32Var(&notifyDuration, "duration", 5000, "display time in milliseconds")
	notifyCmd.Flags().StringVar(&notifyColor, "color", "ffffff", "text color as hex")
	notifyCmd.Flags().BoolVar(&notifyRGBA, "rgba", false, "treat --color as rgba (includes alpha)")
	notifyCmd.Flags().Uint32Var(&notifyFontSize, "font-size", 0, "font size (0 uses the compositor default)")
	rootCmd.AddCommand(notifyCmd)
}

func runNotify(cmd *cobra.Command, args []string) error {
	icon, err := hypr.ParseIcon(notifyIcon)
	if err != nil {
		return fmt.Errorf("invalid --icon: %w", err)
	}
	color := hypr.RGB(notifyColor)
	if notifyRGBA {
		color = hypr.RGBA(notifyColor)
	}
	text := strings.Join(args, " ")
	msg := hypr.Plain(text)
	if notifyFontSize > 0 {
		msg = hypr.WithFontSize(notifyFontSize, text)
	}
	return invokeAndPrint(cmd, hypr.Notify{
		Icon:       icon,
		DurationMS: notifyDuration,
		Color:      color,
		Message:    msg,
	})
}
