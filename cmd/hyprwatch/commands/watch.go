package commands

import (
	"context"
	"errors"

	"github.com/bryanchriswhite/hyprwatch/internal/config"
	"github.com/bryanchriswhite/hyprwatch/internal/hypr"
	"github.com/bryanchriswhite/hyprwatch/internal/logger"
	"github.com/bryanchriswhite/hyprwatch/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print desktop state snapshots as JSON lines",
	Long: `Seed the desktop state from the compositor, then follow the event socket
and print one JSON snapshot per state change to stdout.

The first line is always the seeded state. Logs go to stderr.`,
	Example: `  # Follow state changes
  hyprwatch watch

  # Pipe into jq
  hyprwatch watch | jq .current_workspace

  # Debug logging with readable output
  hyprwatch watch --log-level debug --log-pretty`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	configMgr, err := loadConfig()
	if err != nil {
		return err
	}
	return followState(cmd.Context(), configMgr, watch.NewJSONEmitter(cmd.OutOrStdout()))
}

// followState connects the event socket, seeds the state, then runs a
// watcher until ctx is cancelled or the stream fails.
func followState(ctx context.Context, configMgr *config.Manager, emitter watch.Emitter) error {
	log := logger.WithComponent("watch")

	ctl, paths, err := newController(configMgr)
	if err != nil {
		return err
	}

	events, initial, err := watch.Open(ctx, func(ctx context.Context) (watch.Source, error) {
		stream, err := hypr.DialEvents(ctx, paths)
		if err != nil {
			return nil, err
		}
		return stream, nil
	}, ctl)
	if err != nil {
		return err
	}
	defer events.Close()
	log.Debug().
		Int("workspaces", len(initial.Workspaces)).
		Uint32("current_workspace", initial.CurrentWorkspace).
		Str("app", initial.CurrentAppName).
		Msg("State seeded")

	configMgr.Watch(func(cfg config.Config) {
		logger.SetLevel(cfg.LogLevel)
	})

	w := watch.New(events, emitter, initial, configMgr.Get().QueueSize)
	log.Info().Str("socket", paths.EventSocket()).Msg("Watching events")

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info().Msg("Shutting down gracefully...")
		return nil
	}
	return err
}
