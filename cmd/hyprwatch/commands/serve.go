package commands

import (
	"fmt"

	"github.com/bryanchriswhite/hyprwatch/internal/api"
	"github.com/bryanchriswhite/hyprwatch/internal/logger"
	"github.com/bryanchriswhite/hyprwatch/internal/watch"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the hyprwatch HTTP server",
	Long: `Start the hyprwatch HTTP server with live Hyprland state tracking.

The server exposes the current desktop state as JSON and as a WebSocket
stream, and forwards dispatch, notification and info requests to the
compositor.`,
	Example: `  # Start server on default port (8080)
  hyprwatch serve

  # Start server on custom port
  hyprwatch serve --port 9090

  # Also print snapshots to stdout
  hyprwatch serve --stdout

  # Start with debug logging
  hyprwatch serve --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Bool("stdout", false, "also print snapshots as JSON lines to stdout")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	configMgr, err := loadConfig()
	if err != nil {
		return err
	}
	cfg := configMgr.Get()
	log := logger.WithComponent("cli")
	log.Info().Str("config", configMgr.GetConfigPath()).Str("log_level", cfg.LogLevel).Msg("Configuration loaded")

	ctl, _, err := newController(configMgr)
	if err != nil {
		return err
	}

	hub := api.NewHub()
	var emitter watch.Emitter = hub
	if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
		emitter = watch.Multi{hub, watch.NewJSONEmitter(cmd.OutOrStdout())}
	}

	server := api.NewServer(ctl, hub)

	// Either side failing stops the other.
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		return followState(ctx, configMgr, emitter)
	})
	g.Go(func() error {
		return server.ListenAndServe(ctx, cfg.ServerPort)
	})

	log.Info().
		Str("api", fmt.Sprintf("http://localhost:%d/api", cfg.ServerPort)).
		Msg("hyprwatch is running, press Ctrl+C to stop")

	return g.Wait()
}
