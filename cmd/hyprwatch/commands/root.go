package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bryanchriswhite/hyprwatch/internal/config"
	"github.com/bryanchriswhite/hyprwatch/internal/hypr"
	"github.com/bryanchriswhite/hyprwatch/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "hyprwatch",
		Short: "hyprwatch - Hyprland IPC client and desktop state watcher",
		Long: `hyprwatch talks to a running Hyprland instance over its two unix
sockets. It follows the event socket to keep a small desktop state
(workspaces, focused workspace, focused application) and sends commands
and info queries over the command socket.

Features:
  • Stream desktop state snapshots as JSON lines
  • Serve the same state over HTTP and WebSocket
  • Dispatch compositor commands
  • Show and dismiss notifications
  • Run info queries (workspaces, clients, monitors, ...)`,
		SilenceUsage: true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/hyprwatch/config.yaml)")
	rootCmd.PersistentFlags().Int("port", 0, "server port (default is 8080)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-pretty", false, "human-readable log output")
	rootCmd.PersistentFlags().Duration("timeout", 0, "command socket timeout (0 disables)")

	// Bind flags to viper
	viper.BindPFlag("server_port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))
	viper.BindPFlag("command_timeout", rootCmd.PersistentFlags().Lookup("timeout"))
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// loadConfig builds the config manager with flags taking precedence and
// configures the global logger from it.
func loadConfig() (*config.Manager, error) {
	configMgr, err := config.NewManagerWithViper(GetConfigFile(), viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config manager: %w", err)
	}
	cfg := configMgr.Get()
	logger.Init(cfg.LogLevel, cfg.LogPretty)
	return configMgr, nil
}

// newController resolves the instance sockets and returns a controller for
// the command socket.
func newController(configMgr *config.Manager) (*hypr.Controller, hypr.Paths, error) {
	paths, err := configMgr.Paths()
	if err != nil {
		return nil, hypr.Paths{}, err
	}
	ctl := hypr.NewController(paths)
	ctl.SetTimeout(configMgr.Get().CommandTimeout)
	return ctl, paths, nil
}

// invokeAndPrint sends one command and prints the raw response.
func invokeAndPrint(cmd *cobra.Command, c hypr.Command) error {
	configMgr, err := loadConfig()
	if err != nil {
		return err
	}
	ctl, _, err := newController(configMgr)
	if err != nil {
		return err
	}
	resp, err := ctl.Invoke(cmd.Context(), c)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), resp)
	return nil
}
