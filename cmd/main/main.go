package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// app carries the state shared by every command of one invocation.
type app struct {
	v      *viper.Viper
	out    io.Writer
	config *Config
	logger *slog.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out}

	rootCmd := &cobra.Command{
		Use:   "movegen",
		Short: "Render a campaign page from an HTML template",
		Long: "Render a campaign page by replacing the placeholder tokens of an HTML template\n" +
			"with the configured values. Running movegen without a command is the same as\n" +
			"running movegen render.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd)
		},
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().String("config", "./config.json", "Path to the JSON config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("history-db", "", "SQLite database to record renders in")
	addRenderFlags(rootCmd.Flags())

	rootCmd.AddCommand(newRenderCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))
	return rootCmd
}

// setup binds the flags of cmd, loads the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if err := a.v.BindPFlag("log_level", cmd.Flags().Lookup("log-level")); err != nil {
		return err
	}
	if err := a.v.BindPFlag("history_db", cmd.Flags().Lookup("history-db")); err != nil {
		return err
	}
	if err := bindRenderFlags(a.v, cmd.Flags()); err != nil {
		return err
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	config, err := LoadConfig(a.v, configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.config = config
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(config.LogLevel)}))
	a.logger.Debug("Configuration loaded", "path", configPath)
	return nil
}

func main() {
	baseLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()
	if err != nil {
		baseLogger.Error("movegen failed", "error", err)
		os.Exit(1)
	}
}
