package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pyobs/pyobs-launcher/internal/config"
	"github.com/pyobs/pyobs-launcher/internal/logging"
	"github.com/pyobs/pyobs-launcher/internal/shell"
	"github.com/pyobs/pyobs-launcher/internal/ui/panels"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "pyobs-launcher",
		Short: "Start pyobs modules and watch their logs, one tab per config",
		Long: `pyobs-launcher starts one pyobs process per config file listed in its own
configuration and shows each process's stderr in a tab. Quitting stops the
processes one after another, force-killing any that do not exit in time.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "launcher configuration file (YAML or TOML)")
	return cmd
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Options{Path: cfg.LogFile})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "warning: %v (diagnostic log disabled)\n", err)
	}
	defer func() { _ = logger.Close() }()

	logger.Info("launcher starting",
		"version", panels.Version,
		"config", configPath,
		"configs", len(cfg.Configs),
		"pyobs", cfg.Pyobs,
		"python", cfg.Python,
		"kill_timeout", cfg.KillTimeout,
	)
	return shell.Run(ctx, cfg, logger)
}
