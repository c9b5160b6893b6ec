package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"lunchbot/internal/configuration"
	"lunchbot/internal/configuration/properties"
	"lunchbot/internal/logging"
	"lunchbot/internal/storage"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configDir string
	profile   string
	cfg       *properties.Config
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		slog.Error("lunchbot failed", "error", err)
		cancel()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "lunchbot",
		Short:         "Slack bot that picks where the team eats today",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSlack(cmd.Context(), opts.cfg)
		},
	}

	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "directory holding application*.yml (env "+configuration.ConfigDirEnv+")")
	root.PersistentFlags().StringVar(&opts.profile, "profile", "", "configuration profile (env "+configuration.ProfileEnv+")")

	root.AddCommand(
		newServeCommand(opts),
		newConsoleCommand(opts),
		newInitCommand(opts),
		newImportCommand(opts),
	)
	return root
}

func (o *rootOptions) load() error {
	if o.configDir != "" {
		if err := os.Setenv(configuration.ConfigDirEnv, o.configDir); err != nil {
			return err
		}
	}
	if o.profile != "" {
		if err := os.Setenv(configuration.ProfileEnv, o.profile); err != nil {
			return err
		}
	}

	cfg, err := configuration.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(cfg.Application.LogLevel)
	slog.Info("configuration loaded", "profile", cfg.Application.Profile, "backend", cfg.Storage.Backend)
	o.cfg = cfg
	return nil
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Connect to Slack over Socket Mode and answer commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSlack(cmd.Context(), opts.cfg)
		},
	}
}

func newConsoleCommand(opts *rootOptions) *cobra.Command {
	var historyFile string

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Answer commands typed on a local prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd.Context(), opts.cfg, historyFile)
		},
	}
	cmd.Flags().StringVar(&historyFile, "history", "", "readline history file")
	return cmd
}

func newInitCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write an empty restaurant snapshot for the configured backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := storage.Open(&opts.cfg.Storage)
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.Initialize(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialized empty %s snapshot at %s\n", svc.Backend(), opts.cfg.Storage.Path)
			return nil
		},
	}
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace the snapshot with the records of a restaurants.json file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			records, err := storage.DecodeJSON(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			svc, err := storage.Open(&opts.cfg.Storage)
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.Import(records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d restaurants into %s snapshot\n", len(records), svc.Backend())
			return nil
		},
	}
}
