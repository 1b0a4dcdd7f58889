// Package main is the entry point for i3blocks-mpris.
// i3blocks runs it once per refresh and once per click. It reports on one
// "current" MPRIS player and remembers that choice in a small state file.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/natsukagami/i3blocks-mpris/internal/bar"
	"github.com/natsukagami/i3blocks-mpris/internal/config"
	"github.com/natsukagami/i3blocks-mpris/internal/media"
	"github.com/natsukagami/i3blocks-mpris/internal/selection"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// options holds command line settings
type options struct {
	ConfigPath string
	StateFile  string
	Mode       string
	Button     string
	Verbose    bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "i3blocks-mpris",
		Short:   "MPRIS player block for i3blocks",
		Long:    "Prints a three-line i3blocks report for the current MPRIS player and handles clicks.\nThe report is chosen with MPRIS_MODE (player, status, modes) and clicks arrive in BLOCK_BUTTON.",
		Version: Version,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := run(opts, media.NewDirectory, os.Stdout); err != nil {
				slog.Error("i3blocks-mpris failed", "error", err)
				os.Exit(1)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Configuration file (default: $XDG_CONFIG_HOME/i3blocks-mpris/config.json)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging on stderr")
	cmd.Flags().StringVar(&opts.Mode, "mode", os.Getenv("MPRIS_MODE"), "Report to produce: player, status or modes (default: $MPRIS_MODE)")
	cmd.Flags().StringVar(&opts.Button, "button", os.Getenv("BLOCK_BUTTON"), "Click code 1-5 (default: $BLOCK_BUTTON)")
	cmd.Flags().StringVar(&opts.StateFile, "state-file", "", "File holding the selected player (overrides the config)")

	cmd.AddCommand(initConfigCmd(opts))
	return cmd
}

func initConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write the configuration file with defaults filled in",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := initConfig(opts, os.Stdout); err != nil {
				slog.Error("init-config failed", "error", err)
				os.Exit(1)
			}
		},
	}
}

func initConfig(opts *options, out io.Writer) error {
	configMgr := config.NewManager(opts.ConfigPath)
	if err := configMgr.Load(); err != nil {
		return err
	}
	if err := configMgr.Save(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, configMgr.GetPath())
	return err
}

func setupLogging(cfg *config.Config, verbose bool) {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	if verbose {
		level = slog.LevelDebug
	}

	// Stdout belongs to i3blocks
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func run(opts *options, newDirectory func() (media.Directory, error), out io.Writer) error {
	configMgr := config.NewManager(opts.ConfigPath)
	if err := configMgr.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := configMgr.Get()
	setupLogging(cfg, opts.Verbose)

	if opts.StateFile != "" {
		cfg.StateFile = opts.StateFile
	}

	directory, err := newDirectory()
	if err != nil {
		return err
	}
	defer directory.Close()

	players, err := directory.Players()
	if err != nil {
		return fmt.Errorf("failed to find players: %w", err)
	}

	store := selection.NewFileStore(cfg.StateFile)
	policy := selection.NewPolicy(store, cfg.ReferencePlayer)
	dispatcher := bar.NewDispatcher(policy, bar.NewRenderer(cfg), out)

	return dispatcher.Run(players, opts.Mode, bar.ParseButton(opts.Button))
}
