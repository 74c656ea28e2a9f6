// Package cli implements the kanso command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/app"
	"github.com/comitanigiacomo/kanso-habits/internal/platform/config"
	"github.com/comitanigiacomo/kanso-habits/internal/platform/logger"
)

type rootOptions struct {
	configPath string
	dataDir    string
	backend    string
	verbose    bool
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "kanso",
		Short:         "Build up to four habits, one day at a time",
		Long:          "Track daily completions, streaks and reward milestones for a small set of habits.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default $KANSO_CONFIG or "+config.Path()+")")
	cmd.PersistentFlags().StringVarP(&opts.dataDir, "data-dir", "d", "", "Habit data directory")
	cmd.PersistentFlags().StringVarP(&opts.backend, "backend", "b", "", "Storage backend: file, sqlite or memory")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(
		newSetupCommand(opts),
		newRecordCommand(opts),
		newStatusCommand(opts),
		newCalendarCommand(opts),
		newServeCommand(opts),
	)
	return cmd
}

// Execute is the entry point called from cmd/kanso.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("  Error: ")+err.Error())
		os.Exit(1)
	}
}

// loadConfig applies command-line overrides on top of config.Load. Without
// --config the path falls back to KANSO_CONFIG, then the default location.
func (o *rootOptions) loadConfig() (config.Config, error) {
	path := o.configPath
	if path == "" {
		boot, err := config.BootstrapFromEnv()
		if err != nil {
			return config.Config{}, err
		}
		path = boot.ConfigPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if o.dataDir != "" {
		cfg.Storage.DataDir = o.dataDir
	}
	if o.backend != "" {
		cfg.Storage.Backend = o.backend
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, cfg.Validate()
}

// openApp loads config and habit data. Interactive commands log warnings
// and above only, unless --verbose is set.
func (o *rootOptions) openApp(ctx context.Context, interactive bool) (*app.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if interactive && !o.verbose {
		level = "warn"
	}
	zl, err := logger.New(level, cfg.Log.Development || interactive)
	if err != nil {
		return nil, err
	}

	a, err := app.New(ctx, cfg, zl)
	if err != nil {
		_ = zl.Sync()
		return nil, err
	}
	return a, nil
}

func closeApp(a *app.App) {
	if err := a.Close(); err != nil {
		a.Logger.Warn("Closing resources failed", zap.Error(err))
	}
	_ = a.Logger.Sync()
}
