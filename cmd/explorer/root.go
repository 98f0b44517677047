package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/andreiashu/countryexplorer"
	"github.com/andreiashu/countryexplorer/cmd/explorer/config"
)

type rootOptions struct {
	configPath string
	offline    bool
	cacheDir   string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "explorer",
		Short:         "Search and compare countries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $HOME/.countryexplorer/config.yaml)")
	flags.BoolVar(&opts.offline, "offline", false, "serve countries from the local snapshot")
	flags.StringVar(&opts.cacheDir, "cache-dir", "", "snapshot directory")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")

	cmd.AddCommand(
		newSearchCmd(opts),
		newCompareCmd(opts),
		newLocateCmd(opts),
		newLinkCmd(),
	)
	return cmd
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	path := o.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if o.offline {
		cfg.Cache.Offline = true
	}
	if o.cacheDir != "" {
		cfg.Cache.Dir = o.cacheDir
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	o.cfg = cfg
	o.logger = newLogger(cmd.ErrOrStderr(), cfg.Level())
	slog.SetDefault(o.logger)
	return nil
}

// newLogger returns a tint logger writing to w. Colour is enabled only for terminals.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
}

// loadController creates a controller for the configured source and loads it.
// A failed load is returned as an error.
func (o *rootOptions) loadController(cmd *cobra.Command) (*countryexplorer.Controller, error) {
	ctrl := countryexplorer.NewController(o.cfg.DataSource(), countryexplorer.WithLogger(o.logger))
	if err := ctrl.Load(cmd.Context()); err != nil {
		ctrl.Close()
		return nil, err
	}
	if view := ctrl.Snapshot(); view.Phase == countryexplorer.PhaseFailed {
		ctrl.Close()
		return nil, view.Cause
	}
	return ctrl, nil
}
