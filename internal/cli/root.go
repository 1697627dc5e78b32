// Package cli wires the pdrdash commands.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sekarsister/pdrdash/internal/config"
	"github.com/sekarsister/pdrdash/internal/pdr"
)

// RootOptions holds global flags and the state they produce.
type RootOptions struct {
	ConfigPath string
	Verbose    bool

	Config *config.Config
	Logger *zap.Logger

	// NewLogger builds Logger from the configured level when no logger was
	// supplied.
	NewLogger func(level string, verbose bool) (*zap.Logger, error)
}

// Execute runs the command line in args. The logger is flushed on every
// exit path, failed commands included.
func Execute(ctx context.Context, args []string) error {
	return execute(ctx, &RootOptions{NewLogger: buildLogger}, args)
}

func execute(ctx context.Context, opts *RootOptions, args []string) error {
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	defer func() {
		if opts.Logger != nil {
			_ = opts.Logger.Sync()
		}
	}()
	return cmd.ExecuteContext(ctx)
}

// NewRootCommand creates the root command. A non-nil logger is used as is
// instead of building one from the configuration.
func NewRootCommand(logger *zap.Logger) *cobra.Command {
	return newRootCommand(&RootOptions{Logger: logger, NewLogger: buildLogger})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdrdash",
		Short: "Tableaux de bord du PDR Marrakech-Safi",
		Long: `pdrdash serves the regional development plan (PDR) dashboards for the
Marrakech-Safi region and writes static reports from the same project table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return WrapExitError(ExitFailure, "invalid configuration", err)
			}
			opts.Config = cfg

			if opts.Logger != nil {
				return nil
			}
			newLogger := opts.NewLogger
			if newLogger == nil {
				newLogger = buildLogger
			}
			opts.Logger, err = newLogger(cfg.Logging.Level, opts.Verbose)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to initialize logger", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))

	return cmd
}

func buildLogger(level string, verbose bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// cache returns the project cache described by the configuration, with
// synthetic locations added on load.
func (o *RootOptions) cache() *pdr.Cache {
	return pdr.NewCache(o.Config.Data.File, o.Config.Delimiter(), o.Logger, o.Config.Geo.Enrich)
}
