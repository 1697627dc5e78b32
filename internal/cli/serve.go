package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sekarsister/pdrdash/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the strategic and summary dashboards",
		Long: `Serve both dashboards over HTTP: the strategic view at / and the
summary view at /synthese. The project table is read on the first request
and kept until POST /reload.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = rootOpts.Config.Server.Addr
			}

			srv, err := server.New(server.Options{
				Cache:     rootOpts.cache(),
				Pipeline:  rootOpts.Config.Options(),
				Bounds:    rootOpts.Config.Geo.Bounds(),
				Delimiter: rootOpts.Config.Delimiter(),
				Logger:    rootOpts.Logger,
			})
			if err != nil {
				return WrapExitError(ExitFailure, "failed to build server", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := srv.Run(ctx, addr); err != nil {
				return WrapExitError(ExitFailure, "server failed", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, :8501)")

	return cmd
}
