package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zedonkay/rent/internal/server"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Listen string // overrides server.listen_address
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the submission API until interrupted.

Routes:
  POST /api/submit       submit {"name": ..., "values": [...]}
  GET  /api/submissions  list the round's submissions
  GET  /api/calculate    compute the split (needs 3 submissions)
  POST /api/reset        clear the round
  GET  /api/history      list recorded splits
  GET  /health           liveness and database check
  GET  /metrics          prometheus metrics (when enabled)

Example:
  rent serve --config rent.yaml --listen 0.0.0.0:5000`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Listen, "listen", "", "listen address (default from config)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	a, err := openApp(opts.RootOptions)
	if err != nil {
		return formatter.Fail(err)
	}
	defer a.Close()

	cfg := a.cfg.Server
	if opts.Listen != "" {
		cfg.ListenAddress = opts.Listen
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, a, server.New(cfg, a.service, a.collector, a.logger), formatter)
}

func serve(ctx context.Context, a *app, srv *server.Server, formatter *OutputFormatter) error {
	a.logger.Info("starting server",
		zap.Float64("total_rent", a.cfg.TotalRent),
		zap.String("policy", a.engine.Policy().Name()),
		zap.Bool("metrics", a.collector != nil),
	)
	if err := srv.ListenAndServe(ctx); err != nil {
		return formatter.Fail(err)
	}
	return nil
}
