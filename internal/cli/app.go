package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zedonkay/rent/internal/config"
	"github.com/Zedonkay/rent/internal/fairsplit"
	"github.com/Zedonkay/rent/internal/logging"
	"github.com/Zedonkay/rent/internal/metrics"
	"github.com/Zedonkay/rent/internal/round"
	"github.com/Zedonkay/rent/internal/store"
)

// serviceName is the service_name field on every log line.
const serviceName = "rent"

// app holds the components a command runs against.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	collector *metrics.Collector // nil when metrics are disabled
	engine    *fairsplit.Engine
	store     *store.Store // nil until openStore
	service   *round.Service
}

// newApp loads configuration and builds the logger, collector and engine.
// It does not touch the database.
func newApp(opts *RootOptions) (*app, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, codedExitError(ExitCommandError, ErrCodeConfig, "failed to load config", err)
	}
	if opts.Verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, serviceName)
	if err != nil {
		return nil, codedExitError(ExitCommandError, ErrCodeConfig, "failed to build logger", err)
	}

	policy, err := cfg.Policy()
	if err != nil {
		return nil, codedExitError(ExitCommandError, ErrCodeConfig, "invalid fallback policy", err)
	}

	a := &app{cfg: cfg, logger: logger}
	if cfg.MetricsEnabled() {
		a.collector = metrics.NewCollector(cfg.Metrics.Namespace)
	}
	a.engine = a.newEngine(policy)
	return a, nil
}

// newEngine builds an engine wired to the app's logger and collector.
func (a *app) newEngine(policy fairsplit.FallbackPolicy) *fairsplit.Engine {
	opts := []fairsplit.Option{fairsplit.WithPolicy(policy), fairsplit.WithLogger(a.logger)}
	if a.collector != nil {
		opts = append(opts, fairsplit.WithObserver(a.collector))
	}
	return fairsplit.New(opts...)
}

// openApp is newApp plus the store and round service.
func openApp(opts *RootOptions) (*app, error) {
	a, err := newApp(opts)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(a.cfg.Database.Path)
	if err != nil {
		_ = a.logger.Sync()
		return nil, codedExitError(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to open database %s", a.cfg.Database.Path), err)
	}
	a.store = st

	svcOpts := []round.Option{round.WithLogger(a.logger)}
	if a.collector != nil {
		svcOpts = append(svcOpts, round.WithRecorder(a.collector))
	}
	a.service = round.NewService(st, a.engine, a.cfg.RoomLabels(), a.cfg.TotalRent, svcOpts...)

	a.logger.Debug("app opened",
		zap.String("database", a.cfg.Database.Path),
		zap.String("policy", a.engine.Policy().Name()),
		zap.Float64("total_rent", a.cfg.TotalRent),
	)
	return a, nil
}

// Close releases the store and flushes the logger.
func (a *app) Close() error {
	var err error
	if a.store != nil {
		err = a.store.Close()
	}
	_ = a.logger.Sync()
	return err
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
