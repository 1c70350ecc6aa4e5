package main

import (
	"context"
	"io"

	"github.com/rentcalc/outsource-calculator/internal/calculation"
	"github.com/rentcalc/outsource-calculator/internal/config"
	"github.com/rentcalc/outsource-calculator/internal/history"
	"github.com/rentcalc/outsource-calculator/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries state shared by every command
type app struct {
	configPath string
	envFile    string
	logLevel   string

	cfg     *config.Config
	logger  *zap.Logger
	engine  *calculation.CalculationEngine
	closers []func()

	in  io.Reader
	out io.Writer
}

func newApp(in io.Reader, out io.Writer) *app {
	return &app{in: in, out: out, logger: zap.NewNop()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "rentcalc",
		Short:         "Outsource payout and profit calculator for subletting and property management",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.out)
	root.SetIn(a.in)
	root.PersistentFlags().StringVar(&a.configPath, "config", "rentcalc.yaml", "path to configuration file")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file with RENTCALC_* overrides")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newComputeCmd(a),
		newSolveCmd(a),
		newHistoryCmd(a),
		newExportCmd(a),
	)
	return root
}

func (a *app) setup() error {
	if err := config.LoadDotEnv(a.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	logger, err := initializeLogger(cfg.Logging, a.logLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.engine = calculation.NewCalculationEngine()
	a.engine.SetLogger(logger.Sugar())
	logger.Debug("configuration loaded",
		zap.String("op", "setup"),
		zap.String("config", a.configPath),
		zap.String("store", cfg.Store.Backend),
	)
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	_ = a.logger.Sync()
}

func (a *app) openStore(ctx context.Context) (*history.Store, error) {
	backend, closer, err := newBackend(a.cfg.Store)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}
	return history.Open(ctx, backend,
		history.WithLogger(a.logger.Sugar()),
		history.WithEngine(a.engine),
	), nil
}

// newSession returns a session, backed by the configured store when withStore is set
func (a *app) newSession(ctx context.Context, withStore bool) (*session.Session, *history.Store, error) {
	if !withStore {
		return session.New(nil, session.WithEngine(a.engine)), nil, nil
	}
	store, err := a.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return session.New(store, session.WithEngine(a.engine)), store, nil
}
