package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/css-ra/tnrange-cli/internal/edf"
	"github.com/css-ra/tnrange-cli/internal/report"
)

// initExecutor opens the EDF store for the configured driver and applies the
// optional query rate limit.
func initExecutor(ctx context.Context) (edf.Executor, error) {
	var (
		exec edf.Executor
		err  error
	)
	switch cfg.EDF.Driver {
	case "postgres":
		exec, err = edf.NewPostgres(ctx, cfg.EDF.DatabaseURL, cfg.EDF.MaxConns)
	case "sqlite":
		exec, err = edf.NewSQLite(cfg.EDF.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown edf driver: %s", cfg.EDF.Driver)
	}
	if err != nil {
		return nil, eris.Wrap(err, "init edf store")
	}

	if cfg.EDF.MaxQPS > 0 {
		zap.L().Info("edf query rate limit enabled", zap.Float64("max_qps", cfg.EDF.MaxQPS))
		exec = edf.WithRateLimit(exec, cfg.EDF.MaxQPS)
	}
	return exec, nil
}

func builderOptions() report.Options {
	return report.Options{
		PageSize:          cfg.EDF.PageSize,
		PageWorkers:       cfg.EDF.MaxConcurrentPages,
		RemotePageWorkers: cfg.EDF.RemotePageWorkers,
		AccountWorkers:    cfg.Report.AccountWorkers,
	}
}

// reportLayout loads the configured layout override, falling back to the
// default on any error.
func reportLayout() report.Layout {
	if cfg.Report.LayoutPath == "" {
		return report.DefaultLayout()
	}
	layout, err := report.LoadLayout(cfg.Report.LayoutPath)
	if err != nil {
		zap.L().Warn("report layout override not loaded, using default",
			zap.String("path", cfg.Report.LayoutPath), zap.Error(err))
	}
	return layout
}
