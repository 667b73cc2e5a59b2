package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quantfold/arbscan/internal/metrics"
	"github.com/quantfold/arbscan/internal/report"
	"github.com/quantfold/arbscan/internal/scan"
)

// buildScanner assembles the reporter chain and the scanner from the wired
// dependencies. Reporter order matters: console first so operators always
// see output, then persistence and archival, alerts last.
func (a *App) buildScanner(deps *Dependencies) (*scan.Scanner, error) {
	reporters := []report.Reporter{
		report.NewConsoleReporter(os.Stdout, a.logger),
	}
	if deps.PriceCache != nil {
		reporters = append(reporters, report.NewCacheReporter(deps.PriceCache, a.logger))
	}
	if deps.Store != nil {
		reporters = append(reporters, report.NewStoreReporter(deps.Store, a.logger))
	}
	if deps.BlobWriter != nil {
		reporters = append(reporters, report.NewArchiveReporter(deps.BlobWriter, a.cfg.Archive.Prefix, a.logger))
	}
	if deps.AlertsEnabled {
		reporters = append(reporters, report.NewNotifyReporter(
			deps.Alerter,
			deps.RateLimiter,
			a.cfg.Notify.AlertLimit,
			a.cfg.Notify.AlertWindow.Duration,
			a.cfg.Notify.MaxPerScan,
			a.logger,
		))
	}

	collectors, err := deps.Collectors.Select(a.cfg.Scan.Venues)
	if err != nil {
		return nil, err
	}

	return scan.New(
		scan.Config{
			Interval:         a.cfg.Scan.Interval.Duration,
			Cooldown:         a.cfg.Scan.Cooldown.Duration,
			CollectorTimeout: a.cfg.Scan.CollectorTimeout.Duration,
		},
		collectors,
		deps.Engine,
		report.NewMultiReporter(reporters...),
		deps.Metrics,
		a.logger,
	)
}

// ScanMode runs the scan loop until the context is cancelled, with the
// metrics server alongside when enabled.
func (a *App) ScanMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting scan mode",
		slog.Any("venues", a.cfg.Scan.Venues),
		slog.Duration("interval", a.cfg.Scan.Interval.Duration),
	)

	scanner, err := a.buildScanner(deps)
	if err != nil {
		return fmt.Errorf("app: build scanner: %w", err)
	}

	if a.cfg.Metrics.Enabled {
		srv := metrics.StartServer(a.cfg.Metrics.Port, deps.Metrics, deps.Health)
		a.closers = append(a.closers, func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		})
		a.logger.InfoContext(ctx, "metrics server listening", slog.Int("port", a.cfg.Metrics.Port))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := scanner.RunLoop(ctx)
		if ctx.Err() != nil {
			return nil // clean shutdown
		}
		return err
	})
	return g.Wait()
}

// OnceMode runs exactly one scan and exits. Useful for cron-driven setups
// and smoke tests.
func (a *App) OnceMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting single scan")

	scanner, err := a.buildScanner(deps)
	if err != nil {
		return fmt.Errorf("app: build scanner: %w", err)
	}

	res, err := scanner.ScanOnce(ctx)
	if err != nil {
		return fmt.Errorf("app: scan: %w", err)
	}
	a.logger.InfoContext(ctx, "scan finished",
		slog.Int("records", res.TotalRecords()),
		slog.Int("opportunities", len(res.Opportunities)),
	)
	return nil
}

// reportLimit caps the report mode listing.
const reportLimit = 50

// ReportMode prints the most recent stored opportunities and exits.
func (a *App) ReportMode(ctx context.Context, deps *Dependencies) error {
	if deps.Store == nil {
		return fmt.Errorf("app: report mode requires postgres to be enabled")
	}

	opps, err := deps.Store.ListRecent(ctx, reportLimit)
	if err != nil {
		return fmt.Errorf("app: list opportunities: %w", err)
	}

	if len(opps) == 0 {
		fmt.Println("no stored opportunities")
		return nil
	}
	fmt.Printf("last %d opportunities:\n", len(opps))
	for _, o := range opps {
		fmt.Printf("%s  %s [%s]: buy %s @ %.4f, sell %s @ %.4f, net %.2f%%\n",
			o.DetectedAt.UTC().Format(time.RFC3339),
			o.Event, o.Outcome,
			o.BuyPlatform, o.BuyPrice,
			o.SellPlatform, o.SellPrice,
			o.NetSpreadPct,
		)
	}
	return nil
}
