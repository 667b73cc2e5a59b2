// Package scan runs the fetch-all-venues-then-match cycle. Each scan fans
// out to every configured collector concurrently, materializes the full
// batch, runs detection over it, and hands the result to the reporter.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quantfold/arbscan/internal/arbitrage"
	"github.com/quantfold/arbscan/internal/collector"
	"github.com/quantfold/arbscan/internal/domain"
)

// Reporter consumes one completed scan. Implementations live in the report
// package; the scan loop treats reporting as a single boundary.
type Reporter interface {
	Report(ctx context.Context, res domain.ScanResult) error
}

// Observer receives every completed scan for instrumentation. It must not
// block.
type Observer interface {
	ObserveScan(res domain.ScanResult)
}

// Config holds the scan loop timings.
type Config struct {
	// Interval between scan starts.
	Interval time.Duration
	// Cooldown slept after a failed iteration before resuming the cadence.
	Cooldown time.Duration
	// CollectorTimeout bounds each venue fetch; zero means no bound beyond
	// the loop context.
	CollectorTimeout time.Duration
}

// Scanner owns the scan cycle: collectors in, reported opportunities out.
type Scanner struct {
	cfg        Config
	collectors []collector.Collector
	engine     *arbitrage.Engine
	reporter   Reporter
	observer   Observer
	logger     *slog.Logger
	seq        atomic.Uint64
}

// New creates a Scanner. observer may be nil.
func New(
	cfg Config,
	collectors []collector.Collector,
	engine *arbitrage.Engine,
	reporter Reporter,
	observer Observer,
	logger *slog.Logger,
) (*Scanner, error) {
	if len(collectors) == 0 {
		return nil, fmt.Errorf("scan: no collectors configured")
	}
	if engine == nil {
		return nil, fmt.Errorf("scan: nil engine")
	}
	if reporter == nil {
		return nil, fmt.Errorf("scan: nil reporter")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Second
	}
	return &Scanner{
		cfg:        cfg,
		collectors: collectors,
		engine:     engine,
		reporter:   reporter,
		observer:   observer,
		logger:     logger.With(slog.String("component", "scanner")),
	}, nil
}

// venueOut is one collector's contribution, kept in collector order so the
// assembled batch is deterministic for a given set of fetch results.
type venueOut struct {
	stats   domain.VenueStats
	records []domain.PriceRecord
}

// ScanOnce runs a single complete scan. Collector failures and timeouts are
// isolated per venue and recorded in VenueStats; ScanOnce itself fails only
// when every venue failed or the reporter returned an error.
func (s *Scanner) ScanOnce(ctx context.Context) (domain.ScanResult, error) {
	seq := s.seq.Add(1)
	start := time.Now().UTC()
	outs := make([]venueOut, len(s.collectors))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range s.collectors {
		i, c := i, c
		g.Go(func() error {
			fctx := gctx
			if s.cfg.CollectorTimeout > 0 {
				var cancel context.CancelFunc
				fctx, cancel = context.WithTimeout(gctx, s.cfg.CollectorTimeout)
				defer cancel()
			}

			stats := domain.VenueStats{Platform: c.Name()}
			results, err := c.Fetch(fctx)
			if err != nil {
				stats.Err = err.Error()
				s.logger.Warn("venue fetch failed",
					slog.Uint64("scan", seq),
					slog.String("venue", c.Name()),
					slog.String("error", err.Error()),
				)
			} else {
				records, skipped := collector.Split(results)
				stats.Records = len(records)
				stats.Skipped = skipped
				outs[i].records = records
			}
			outs[i].stats = stats
			return nil // per-venue failures never abort the scan
		})
	}
	_ = g.Wait()

	res := domain.ScanResult{
		Seq:       seq,
		StartedAt: start,
		Venues:    make([]domain.VenueStats, 0, len(outs)),
	}
	failed := 0
	for _, out := range outs {
		res.Venues = append(res.Venues, out.stats)
		res.Records = append(res.Records, out.records...)
		if out.stats.Err != "" {
			failed++
		}
	}

	if failed == len(s.collectors) {
		res.Duration = time.Since(start)
		return res, fmt.Errorf("scan %d: %w", seq, domain.ErrNoVenues)
	}

	res.Opportunities = s.engine.DetectOpportunities(res.Records)
	res.Duration = time.Since(start)

	s.logger.Info("scan complete",
		slog.Uint64("scan", seq),
		slog.Int("records", res.TotalRecords()),
		slog.Int("opportunities", len(res.Opportunities)),
		slog.Duration("duration", res.Duration),
	)

	if s.observer != nil {
		s.observer.ObserveScan(res)
	}
	if err := s.reporter.Report(ctx, res); err != nil {
		return res, fmt.Errorf("scan %d: report: %w", seq, err)
	}
	return res, nil
}

// RunLoop scans immediately, then on every interval tick, until ctx is
// cancelled. Failed iterations are logged and followed by the cooldown;
// the loop never terminates on a transient error.
func (s *Scanner) RunLoop(ctx context.Context) error {
	s.logger.InfoContext(ctx, "scan loop starting",
		slog.Duration("interval", s.cfg.Interval),
		slog.Int("venues", len(s.collectors)),
	)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		if _, err := s.ScanOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Error("scan iteration failed", slog.String("error", err.Error()))
			if s.cfg.Cooldown > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(s.cfg.Cooldown):
				}
			}
		}

		select {
		case <-ctx.Done():
			s.logger.Info("scan loop stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
