package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quantfold/arbscan/internal/arbitrage"
	"github.com/quantfold/arbscan/internal/domain"
	"github.com/quantfold/arbscan/internal/notify"
)

// NotifyReporter pushes the best opportunities of a scan to alert channels.
// Repeat alerts for the same event key are throttled through the rate
// limiter so a persistent spread does not page on every scan.
type NotifyReporter struct {
	alerter    *notify.Alerter
	limiter    domain.RateLimiter // nil disables throttling
	alertLimit int
	window     time.Duration
	maxPerScan int
	logger     *slog.Logger
}

func NewNotifyReporter(
	alerter *notify.Alerter,
	limiter domain.RateLimiter,
	alertLimit int,
	window time.Duration,
	maxPerScan int,
	logger *slog.Logger,
) *NotifyReporter {
	return &NotifyReporter{
		alerter:    alerter,
		limiter:    limiter,
		alertLimit: alertLimit,
		window:     window,
		maxPerScan: maxPerScan,
		logger:     logger.With(slog.String("component", "notify_reporter")),
	}
}

func (n *NotifyReporter) Report(ctx context.Context, res domain.ScanResult) error {
	if len(res.Opportunities) == 0 {
		return nil
	}

	ranked := Ranked(res.Opportunities)
	if n.maxPerScan > 0 && len(ranked) > n.maxPerScan {
		ranked = ranked[:n.maxPerScan]
	}

	alertable := make([]domain.Opportunity, 0, len(ranked))
	for _, o := range ranked {
		if !n.allow(ctx, o) {
			continue
		}
		alertable = append(alertable, o)
	}
	if len(alertable) == 0 {
		n.logger.DebugContext(ctx, "all opportunities throttled", slog.Uint64("scan", res.Seq))
		return nil
	}

	if err := n.alerter.AlertOpportunities(ctx, res.Seq, alertable); err != nil {
		return fmt.Errorf("report: alert: %w", err)
	}
	return nil
}

// allow consults the rate limiter for one opportunity. Limiter failures are
// fail-open: a broken throttle must not silence alerts.
func (n *NotifyReporter) allow(ctx context.Context, o domain.Opportunity) bool {
	if n.limiter == nil || n.alertLimit <= 0 {
		return true
	}
	key := "alert:" + arbitrage.GroupKey(o.Event, o.Outcome)
	ok, err := n.limiter.Allow(ctx, key, n.alertLimit, n.window)
	if err != nil {
		n.logger.WarnContext(ctx, "alert throttle check failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return true
	}
	return ok
}
