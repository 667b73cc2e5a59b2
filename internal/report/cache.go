package report

import (
	"context"
	"log/slog"

	"github.com/quantfold/arbscan/internal/arbitrage"
	"github.com/quantfold/arbscan/internal/domain"
)

// CacheReporter publishes the latest mid per venue and group key so other
// tooling can read current prices without hitting the venues. Writes are
// best-effort; a cache outage never fails a scan.
type CacheReporter struct {
	cache  domain.PriceCache
	logger *slog.Logger
}

func NewCacheReporter(cache domain.PriceCache, logger *slog.Logger) *CacheReporter {
	return &CacheReporter{
		cache:  cache,
		logger: logger.With(slog.String("component", "cache_reporter")),
	}
}

func (c *CacheReporter) Report(ctx context.Context, res domain.ScanResult) error {
	failed := 0
	for _, rec := range res.Records {
		key := arbitrage.GroupKey(rec.EventName, rec.Outcome)
		if err := c.cache.SetMid(ctx, rec.Platform, key, rec.Mid(), rec.Timestamp); err != nil {
			failed++
		}
	}
	if failed > 0 {
		c.logger.WarnContext(ctx, "price cache writes failed",
			slog.Uint64("scan", res.Seq),
			slog.Int("failed", failed),
			slog.Int("total", len(res.Records)),
		)
	}
	return nil
}
