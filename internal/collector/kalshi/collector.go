package kalshi

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/quantfold/arbscan/internal/collector"
	"github.com/quantfold/arbscan/internal/domain"
)

// Platform is the venue identifier carried on every record.
const Platform = "kalshi"

// CollectorConfig bounds one Kalshi fetch.
type CollectorConfig struct {
	MaxMarkets int
}

// Collector implements collector.Collector for Kalshi. The markets listing
// already carries top-of-book YES quotes, so one request covers the whole
// venue.
type Collector struct {
	client *Client
	cfg    CollectorConfig
	logger *slog.Logger
}

// NewCollector creates a Collector over the given client.
func NewCollector(client *Client, cfg CollectorConfig, logger *slog.Logger) *Collector {
	if cfg.MaxMarkets <= 0 {
		cfg.MaxMarkets = 50
	}
	return &Collector{
		client: client,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "kalshi_collector")),
	}
}

func (c *Collector) Name() string { return Platform }

// Fetch lists open markets and converts their YES quotes to price records.
func (c *Collector) Fetch(ctx context.Context) ([]collector.RecordResult, error) {
	markets, err := c.client.GetMarkets(ctx, c.cfg.MaxMarkets)
	if err != nil {
		return nil, fmt.Errorf("kalshi: list markets: %w", err)
	}

	now := time.Now().UTC()
	results := make([]collector.RecordResult, 0, len(markets))
	for _, m := range markets {
		results = append(results, quoteMarket(m, now))
	}

	records, skipped := collector.Split(results)
	c.logger.DebugContext(ctx, "kalshi fetch complete",
		slog.Int("markets", len(markets)),
		slog.Int("records", len(records)),
		slog.Int("skipped", skipped),
	)
	return results, nil
}

// quoteMarket converts one market row. Quotes arrive in cents; zero on
// either side means no resting order there.
func quoteMarket(m Market, ts time.Time) collector.RecordResult {
	if m.Ticker == "" || strings.TrimSpace(m.Title) == "" {
		return collector.Skip("missing ticker or title")
	}
	if m.Status != "" && m.Status != "open" && m.Status != "active" {
		return collector.Skip("market not open: " + m.Status)
	}
	if m.YesBid <= 0 || m.YesAsk <= 0 {
		return collector.Skip("one-sided or empty quote")
	}

	return collector.Ok(domain.PriceRecord{
		Platform:  Platform,
		EventID:   m.Ticker,
		EventName: m.Title,
		Outcome:   "YES",
		Bid:       m.YesBid / 100,
		Ask:       m.YesAsk / 100,
		Timestamp: ts,
	})
}
