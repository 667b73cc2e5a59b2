package polymarket

import (
	"context"
	"log/slog"
	"time"

	"github.com/quantfold/arbscan/internal/collector"
	"github.com/quantfold/arbscan/internal/domain"
)

// Platform is the venue identifier stamped on every record.
const Platform = "polymarket"

// CollectorConfig configures the Polymarket collector.
type CollectorConfig struct {
	// MaxMarkets bounds how many markets are quoted per scan.
	MaxMarkets int
	// BookTimeout bounds each per-market orderbook request.
	BookTimeout time.Duration
}

// Collector fetches YES quotes for the most recent Polymarket markets. Each
// market needs a market-listing entry plus one orderbook request; a failure
// on any single market becomes a skipped row, never a collector failure.
type Collector struct {
	client *Client
	cfg    CollectorConfig
	logger *slog.Logger
}

// NewCollector creates a Polymarket collector using the given client.
func NewCollector(client *Client, cfg CollectorConfig, logger *slog.Logger) *Collector {
	if cfg.MaxMarkets <= 0 {
		cfg.MaxMarkets = 50
	}
	if cfg.BookTimeout <= 0 {
		cfg.BookTimeout = 5 * time.Second
	}
	return &Collector{
		client: client,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "collector"), slog.String("venue", Platform)),
	}
}

// Name returns the venue identifier.
func (c *Collector) Name() string { return Platform }

// Fetch lists markets and resolves each one's top-of-book quote.
func (c *Collector) Fetch(ctx context.Context) ([]collector.RecordResult, error) {
	markets, err := c.client.GetMarkets(ctx, c.cfg.MaxMarkets)
	if err != nil {
		return nil, err
	}

	results := make([]collector.RecordResult, 0, len(markets))
	for _, m := range markets {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, c.quoteMarket(ctx, m))
	}

	records, skipped := collector.Split(results)
	c.logger.Debug("fetch complete",
		slog.Int("records", len(records)),
		slog.Int("skipped", skipped),
	)
	return results, nil
}

// quoteMarket turns one market entry into a record or an explicit skip.
func (c *Collector) quoteMarket(ctx context.Context, m APIMarket) collector.RecordResult {
	if m.ConditionID == "" || m.Question == "" {
		return collector.Skip("missing condition_id or question")
	}

	bookCtx, cancel := context.WithTimeout(ctx, c.cfg.BookTimeout)
	defer cancel()

	ob, err := c.client.GetOrderbook(bookCtx, m.ConditionID)
	if err != nil {
		return collector.Skip("orderbook: " + err.Error())
	}

	bid, ask := ob.BestBid(), ob.BestAsk()
	if bid == 0 || ask == 0 {
		return collector.Skip("empty side of book")
	}

	return collector.Ok(domain.PriceRecord{
		Platform:  Platform,
		EventID:   m.ConditionID,
		EventName: m.Question,
		Outcome:   "YES",
		Bid:       bid,
		Ask:       ask,
		Timestamp: time.Now().UTC(),
	})
}
