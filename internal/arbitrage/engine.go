package arbitrage

import (
	"fmt"
	"log/slog"

	"github.com/quantfold/arbscan/internal/domain"
)

// nearZeroPrice is the tolerance below which a buy price makes the spread
// percentage undefined. Such pairs are skipped, not errors.
const nearZeroPrice = 1e-9

// Config holds the engine tunables.
type Config struct {
	// MinSpreadPct is the minimum fee-adjusted spread, in percent of the
	// buy price, for a pair to count as an opportunity.
	MinSpreadPct float64
	// FeePct is the per-leg trading fee in percent; it is charged on both
	// legs, so 2*FeePct is deducted from the raw spread.
	FeePct float64
}

// Validate rejects malformed configuration. Negative tunables are caller
// bugs and fail fast rather than being silently normalized.
func (c Config) Validate() error {
	if c.MinSpreadPct < 0 {
		return fmt.Errorf("arbitrage: min_spread_pct must be >= 0, got %g", c.MinSpreadPct)
	}
	if c.FeePct < 0 {
		return fmt.Errorf("arbitrage: fee_pct must be >= 0, got %g", c.FeePct)
	}
	return nil
}

// Engine evaluates one batch of price records per call. It is stateless and
// side-effect-free apart from logging: safe to invoke repeatedly or in
// parallel on independent batches.
type Engine struct {
	cfg    Config
	logger *slog.Logger
}

// NewEngine creates an engine with validated configuration.
func NewEngine(cfg Config, logger *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "arb_engine")),
	}, nil
}

// DetectOpportunities runs detection over the batch with the engine's
// configured thresholds.
func (e *Engine) DetectOpportunities(records []domain.PriceRecord) []domain.Opportunity {
	opps := Detect(records, e.cfg.MinSpreadPct, e.cfg.FeePct)
	if len(opps) > 0 {
		e.logger.Debug("opportunities detected",
			slog.Int("count", len(opps)),
			slog.Int("batch_size", len(records)),
		)
	}
	return opps
}

// group collects one record per venue for a single normalized key, in venue
// first-appearance order.
type group struct {
	event   string
	outcome string
	venues  []string
	byVenue map[string]domain.PriceRecord
}

// Detect partitions records by normalized (event, outcome), reduces each
// group to the first record seen per venue, and evaluates every unordered
// venue pair for a fee-adjusted spread of at least minSpreadPct.
//
// Output order is deterministic: groups in first-appearance order of their
// key in the input, then pair-enumeration order within the group. No ranking
// is imposed; callers wanting ranked output sort by NetSpreadPct themselves.
func Detect(records []domain.PriceRecord, minSpreadPct, feePct float64) []domain.Opportunity {
	var keys []string
	groups := make(map[string]*group)

	for _, rec := range records {
		key := GroupKey(rec.EventName, rec.Outcome)
		g, ok := groups[key]
		if !ok {
			g = &group{
				event:   NormalizeEventName(rec.EventName),
				outcome: NormalizeOutcome(rec.Outcome),
				byVenue: make(map[string]domain.PriceRecord),
			}
			groups[key] = g
			keys = append(keys, key)
		}
		// First record per (key, venue) wins; duplicates from the same
		// venue within one scan are dropped.
		if _, seen := g.byVenue[rec.Platform]; !seen {
			g.byVenue[rec.Platform] = rec
			g.venues = append(g.venues, rec.Platform)
		}
	}

	var opps []domain.Opportunity
	for _, key := range keys {
		g := groups[key]
		if len(g.venues) < 2 {
			// Arbitrage needs at least two independent quotes.
			continue
		}
		for i := 0; i < len(g.venues); i++ {
			for j := i + 1; j < len(g.venues); j++ {
				buy := g.byVenue[g.venues[i]]
				sell := g.byVenue[g.venues[j]]
				if sell.Mid() < buy.Mid() {
					buy, sell = sell, buy
				}
				low, high := buy.Mid(), sell.Mid()
				if low < nearZeroPrice {
					// Spread percentage is undefined; skip the pair.
					continue
				}
				rawSpread := (high - low) / low * 100
				netSpread := rawSpread - 2*feePct
				if netSpread < minSpreadPct {
					continue
				}
				opps = append(opps, domain.Opportunity{
					Event:        g.event,
					Outcome:      g.outcome,
					BuyPlatform:  buy.Platform,
					BuyPrice:     low,
					SellPlatform: sell.Platform,
					SellPrice:    high,
					RawSpreadPct: rawSpread,
					NetSpreadPct: netSpread,
				})
			}
		}
	}
	return opps
}
