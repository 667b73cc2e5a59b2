package domain

import "time"

// Opportunity is a detected, fee-adjusted profitable cross-venue price
// discrepancy for one event outcome. Opportunities are created fresh per
// scan and carry no identity across scans; the ID is assigned at the
// reporting boundary for persistence, never by the engine.
type Opportunity struct {
	ID           string // UUID, set by the store reporter
	Event        string // normalized event name
	Outcome      string
	BuyPlatform  string  // venue with the lower implied price
	BuyPrice     float64 // mid price on the buy venue
	SellPlatform string  // venue with the higher implied price
	SellPrice    float64 // mid price on the sell venue
	RawSpreadPct float64 // (sell-buy)/buy * 100, before fees
	NetSpreadPct float64 // raw spread minus round-trip fees on both legs
	DetectedAt   time.Time
}
