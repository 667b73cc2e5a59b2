// Package domain defines the data model shared by collectors, the arbitrage
// engine, and reporters.
package domain

import "time"

// PriceRecord is a normalized quote from one venue for one event outcome at
// one instant. A record is immutable once constructed; each scan cycle
// produces an entirely new batch, nothing is reused across cycles.
type PriceRecord struct {
	Platform  string    // venue identifier, e.g. "polymarket"
	EventID   string    // venue-local event ID, opaque outside that venue
	EventName string    // free-text event title as supplied by the venue
	Outcome   string    // quoted side, e.g. "YES"
	Bid       float64   // best bid in (0,1), 0 when unknown
	Ask       float64   // best ask in (0,1), 0 when unknown
	Timestamp time.Time // capture instant
}

// Mid returns the representative tradable price: the arithmetic mean of bid
// and ask when both sides are present. A record with either side missing is
// an unknown quote and falls back to the neutral 0.5.
func (p PriceRecord) Mid() float64 {
	if p.Bid != 0 && p.Ask != 0 {
		return (p.Bid + p.Ask) / 2
	}
	return 0.5
}

// Quoted reports whether the record carries a real two-sided quote rather
// than the neutral fallback.
func (p PriceRecord) Quoted() bool {
	return p.Bid != 0 && p.Ask != 0
}
