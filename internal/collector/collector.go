// Package collector defines the venue collector boundary: each collector
// produces the current batch of price records for one venue. Collector
// failures are isolated per venue and never abort a scan.
package collector

import (
	"context"

	"github.com/quantfold/arbscan/internal/domain"
)

// Collector fetches the current quotes from one venue.
type Collector interface {
	// Name returns the venue identifier used as PriceRecord.Platform.
	Name() string
	// Fetch returns one result per source row: parsed records and explicit
	// skips. It should respect ctx cancellation; the scan loop bounds each
	// call with a per-collector timeout.
	Fetch(ctx context.Context) ([]RecordResult, error)
}

// Closer is implemented by collectors that hold long-lived resources, such
// as a headless browser session. The owner releases them on shutdown.
type Closer interface {
	Close()
}

// RecordResult is the outcome of parsing one source row. Skips are explicit
// rather than silently swallowed so skip rates stay observable.
type RecordResult struct {
	Record  domain.PriceRecord
	Skipped bool
	Reason  string // why the row was skipped; empty on success
}

// Ok wraps a successfully parsed record.
func Ok(rec domain.PriceRecord) RecordResult {
	return RecordResult{Record: rec}
}

// Skip marks one source row as unusable for the given reason.
func Skip(reason string) RecordResult {
	return RecordResult{Skipped: true, Reason: reason}
}

// Split partitions results into accepted records and a skip count.
func Split(results []RecordResult) (records []domain.PriceRecord, skipped int) {
	records = make([]domain.PriceRecord, 0, len(results))
	for _, r := range results {
		if r.Skipped {
			skipped++
			continue
		}
		records = append(records, r.Record)
	}
	return records, skipped
}
