package domain

import "time"

// VenueStats summarizes one collector's contribution to a scan.
type VenueStats struct {
	Platform string
	Records  int    // records accepted into the batch
	Skipped  int    // source rows skipped during parsing
	Err      string // non-empty when the collector failed or timed out
}

// ScanResult is the outcome of one complete fetch-all-venues-then-match
// cycle, handed to reporters as a unit. The engine never sees a partial
// batch: Records is fully materialized before matching runs.
type ScanResult struct {
	Seq           uint64 // scan counter, starts at 1
	StartedAt     time.Time
	Duration      time.Duration
	Venues        []VenueStats
	Records       []PriceRecord
	Opportunities []Opportunity
}

// TotalRecords returns the batch size across all venues.
func (s ScanResult) TotalRecords() int {
	return len(s.Records)
}
