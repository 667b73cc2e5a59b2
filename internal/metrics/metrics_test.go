package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/quantfold/arbscan/internal/domain"
)

func TestObserveScan(t *testing.T) {
	m := New()

	m.ObserveScan(domain.ScanResult{
		Seq:      1,
		Duration: 800 * time.Millisecond,
		Venues: []domain.VenueStats{
			{Platform: "polymarket", Records: 3, Skipped: 1},
			{Platform: "opinion", Err: "timeout"},
		},
		Opportunities: []domain.Opportunity{
			{NetSpreadPct: 12.63},
		},
	})

	if got := testutil.ToFloat64(m.ScansTotal); got != 1 {
		t.Errorf("scans_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RecordsCollected.WithLabelValues("polymarket")); got != 3 {
		t.Errorf("records_collected{polymarket} = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.RowsSkipped.WithLabelValues("polymarket")); got != 1 {
		t.Errorf("rows_skipped{polymarket} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.VenueErrors.WithLabelValues("opinion")); got != 1 {
		t.Errorf("venue_errors{opinion} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.OpportunitiesTotal); got != 1 {
		t.Errorf("opportunities_total = %v, want 1", got)
	}
	// A failed venue must not count records.
	if got := testutil.ToFloat64(m.RecordsCollected.WithLabelValues("opinion")); got != 0 {
		t.Errorf("records_collected{opinion} = %v, want 0", got)
	}
}
