package opinion

import (
	"math"
	"testing"
	"time"
)

func TestParseRow(t *testing.T) {
	ts := time.Unix(1700000000, 0)

	tests := []struct {
		name       string
		row        tableRow
		wantSkip   bool
		wantReason string
		wantMid    float64
	}{
		{
			name:    "plain percent",
			row:     tableRow{Title: "Fed cuts rates in March", Percent: "62%"},
			wantMid: 0.62,
		},
		{
			name:    "comma decimal separator",
			row:     tableRow{Title: "Inflation above 3%", Percent: "41,5%"},
			wantMid: 0.415,
		},
		{
			name:     "empty title",
			row:      tableRow{Title: "  ", Percent: "50%"},
			wantSkip: true,
		},
		{
			name:     "no percent found",
			row:      tableRow{Title: "Some event", Percent: ""},
			wantSkip: true,
		},
		{
			name:     "garbage percent",
			row:      tableRow{Title: "Some event", Percent: "n/a%"},
			wantSkip: true,
		},
		{
			name:     "zero is out of range",
			row:      tableRow{Title: "Some event", Percent: "0%"},
			wantSkip: true,
		},
		{
			name:     "hundred is out of range",
			row:      tableRow{Title: "Some event", Percent: "100%"},
			wantSkip: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parseRow(tt.row, ts)
			if res.Skipped != tt.wantSkip {
				t.Fatalf("skipped = %v (reason %q), want %v", res.Skipped, res.Reason, tt.wantSkip)
			}
			if tt.wantSkip {
				if res.Reason == "" {
					t.Error("skip without a reason")
				}
				return
			}

			rec := res.Record
			if rec.Platform != Platform || rec.Outcome != "YES" {
				t.Errorf("record = %+v, want opinion/YES", rec)
			}
			if got := rec.Mid(); math.Abs(got-tt.wantMid) > 1e-9 {
				t.Errorf("mid = %g, want %g", got, tt.wantMid)
			}
			// Synthetic spread sits symmetrically around the displayed value.
			if math.Abs(rec.Bid-tt.wantMid*0.99) > 1e-9 || math.Abs(rec.Ask-tt.wantMid*1.01) > 1e-9 {
				t.Errorf("bid/ask = %g/%g, want %g/%g", rec.Bid, rec.Ask, tt.wantMid*0.99, tt.wantMid*1.01)
			}
			if !rec.Timestamp.Equal(ts) {
				t.Errorf("timestamp = %v, want %v", rec.Timestamp, ts)
			}
		})
	}
}
