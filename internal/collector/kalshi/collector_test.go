package kalshi

import (
	"context"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const marketsBody = `{
	"markets": [
		{"ticker": "FED-25MAR", "event_ticker": "FED", "title": "Fed cuts rates in March", "status": "open", "yes_bid": 40, "yes_ask": 42},
		{"ticker": "CPI-3PCT", "title": "Inflation above 3 percent", "status": "open", "yes_bid": 0, "yes_ask": 18},
		{"ticker": "GDP-2PCT", "title": "GDP above 2 percent", "status": "settled", "yes_bid": 99, "yes_ask": 99},
		{"ticker": "", "title": "No ticker", "status": "open", "yes_bid": 10, "yes_ask": 12}
	]
}`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/markets" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("status"); got != "open" {
			t.Errorf("status param = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(marketsBody))
	}))
	defer srv.Close()

	c := NewCollector(NewClient(srv.URL, 0), CollectorConfig{MaxMarkets: 10}, testLogger())
	results, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("results = %d, want 4", len(results))
	}

	var records, skipped int
	for _, r := range results {
		if r.Skipped {
			skipped++
			continue
		}
		records++
		rec := r.Record
		if rec.Platform != Platform || rec.EventID != "FED-25MAR" || rec.Outcome != "YES" {
			t.Errorf("record = %+v", rec)
		}
		if math.Abs(rec.Bid-0.40) > 1e-9 || math.Abs(rec.Ask-0.42) > 1e-9 {
			t.Errorf("bid/ask = %g/%g, want 0.40/0.42", rec.Bid, rec.Ask)
		}
	}
	if records != 1 || skipped != 3 {
		t.Errorf("records/skipped = %d/%d, want 1/3", records, skipped)
	}
}

func TestFetch_ListingFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewCollector(NewClient(srv.URL, 0), CollectorConfig{}, testLogger())
	if _, err := c.Fetch(context.Background()); err == nil {
		t.Fatal("expected error on listing failure")
	}
}

func TestGetMarkets_Limit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(marketsBody))
	}))
	defer srv.Close()

	markets, err := NewClient(srv.URL, 0).GetMarkets(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetMarkets: %v", err)
	}
	if len(markets) != 2 {
		t.Errorf("markets = %d, want 2", len(markets))
	}
}
