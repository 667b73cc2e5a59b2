package polymarket

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quantfold/arbscan/internal/collector"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCollector_Fetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/markets", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"markets":[
			{"condition_id":"0xaaa","question":"Will X happen"},
			{"condition_id":"","question":"broken entry"},
			{"condition_id":"0xbbb","question":"Will Y happen"},
			{"condition_id":"0xccc","question":"Will Z happen"}
		]}`))
	})
	mux.HandleFunc("/orderbooks/0xaaa", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bids":[["0.40","120"]],"asks":[["0.42","80"]]}`))
	})
	mux.HandleFunc("/orderbooks/0xbbb", func(w http.ResponseWriter, r *http.Request) {
		// One-sided book: no asks.
		w.Write([]byte(`{"bids":[["0.30","50"]],"asks":[]}`))
	})
	mux.HandleFunc("/orderbooks/0xccc", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream busy", http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	col := NewCollector(
		NewClient(srv.URL, 5*time.Second),
		CollectorConfig{MaxMarkets: 10, BookTimeout: 2 * time.Second},
		testLogger(),
	)

	results, err := col.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	records, skipped := collector.Split(results)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 (skipped %d)", len(records), skipped)
	}
	if skipped != 3 {
		t.Errorf("skipped = %d, want 3", skipped)
	}

	rec := records[0]
	if rec.Platform != "polymarket" || rec.EventID != "0xaaa" {
		t.Errorf("record = %+v, want polymarket/0xaaa", rec)
	}
	if rec.Bid != 0.40 || rec.Ask != 0.42 {
		t.Errorf("bid/ask = %g/%g, want 0.40/0.42", rec.Bid, rec.Ask)
	}
	if rec.Outcome != "YES" {
		t.Errorf("outcome = %q, want YES", rec.Outcome)
	}
}

func TestCollector_FetchListingFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	col := NewCollector(NewClient(srv.URL, time.Second), CollectorConfig{}, testLogger())
	if _, err := col.Fetch(context.Background()); err == nil {
		t.Error("Fetch swallowed a listing failure; the scan loop owns that isolation")
	}
}

func TestClient_GetMarketsHonorsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"markets":[
			{"condition_id":"1","question":"a"},
			{"condition_id":"2","question":"b"},
			{"condition_id":"3","question":"c"}
		]}`))
	}))
	defer srv.Close()

	markets, err := NewClient(srv.URL, time.Second).GetMarkets(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetMarkets: %v", err)
	}
	if len(markets) != 2 {
		t.Errorf("got %d markets, want 2", len(markets))
	}
}

func TestPriceLevelUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantPrice float64
	}{
		{"array form", `["0.42","100"]`, 0.42},
		{"object form", `{"price":"0.37","size":"12"}`, 0.37},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l PriceLevel
			if err := l.UnmarshalJSON([]byte(tt.in)); err != nil {
				t.Fatalf("UnmarshalJSON: %v", err)
			}
			if l.Price != tt.wantPrice {
				t.Errorf("price = %g, want %g", l.Price, tt.wantPrice)
			}
		})
	}
}
