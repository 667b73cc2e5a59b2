package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/quantfold/arbscan/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleOpps() []domain.Opportunity {
	return []domain.Opportunity{
		{
			Event:        "fed cuts rates in march",
			Outcome:      "YES",
			BuyPlatform:  "polymarket",
			BuyPrice:     0.41,
			SellPlatform: "opinion",
			SellPrice:    0.47,
			RawSpreadPct: 14.63,
			NetSpreadPct: 12.63,
			DetectedAt:   time.Now().UTC(),
		},
	}
}

type fakeSender struct {
	name string
	err  error
	sent []string
}

func (f *fakeSender) Send(_ context.Context, text string) error {
	f.sent = append(f.sent, text)
	return f.err
}

func (f *fakeSender) Name() string { return f.name }

func TestFormatAlert(t *testing.T) {
	got := FormatAlert(7, sampleOpps())
	for _, want := range []string{"scan #7", "fed cuts rates in march", "[YES]", "buy polymarket @ 0.4100", "sell opinion @ 0.4700", "+12.63%"} {
		if !strings.Contains(got, want) {
			t.Errorf("alert %q missing %q", got, want)
		}
	}
}

func TestAlerter_DeliversToAllSenders(t *testing.T) {
	a := &fakeSender{name: "a"}
	b := &fakeSender{name: "b"}
	alerter := NewAlerter([]Sender{a, b}, testLogger())

	if err := alerter.AlertOpportunities(context.Background(), 1, sampleOpps()); err != nil {
		t.Fatalf("AlertOpportunities: %v", err)
	}
	if len(a.sent) != 1 || len(b.sent) != 1 {
		t.Errorf("deliveries = %d/%d, want 1/1", len(a.sent), len(b.sent))
	}
}

func TestAlerter_FailedSenderDoesNotBlockOthers(t *testing.T) {
	a := &fakeSender{name: "a", err: errors.New("down")}
	b := &fakeSender{name: "b"}
	alerter := NewAlerter([]Sender{a, b}, testLogger())

	err := alerter.AlertOpportunities(context.Background(), 1, sampleOpps())
	if err == nil || !strings.Contains(err.Error(), "a: down") {
		t.Fatalf("err = %v, want aggregated sender failure", err)
	}
	if len(b.sent) != 1 {
		t.Errorf("healthy sender deliveries = %d, want 1", len(b.sent))
	}
}

func TestAlerter_NoOpportunitiesIsNoop(t *testing.T) {
	a := &fakeSender{name: "a"}
	alerter := NewAlerter([]Sender{a}, testLogger())

	if err := alerter.AlertOpportunities(context.Background(), 1, nil); err != nil {
		t.Fatalf("AlertOpportunities: %v", err)
	}
	if len(a.sent) != 0 {
		t.Errorf("deliveries = %d, want 0", len(a.sent))
	}
}

func TestTelegramSender_Send(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bottok123/sendMessage" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewTelegramSender("tok123", "chat42")
	s.apiBase = srv.URL

	if err := s.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got["chat_id"] != "chat42" || got["text"] != "hello" {
		t.Errorf("payload = %v", got)
	}
}

func TestDiscordSender_SendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad webhook", http.StatusBadRequest)
	}))
	defer srv.Close()

	s := NewDiscordSender(srv.URL)
	err := s.Send(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "status 400") {
		t.Fatalf("err = %v, want status 400 error", err)
	}
}
