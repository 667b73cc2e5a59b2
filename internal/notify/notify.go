// Package notify delivers opportunity alerts to operator channels. An
// Alerter formats a batch of detected opportunities into one message and
// dispatches it to every configured sender; a single failing channel does
// not block the others.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/quantfold/arbscan/internal/domain"
)

// Sender is one delivery channel.
type Sender interface {
	// Send delivers a plain-text message.
	Send(ctx context.Context, text string) error
	// Name identifies the channel, e.g. "telegram".
	Name() string
}

// Alerter fans an alert out to all senders.
type Alerter struct {
	senders []Sender
	logger  *slog.Logger
}

// NewAlerter creates an Alerter over the given senders. An Alerter with no
// senders is valid and discards alerts.
func NewAlerter(senders []Sender, logger *slog.Logger) *Alerter {
	return &Alerter{
		senders: senders,
		logger:  logger.With(slog.String("component", "alerter")),
	}
}

// AlertOpportunities formats and dispatches one alert for the given
// opportunities. Sender failures are aggregated into the returned error.
func (a *Alerter) AlertOpportunities(ctx context.Context, scanSeq uint64, opps []domain.Opportunity) error {
	if len(opps) == 0 || len(a.senders) == 0 {
		return nil
	}

	text := FormatAlert(scanSeq, opps)

	var errs []string
	for _, s := range a.senders {
		if err := s.Send(ctx, text); err != nil {
			a.logger.ErrorContext(ctx, "alert delivery failed",
				slog.String("sender", s.Name()),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Sprintf("%s: %v", s.Name(), err))
			continue
		}
		a.logger.DebugContext(ctx, "alert delivered",
			slog.String("sender", s.Name()),
			slog.Int("opportunities", len(opps)),
		)
	}
	if len(errs) > 0 {
		return fmt.Errorf("notify: %d sender(s) failed: %s", len(errs), strings.Join(errs, "; "))
	}
	return nil
}

// FormatAlert renders the alert body: one header line plus one line per
// opportunity, from the caller's ordering.
func FormatAlert(scanSeq uint64, opps []domain.Opportunity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Arbitrage scan #%d: %d opportunity(ies)\n", scanSeq, len(opps))
	for _, o := range opps {
		fmt.Fprintf(&b, "%s [%s]: buy %s @ %.4f, sell %s @ %.4f, net %+.2f%%\n",
			o.Event, o.Outcome,
			o.BuyPlatform, o.BuyPrice,
			o.SellPlatform, o.SellPrice,
			o.NetSpreadPct,
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// postJSON is the shared HTTP delivery path for webhook-style senders.
func postJSON(ctx context.Context, client *http.Client, name, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: marshal payload: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: create request: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: send request: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s: unexpected status %d: %s", name, resp.StatusCode, string(respBody))
	}
	return nil
}
