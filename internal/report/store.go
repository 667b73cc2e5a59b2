package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quantfold/arbscan/internal/domain"
)

// StoreReporter persists every detected opportunity. Identity is assigned
// here: the engine emits opportunities without IDs, and the store boundary
// stamps a fresh UUID per row.
type StoreReporter struct {
	store  domain.OpportunityStore
	logger *slog.Logger
}

func NewStoreReporter(store domain.OpportunityStore, logger *slog.Logger) *StoreReporter {
	return &StoreReporter{
		store:  store,
		logger: logger.With(slog.String("component", "store_reporter")),
	}
}

func (s *StoreReporter) Report(ctx context.Context, res domain.ScanResult) error {
	if len(res.Opportunities) == 0 {
		return nil
	}

	now := time.Now().UTC()
	opps := make([]domain.Opportunity, len(res.Opportunities))
	copy(opps, res.Opportunities)
	for i := range opps {
		opps[i].ID = uuid.NewString()
		if opps[i].DetectedAt.IsZero() {
			opps[i].DetectedAt = now
		}
	}

	if err := s.store.Insert(ctx, opps); err != nil {
		return fmt.Errorf("report: store opportunities: %w", err)
	}
	s.logger.DebugContext(ctx, "opportunities stored",
		slog.Uint64("scan", res.Seq),
		slog.Int("count", len(opps)),
	)
	return nil
}
