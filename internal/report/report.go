// Package report consumes completed scans. Reporters run after detection
// and own everything the engine deliberately does not: ordering for display,
// persistence identity, alert throttling, and archival.
package report

import (
	"context"
	"sort"

	"github.com/quantfold/arbscan/internal/domain"
)

// Reporter consumes one completed scan.
type Reporter interface {
	Report(ctx context.Context, res domain.ScanResult) error
}

// Ranked returns the scan's opportunities sorted by net spread, best first.
// Ties keep the detection order, which is itself deterministic, so display
// output is stable run to run.
func Ranked(opps []domain.Opportunity) []domain.Opportunity {
	ranked := make([]domain.Opportunity, len(opps))
	copy(ranked, opps)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].NetSpreadPct > ranked[j].NetSpreadPct
	})
	return ranked
}
