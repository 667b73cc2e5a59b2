package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/quantfold/arbscan/internal/domain"
)

// MultiReporter fans one scan out to several reporters in order. A failing
// reporter does not stop the rest; failures are aggregated.
type MultiReporter struct {
	reporters []Reporter
}

func NewMultiReporter(reporters ...Reporter) *MultiReporter {
	return &MultiReporter{reporters: reporters}
}

func (m *MultiReporter) Report(ctx context.Context, res domain.ScanResult) error {
	var errs []string
	for _, r := range m.reporters {
		if err := r.Report(ctx, res); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("report: %d reporter(s) failed: %s", len(errs), strings.Join(errs, "; "))
	}
	return nil
}
