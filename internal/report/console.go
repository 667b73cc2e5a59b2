package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/quantfold/arbscan/internal/domain"
)

// ConsoleReporter prints a human-readable scan summary. It is the default
// reporter and the only output surface in a bare configuration.
type ConsoleReporter struct {
	out    io.Writer
	logger *slog.Logger
}

// NewConsoleReporter writes summaries to out, typically os.Stdout.
func NewConsoleReporter(out io.Writer, logger *slog.Logger) *ConsoleReporter {
	return &ConsoleReporter{
		out:    out,
		logger: logger.With(slog.String("component", "console_reporter")),
	}
}

func (c *ConsoleReporter) Report(_ context.Context, res domain.ScanResult) error {
	fmt.Fprintf(c.out, "scan #%d: %d records, %d opportunities (%.2fs)\n",
		res.Seq, res.TotalRecords(), len(res.Opportunities), res.Duration.Seconds())
	for _, v := range res.Venues {
		if v.Err != "" {
			fmt.Fprintf(c.out, "  %s: FAILED: %s\n", v.Platform, v.Err)
			continue
		}
		fmt.Fprintf(c.out, "  %s: %d records, %d skipped\n", v.Platform, v.Records, v.Skipped)
	}
	for _, o := range Ranked(res.Opportunities) {
		fmt.Fprintf(c.out, "  %s [%s]: buy %s @ %.4f, sell %s @ %.4f, raw %.2f%%, net %.2f%%\n",
			o.Event, o.Outcome,
			o.BuyPlatform, o.BuyPrice,
			o.SellPlatform, o.SellPrice,
			o.RawSpreadPct, o.NetSpreadPct,
		)
	}
	return nil
}
