package opinion

import (
	"strconv"
	"strings"
	"time"

	"github.com/quantfold/arbscan/internal/collector"
	"github.com/quantfold/arbscan/internal/domain"
)

// halfSpread is the synthetic half-spread applied around the displayed
// probability. The page shows a single mid-style percentage, so bid and ask
// are reconstructed at ±1%.
const halfSpread = 0.01

// tableRow is one scraped market row.
type tableRow struct {
	Title   string `json:"title"`
	Percent string `json:"percent"`
}

// parseRow turns one scraped row into a price record or an explicit skip.
// The displayed value is a probability in percent, e.g. "62%" or "62,5%".
func parseRow(row tableRow, ts time.Time) collector.RecordResult {
	title := strings.TrimSpace(row.Title)
	if title == "" {
		return collector.Skip("empty title")
	}

	raw := strings.TrimSpace(row.Percent)
	if raw == "" {
		return collector.Skip("no percent value in row")
	}
	raw = strings.ReplaceAll(raw, "%", "")
	raw = strings.ReplaceAll(raw, ",", ".")

	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return collector.Skip("unparseable percent: " + row.Percent)
	}
	if value <= 0 || value >= 100 {
		return collector.Skip("percent out of range: " + row.Percent)
	}

	mid := value / 100
	return collector.Ok(domain.PriceRecord{
		Platform:  Platform,
		EventID:   title, // the page exposes no stable ID, the title serves
		EventName: title,
		Outcome:   "YES",
		Bid:       mid * (1 - halfSpread),
		Ask:       mid * (1 + halfSpread),
		Timestamp: ts,
	})
}
