// Package opinion implements the Opinion venue collector. The venue exposes
// no public quote API, so prices are scraped from the web app's market table
// with a headless Chrome session.
package opinion

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/quantfold/arbscan/internal/collector"
)

// Platform is the venue identifier stamped on every record.
const Platform = "opinion"

// rowsJS extracts (title, percent) pairs from the market table. The title
// sits in the third cell; the displayed probability is the first descendant
// whose text contains a percent sign.
const rowsJS = `
Array.from(document.querySelectorAll('tr')).slice(1, 1 + %d).map(tr => {
	const tds = tr.querySelectorAll('td');
	if (tds.length < 5) return {title: '', percent: ''};
	let percent = '';
	for (const el of tr.querySelectorAll('*')) {
		const t = (el.textContent || '').trim();
		if (t.includes('%%')) { percent = t; break; }
	}
	return {title: tds[2].innerText.trim(), percent: percent};
})`

// Config configures the Opinion collector.
type Config struct {
	// BaseURL is the web app root, e.g. "https://app.opinion.trade".
	BaseURL string
	// PagePath is the market listing page, e.g. "/macro".
	PagePath string
	// MaxRows bounds how many table rows are parsed per scan.
	MaxRows int
	// PageWait bounds how long to wait for the table to render.
	PageWait time.Duration
}

// Collector scrapes quotes from the Opinion market table. The headless
// browser is an explicit resource handle owned by the collector: it is
// started lazily on first use, reused across scans, and released by Close.
type Collector struct {
	cfg    Config
	logger *slog.Logger

	mu          sync.Mutex
	allocCtx    context.Context
	allocCancel context.CancelFunc
	browserCtx  context.Context
	browserStop context.CancelFunc
}

// NewCollector creates an Opinion collector. No browser is started until the
// first Fetch.
func NewCollector(cfg Config, logger *slog.Logger) *Collector {
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = 50
	}
	if cfg.PageWait <= 0 {
		cfg.PageWait = 15 * time.Second
	}
	return &Collector{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "collector"), slog.String("venue", Platform)),
	}
}

// Name returns the venue identifier.
func (c *Collector) Name() string { return Platform }

// Fetch loads the market page in a fresh tab and parses the visible rows.
func (c *Collector) Fetch(ctx context.Context) ([]collector.RecordResult, error) {
	browserCtx, err := c.ensureBrowser()
	if err != nil {
		return nil, err
	}

	tabCtx, tabCancel := chromedp.NewContext(browserCtx)
	defer tabCancel()

	// The chromedp context chain cannot parent the caller's context, so
	// propagate its cancellation by hand.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			tabCancel()
		case <-done:
		}
	}()

	var rows []tableRow
	err = chromedp.Run(tabCtx,
		chromedp.Navigate(c.cfg.BaseURL+c.cfg.PagePath),
		chromedp.WaitVisible("tr", chromedp.ByQuery),
		chromedp.Evaluate(fmt.Sprintf(rowsJS, c.cfg.MaxRows), &rows),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("opinion: scrape %s%s: %w", c.cfg.BaseURL, c.cfg.PagePath, err)
	}

	now := time.Now().UTC()
	results := make([]collector.RecordResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, parseRow(row, now))
	}

	records, skipped := collector.Split(results)
	c.logger.Debug("fetch complete",
		slog.Int("rows", len(rows)),
		slog.Int("records", len(records)),
		slog.Int("skipped", skipped),
	)
	return results, nil
}

// ensureBrowser starts the shared headless Chrome session on first use.
func (c *Collector) ensureBrowser() (context.Context, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.browserCtx != nil && c.browserCtx.Err() == nil {
		return c.browserCtx, nil
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
	)

	c.allocCtx, c.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	c.browserCtx, c.browserStop = chromedp.NewContext(c.allocCtx, chromedp.WithLogf(func(format string, v ...any) {
		c.logger.Debug("chromedp", slog.String("message", fmt.Sprintf(format, v...)))
	}))

	// Start the browser process now so a broken Chrome install surfaces as
	// a collector error on this scan instead of hanging a later one.
	startCtx, cancel := context.WithTimeout(c.browserCtx, c.cfg.PageWait)
	defer cancel()
	if err := chromedp.Run(startCtx); err != nil {
		c.releaseLocked()
		return nil, fmt.Errorf("opinion: start browser: %w", err)
	}

	c.logger.Info("headless browser started")
	return c.browserCtx, nil
}

// Close releases the browser session. Safe to call multiple times and when
// no browser was ever started.
func (c *Collector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseLocked()
}

func (c *Collector) releaseLocked() {
	if c.browserStop != nil {
		c.browserStop()
		c.browserStop = nil
		c.browserCtx = nil
	}
	if c.allocCancel != nil {
		c.allocCancel()
		c.allocCancel = nil
		c.allocCtx = nil
	}
}
