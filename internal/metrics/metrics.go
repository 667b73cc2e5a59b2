// Package metrics exposes Prometheus metrics for the scan loop.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/quantfold/arbscan/internal/domain"
)

// Metrics collects scan instrumentation on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	ScansTotal       prometheus.Counter
	ScanDuration     prometheus.Histogram
	RecordsCollected *prometheus.CounterVec
	RowsSkipped      *prometheus.CounterVec
	VenueErrors      *prometheus.CounterVec

	OpportunitiesTotal prometheus.Counter
	NetSpreadPct       prometheus.Histogram
}

// New creates a Metrics collector with all metrics registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		ScansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbscan_scans_total",
			Help: "Total number of completed scans",
		}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arbscan_scan_duration_seconds",
			Help:    "Wall time of one scan, fetch through detection",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~200s
		}),
		RecordsCollected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbscan_records_collected_total",
				Help: "Price records accepted into scan batches",
			},
			[]string{"venue"},
		),
		RowsSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbscan_rows_skipped_total",
				Help: "Source rows skipped during parsing",
			},
			[]string{"venue"},
		),
		VenueErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbscan_venue_errors_total",
				Help: "Venue fetches that failed or timed out",
			},
			[]string{"venue"},
		),

		OpportunitiesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbscan_opportunities_total",
			Help: "Detected opportunities across all scans",
		}),
		NetSpreadPct: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arbscan_opportunity_net_spread_pct",
			Help:    "Net spread of detected opportunities in percent",
			Buckets: []float64{2.5, 5, 10, 15, 20, 30, 50, 100},
		}),
	}

	registry.MustRegister(
		m.ScansTotal,
		m.ScanDuration,
		m.RecordsCollected,
		m.RowsSkipped,
		m.VenueErrors,
		m.OpportunitiesTotal,
		m.NetSpreadPct,
	)
	return m
}

// Registry returns the registry backing the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveScan records one completed scan.
func (m *Metrics) ObserveScan(res domain.ScanResult) {
	m.ScansTotal.Inc()
	m.ScanDuration.Observe(res.Duration.Seconds())

	for _, v := range res.Venues {
		if v.Err != "" {
			m.VenueErrors.WithLabelValues(v.Platform).Inc()
			continue
		}
		m.RecordsCollected.WithLabelValues(v.Platform).Add(float64(v.Records))
		m.RowsSkipped.WithLabelValues(v.Platform).Add(float64(v.Skipped))
	}

	m.OpportunitiesTotal.Add(float64(len(res.Opportunities)))
	for _, o := range res.Opportunities {
		m.NetSpreadPct.Observe(o.NetSpreadPct)
	}
}
