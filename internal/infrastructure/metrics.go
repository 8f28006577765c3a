package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scan metrics exposed on /metrics in server mode. Registered once on
// the default registry; the CLI simply never serves them.
var (
	// ScansTotal counts completed directory scans by outcome.
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pricescan",
		Name:      "scans_total",
		Help:      "Completed directory scans by outcome.",
	}, []string{"outcome"})

	// FilesScanned counts input files fully processed.
	FilesScanned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pricescan",
		Name:      "files_scanned_total",
		Help:      "Input files fully processed.",
	})

	// FilesSkipped counts input files skipped with a format warning.
	FilesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pricescan",
		Name:      "files_skipped_total",
		Help:      "Input files skipped due to format errors.",
	})

	// RowsEvaluated counts price rows run through the evaluator.
	RowsEvaluated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pricescan",
		Name:      "rows_evaluated_total",
		Help:      "Price rows evaluated for outliers.",
	})

	// OutliersFound counts flagged price points.
	OutliersFound = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pricescan",
		Name:      "outliers_found_total",
		Help:      "Price points flagged as outliers.",
	})

	// ScanDuration observes wall time per directory scan.
	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pricescan",
		Name:      "scan_duration_seconds",
		Help:      "Wall time per directory scan.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	})
)
