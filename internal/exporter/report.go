package exporter

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"pricescan/pkg/contracts/domain"
)

// ReportWriter writes an outlier report next to or in place of the
// configured report directory, in the format matching the input file.
type ReportWriter struct {
	sampleSize int
}

// NewReportWriter creates a report writer. sampleSize only affects the
// mean column's header text.
func NewReportWriter(sampleSize int) *ReportWriter {
	return &ReportWriter{sampleSize: sampleSize}
}

// Header returns the fixed six report columns. With the default sample
// size the mean column reads "Mean of 30 Selected Datapoints", matching
// the original report layout.
func (w *ReportWriter) Header() []string {
	return []string{
		"Name",
		"Timestamp",
		"Actual Price",
		fmt.Sprintf("Mean of %d Selected Datapoints", w.sampleSize),
		"Price-Mean",
		"% Deviation",
	}
}

// Write serializes the outliers to path. Dispatches on the path's
// extension; zero outliers produces a header-only report.
func (w *ReportWriter) Write(path string, outliers []domain.OutlierRecord) error {
	rows := make([][]string, 0, len(outliers))
	for _, o := range outliers {
		rows = append(rows, []string{
			o.Symbol,
			o.Timestamp,
			formatFloat(o.ActualPrice),
			formatFloat(o.SampleMean),
			formatFloat(o.PriceMinusMean),
			formatFloat(o.PercentDeviation),
		})
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return writeXLSX(path, w.Header(), rows)
	default:
		return writeCSV(path, w.Header(), rows)
	}
}

// formatFloat renders a value at full float64 precision. NaN (the
// undefined percent-deviation marker) is written literally.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
