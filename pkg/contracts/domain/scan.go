package domain

import "time"

// FileResult is the outcome of scanning one input file.
type FileResult struct {
	File       string          `json:"file"`
	ReportPath string          `json:"report_path,omitempty"`
	Rows       int             `json:"rows"`
	Outliers   []OutlierRecord `json:"outliers"`
	Skipped    bool            `json:"skipped"`
	SkipReason string          `json:"skip_reason,omitempty"`
	Warnings   []string        `json:"warnings,omitempty"`
}

// ScanSummary aggregates the results of one directory scan.
type ScanSummary struct {
	Directory     string        `json:"directory"`
	StartedAt     time.Time     `json:"started_at"`
	Duration      time.Duration `json:"duration"`
	FilesScanned  int           `json:"files_scanned"`
	FilesSkipped  int           `json:"files_skipped"`
	TotalOutliers int           `json:"total_outliers"`
	Results       []FileResult  `json:"results"`
}

// AllWarnings collects every file and row level warning from the run so
// callers can audit the completeness of the output.
func (s *ScanSummary) AllWarnings() []string {
	var warnings []string
	for _, r := range s.Results {
		warnings = append(warnings, r.Warnings...)
	}
	return warnings
}
