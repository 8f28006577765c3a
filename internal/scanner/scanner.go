package scanner

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"pricescan/internal/config"
	apperrors "pricescan/internal/errors"
	"pricescan/internal/exporter"
	"pricescan/internal/files"
	"pricescan/internal/infrastructure"
	"pricescan/internal/loader"
	"pricescan/internal/outlier"
	"pricescan/pkg/contracts/domain"
)

// Scanner runs the full pipeline for a directory: discover price files,
// load each one, evaluate outliers per stock group, and write one report
// per input file.
type Scanner struct {
	cfg       config.ScanConfig
	discovery *files.Discovery
	loader    *loader.Loader
	reports   *exporter.ReportWriter
	logger    *slog.Logger
}

// New creates a scanner from the scan configuration.
func New(cfg config.ScanConfig, logger *slog.Logger) *Scanner {
	return &Scanner{
		cfg:       cfg,
		discovery: files.NewDiscovery(""),
		loader:    loader.New(logger),
		reports:   exporter.NewReportWriter(cfg.SampleSize),
		logger:    logger.With(slog.String("component", "scanner")),
	}
}

// ScanDirectory scans dir (the configured data dir when dir is empty).
// Files are processed concurrently up to the configured worker count;
// each worker owns its evaluator so no state is shared. File-level
// failures are recorded as skipped results and the scan continues; only
// a directory-level failure returns an error.
func (s *Scanner) ScanDirectory(ctx context.Context, dir string) (*domain.ScanSummary, error) {
	if dir == "" {
		dir = s.cfg.DataDir
	}

	start := time.Now()
	s.logger.InfoContext(ctx, "scan started",
		slog.String("directory", dir),
		slog.Int("sample_size", s.cfg.SampleSize),
		slog.Float64("threshold", s.cfg.Threshold))

	inputs, err := s.discovery.FindPriceFiles(dir)
	if err != nil {
		infrastructure.ScansTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	results := make([]domain.FileResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.scanFile(gctx, input)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		infrastructure.ScansTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	summary := &domain.ScanSummary{
		Directory: dir,
		StartedAt: start,
		Duration:  time.Since(start),
		Results:   results,
	}
	for _, r := range results {
		if r.Skipped {
			summary.FilesSkipped++
			continue
		}
		summary.FilesScanned++
		summary.TotalOutliers += len(r.Outliers)
	}

	infrastructure.ScansTotal.WithLabelValues("ok").Inc()
	infrastructure.ScanDuration.Observe(summary.Duration.Seconds())

	s.logger.InfoContext(ctx, "scan finished",
		slog.String("directory", dir),
		slog.Int("files_scanned", summary.FilesScanned),
		slog.Int("files_skipped", summary.FilesSkipped),
		slog.Int("outliers", summary.TotalOutliers),
		slog.Duration("duration", summary.Duration))

	return summary, nil
}

// scanFile runs one input file through load, evaluate and export. A
// FormatError skips the file with a warning; the evaluator itself never
// fails.
func (s *Scanner) scanFile(ctx context.Context, input files.FileInfo) domain.FileResult {
	result := domain.FileResult{File: input.Path}

	table, err := s.loader.Load(input.Path)
	if err != nil {
		s.logger.WarnContext(ctx, "file skipped",
			slog.String("file", input.Path),
			slog.String("reason", err.Error()))
		infrastructure.FilesSkipped.Inc()
		result.Skipped = true
		result.SkipReason = err.Error()
		result.Warnings = append(result.Warnings, err.Error())
		return result
	}

	result.Rows = len(table.Records)
	result.Warnings = append(result.Warnings, table.Warnings...)
	infrastructure.RowsEvaluated.Add(float64(len(table.Records)))

	// Instance-local evaluator: the rng must not be shared across workers.
	eval := outlier.NewEvaluator(outlier.Params{
		SampleSize: s.cfg.SampleSize,
		Threshold:  s.cfg.Threshold,
	})

	for _, group := range table.GroupBySymbol() {
		result.Outliers = append(result.Outliers, eval.Evaluate(group)...)
	}
	infrastructure.OutliersFound.Add(float64(len(result.Outliers)))

	reportPath := files.ReportPath(input.Path, s.cfg.ReportDir)
	if err := s.reports.Write(reportPath, result.Outliers); err != nil {
		warning := apperrors.NewFormatError(reportPath, err).Error()
		s.logger.ErrorContext(ctx, "report write failed",
			slog.String("file", input.Path),
			slog.String("report", reportPath),
			slog.String("error", err.Error()))
		result.Warnings = append(result.Warnings, warning)
		return result
	}

	result.ReportPath = reportPath
	infrastructure.FilesScanned.Inc()

	s.logger.InfoContext(ctx, "file processed",
		slog.String("file", input.Path),
		slog.Int("rows", result.Rows),
		slog.Int("outliers", len(result.Outliers)),
		slog.String("report", reportPath))

	return result
}
