// Command scanner runs a one-shot outlier scan over a directory of
// stock-price files and writes one report per input file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"pricescan/internal/config"
	"pricescan/internal/infrastructure"
	"pricescan/internal/scanner"
	"pricescan/pkg/contracts/domain"
)

func main() {
	dir := flag.String("dir", "", "directory of CSV/XLSX price files (defaults to configured data dir)")
	out := flag.String("out", "", "directory for generated reports (default: next to each input file)")
	sampleSize := flag.Int("sample", 0, "points sampled per evaluated row (default 30)")
	threshold := flag.Float64("threshold", 0, "outlier boundary in standard deviations (default 2)")
	workers := flag.Int("workers", 0, "files processed concurrently (default 4)")
	flag.Parse()

	// Optional .env for local runs; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Flags override config.
	if *dir != "" {
		cfg.Scan.DataDir = *dir
	}
	if *out != "" {
		cfg.Scan.ReportDir = *out
	}
	if *sampleSize > 0 {
		cfg.Scan.SampleSize = *sampleSize
	}
	if *threshold > 0 {
		cfg.Scan.Threshold = *threshold
	}
	if *workers > 0 {
		cfg.Scan.Workers = *workers
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	s := scanner.New(cfg.Scan, logger)
	summary, err := s.ScanDirectory(context.Background(), "")
	if err != nil {
		logger.Error("scan failed", slog.String("error", err.Error()))
		color.Red("scan failed: %v", err)
		os.Exit(1)
	}

	printSummary(summary)
}

// printSummary writes the human-readable run report to stdout; the
// structured log carries the same data for machines.
func printSummary(summary *domain.ScanSummary) {
	bold := color.New(color.Bold)

	bold.Printf("Scanned %s: %d file(s) processed, %d skipped\n",
		summary.Directory, summary.FilesScanned, summary.FilesSkipped)

	for _, result := range summary.Results {
		if result.Skipped {
			color.Yellow("  %s: skipped (%s)", result.File, result.SkipReason)
			continue
		}
		if len(result.Outliers) > 0 {
			color.Red("  %s: %d outlier(s) in %d row(s) -> %s",
				result.File, len(result.Outliers), result.Rows, result.ReportPath)
		} else {
			color.Green("  %s: no outliers in %d row(s) -> %s",
				result.File, result.Rows, result.ReportPath)
		}
	}

	if warnings := summary.AllWarnings(); len(warnings) > 0 {
		bold.Printf("%d warning(s):\n", len(warnings))
		for _, w := range warnings {
			color.Yellow("  %s", w)
		}
	}

	fmt.Printf("Total outliers: %d (%.2fs)\n",
		summary.TotalOutliers, summary.Duration.Seconds())
}
